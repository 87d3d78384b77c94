// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ctw

import (
	"math"
	"testing"

	"github.com/aixi-go/aixi/pkg/bits"
	"github.com/aixi-go/aixi/pkg/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBitstream(rng *random.Source, n int) []bits.Symbol {
	out := make([]bits.Symbol, n)
	for i := range out {
		out[i] = rng.Bool(0.5)
	}
	return out
}

func TestPredict_UniformPriorBeforeDepthReached(t *testing.T) {
	tree := New(4)
	assert.Equal(t, 0.5, tree.Predict(true))
	tree.Update(false)
	assert.Equal(t, 0.5, tree.Predict(true))
}

func TestPredict_SumsToOneOnceDepthReached(t *testing.T) {
	rng := random.New(7)
	tree := New(4)
	for i := 0; i < 4; i++ {
		tree.Update(rng.Bool(0.5))
	}
	pTrue := tree.Predict(true)
	pFalse := tree.Predict(false)
	assert.InDelta(t, 1.0, pTrue+pFalse, 1e-9)
}

func TestUpdateRevert_ExactInverse(t *testing.T) {
	rng := random.New(11)
	for _, depth := range []int{1, 3, 6} {
		tree := New(depth)
		stream := randomBitstream(rng, depth+20)

		before := tree.LogBlockProbability()
		beforeSize := tree.Size()

		tree.UpdateSymbols(stream)
		tree.RevertN(len(stream))

		assert.InDelta(t, before, tree.LogBlockProbability(), 1e-12, "depth=%d", depth)
		assert.Equal(t, 0, tree.HistorySize())
		assert.Equal(t, beforeSize, tree.Size(), "depth=%d", depth)
	}
}

func TestGenRandomSymbols_NonDestructive(t *testing.T) {
	rng := random.New(3)
	tree := New(4)
	tree.UpdateSymbols(randomBitstream(rng, 10))

	before := tree.LogBlockProbability()
	beforeHistory := tree.HistorySize()
	beforeSize := tree.Size()

	tree.GenRandomSymbols(rng, 6)

	assert.InDelta(t, before, tree.LogBlockProbability(), 1e-12)
	assert.Equal(t, beforeHistory, tree.HistorySize())
	assert.Equal(t, beforeSize, tree.Size())
}

func TestPredictSequence_MatchesUniformPriorWhenInsufficientContext(t *testing.T) {
	tree := New(10)
	got := tree.PredictSequence([]bits.Symbol{true, false, true})
	assert.Equal(t, math.Pow(0.5, 3), got)
}

// E5-style regression: at depth=1, the root node itself is trained on every
// symbol from the second update onward (the context path always includes
// the root), so the KT base case is observable directly on
// LogBlockProbability after exactly two updates.
func TestLogBlockProbability_KTBaseCaseAtDepthOne(t *testing.T) {
	tree := New(1)
	require.Equal(t, 0.0, tree.LogBlockProbability())

	tree.Update(false) // history length 0 < depth 1: tree untouched
	assert.Equal(t, 0.0, tree.LogBlockProbability())

	tree.Update(true) // history length 1 >= depth 1: root + leaf child trained
	assert.InDelta(t, math.Log(0.5), tree.LogBlockProbability(), 1e-12)
}

func TestClear_ResetsTreeAndHistory(t *testing.T) {
	rng := random.New(4)
	tree := New(3)
	tree.UpdateSymbols(randomBitstream(rng, 8))
	require.Greater(t, tree.Size(), 1)

	tree.Clear()
	assert.Equal(t, 1, tree.Size())
	assert.Equal(t, 0, tree.HistorySize())
	assert.Equal(t, 0.0, tree.LogBlockProbability())
}

func TestUpdateHistory_DoesNotTrainTree(t *testing.T) {
	tree := New(2)
	sizeBefore := tree.Size()
	tree.UpdateHistory(true)
	tree.UpdateHistory(false)
	assert.Equal(t, sizeBefore, tree.Size())
	assert.Equal(t, 2, tree.HistorySize())

	tree.RevertHistory(2)
	assert.Equal(t, 0, tree.HistorySize())
}
