// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aixi-go/aixi/pkg/random"
)

// fakeAgent is a minimal, deterministic stand-in for pkg/agent.Agent
// that returns the same percept (observation 0, reward 1) whatever the
// action and a playout return equal to the horizon, used to check that
// Sample's UCB selection and backup arithmetic behave sensibly without
// depending on the real CTW model.
type fakeAgent struct {
	rng          *random.Source
	maxAction    int
	maxReward    int
	horizon      int
	perceptCalls int
}

func (f *fakeAgent) MaxAction() int { return f.maxAction }
func (f *fakeAgent) MaxReward() int { return f.maxReward }
func (f *fakeAgent) Horizon() int   { return f.horizon }
func (f *fakeAgent) Rand() *random.Source { return f.rng }

func (f *fakeAgent) GenPerceptAndUpdate() (observation, reward int) {
	f.perceptCalls++
	return 0, 1
}

func (f *fakeAgent) PerceptKey(observation, reward int) int { return observation }

func (f *fakeAgent) ModelUpdate(action int) {}

func (f *fakeAgent) Playout(horizon int) float64 {
	return float64(horizon)
}

func TestSample_ZeroHorizonReturnsZero(t *testing.T) {
	root := NewRoot()
	agent := &fakeAgent{rng: random.New(1), maxAction: 1, maxReward: 10, horizon: 0}
	assert.Equal(t, 0.0, root.Sample(agent, 0))
}

func TestSample_FirstVisitUsesPlayout(t *testing.T) {
	root := NewRoot()
	agent := &fakeAgent{rng: random.New(2), maxAction: 1, maxReward: 10, horizon: 4}
	reward := root.Sample(agent, 4)
	assert.Equal(t, 4.0, reward)
	assert.Equal(t, 1, root.Visits())
}

func TestSample_RepeatedCallsExpandTreeAndIncreaseVisits(t *testing.T) {
	root := NewRoot()
	agent := &fakeAgent{rng: random.New(3), maxAction: 1, maxReward: 10, horizon: 3}
	for i := 0; i < 20; i++ {
		root.Sample(agent, 3)
	}
	assert.Equal(t, 20, root.Visits())
	assert.Greater(t, agent.perceptCalls, 0)
}

func TestBestAction_PrefersHigherMeanChild(t *testing.T) {
	root := NewRoot()
	root.children = map[int]*Node{
		0: {kind: decisionNode, visits: 5, mean: 1.0, children: map[int]*Node{}},
		1: {kind: decisionNode, visits: 5, mean: 9.0, children: map[int]*Node{}},
	}
	action, ok := BestAction(root, random.New(4))
	assert.True(t, ok)
	assert.Equal(t, 1, action)
}

func TestBestAction_NoChildrenReturnsFalse(t *testing.T) {
	root := NewRoot()
	_, ok := BestAction(root, random.New(5))
	assert.False(t, ok)
}
