// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aixi-go/aixi/pkg/config"
	"github.com/aixi-go/aixi/pkg/random"
)

func TestTiger_ListeningNeverEndsTheRound(t *testing.T) {
	tiger := NewTiger(config.Options{}, random.New(1))
	for i := 0; i < 20; i++ {
		tiger.PerformAction(tigerListen)
		assert.Equal(t, tigerRewardListen, tiger.Reward())
	}
}

func TestTiger_OpeningDoorAlwaysYieldsEatenOrGold(t *testing.T) {
	tiger := NewTiger(config.Options{}, random.New(2))
	for i := 0; i < 50; i++ {
		tiger.PerformAction(tigerLeft)
		assert.Contains(t, []int{tigerRewardEaten, tigerRewardGold}, tiger.Reward())
	}
}

func TestTiger_InvalidActionPanics(t *testing.T) {
	tiger := NewTiger(config.Options{}, random.New(3))
	assert.Panics(t, func() { tiger.PerformAction(7) })
}

func TestTiger_ListenAccuracyOption(t *testing.T) {
	opts := config.Options{"tiger-listen-accuracy": "1.0"}
	rng := random.New(4)
	tiger := NewTiger(opts, rng)
	require.NotNil(t, tiger)
	tigerDoor := tiger.tigerDoor
	tiger.PerformAction(tigerListen)
	assert.Equal(t, tigerDoor, tiger.Observation())
}
