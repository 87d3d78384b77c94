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

func TestNew_BuildsEveryRegisteredEnvironment(t *testing.T) {
	opts := config.Options{
		"maze-num-rows": "2", "maze-num-cols": "2",
		"maze-layout1": "&*", "maze-layout2": "&&",
		"maze-rewards1": "0,0", "maze-rewards2": "0,0",
	}
	names := []string{
		"coin-flip", "rock-paper-scissors", "tiger", "extended-tiger",
		"kuhn-poker", "tictactoe", "maze", "pacman",
	}
	for _, name := range names {
		e, err := New(name, opts, random.New(1))
		require.NoError(t, err, name)
		assert.NotNil(t, e, name)
	}
}

func TestNew_UnknownEnvironmentReturnsError(t *testing.T) {
	_, err := New("not-a-real-environment", config.Options{}, random.New(1))
	assert.Error(t, err)
}

func TestActionBits_ObservationBits_RewardBits_MatchRequiredWidth(t *testing.T) {
	c := NewCoinFlip(config.Options{}, random.New(1))
	assert.Equal(t, 1, ActionBits(c))
	assert.Equal(t, 1, ObservationBits(c))
	assert.Equal(t, 1, RewardBits(c))
	assert.Equal(t, 2, PerceptBits(c))
}

func TestIsValidAction_RejectsOutOfRange(t *testing.T) {
	c := NewCoinFlip(config.Options{}, random.New(1))
	assert.True(t, IsValidAction(c, 0))
	assert.True(t, IsValidAction(c, 1))
	assert.False(t, IsValidAction(c, 2))
	assert.False(t, IsValidAction(c, -1))
}
