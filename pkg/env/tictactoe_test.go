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

	"github.com/aixi-go/aixi/pkg/config"
	"github.com/aixi-go/aixi/pkg/random"
)

func TestTicTacToe_RepeatingAMoveIsInvalid(t *testing.T) {
	ttt := NewTicTacToe(config.Options{}, random.New(1))
	ttt.PerformAction(0)
	if ttt.board[0][0] == tttEmpty {
		// the board was reset by a win/draw/invalid; nothing to assert here
		return
	}
	ttt.board[0][0] = tttAgent
	ttt.PerformAction(0)
	assert.Equal(t, tttRewardInvalid, ttt.Reward())
}

func TestTicTacToe_ValidMoveProducesKnownReward(t *testing.T) {
	ttt := NewTicTacToe(config.Options{}, random.New(2))
	valid := []int{tttRewardInvalid, tttRewardLoss, tttRewardNull, tttRewardDraw, tttRewardWin}
	for i := 0; i < 50; i++ {
		ttt.PerformAction(i % 9)
		assert.Contains(t, valid, ttt.Reward())
	}
}

func TestTicTacToe_ObservationEncodesEmptyBoardAsZero(t *testing.T) {
	ttt := NewTicTacToe(config.Options{}, random.New(3))
	assert.Equal(t, 0, ttt.Observation())
}
