// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package env

import (
	"fmt"
	"strings"

	"github.com/aixi-go/aixi/pkg/config"
	"github.com/aixi-go/aixi/pkg/random"
)

// TicTacToe cell states.
const (
	tttEmpty = 0
	tttAgent = 1
	tttEnv   = 2
)

// TicTacToe rewards.
const (
	tttRewardInvalid = 0
	tttRewardLoss    = 1
	tttRewardNull    = 3
	tttRewardDraw    = 4
	tttRewardWin     = 5
)

// TicTacToe plays repeated games against an opponent who moves
// uniformly at random. A win is worth 2 above baseline, a draw 1, a
// loss -2, and attempting to play an already-occupied square is -3 and
// immediately restarts the game.
type TicTacToe struct {
	rng               *random.Source
	board             [3][3]int
	actionsSinceReset int
	observation       int
	reward            int
	action            int
}

// NewTicTacToe constructs a TicTacToe environment.
func NewTicTacToe(_ config.Options, rng *random.Source) *TicTacToe {
	t := &TicTacToe{rng: rng}
	t.reset()
	return t
}

func (t *TicTacToe) reset() {
	t.board = [3][3]int{}
	t.computeObservation()
	t.actionsSinceReset = 0
}

func (t *TicTacToe) computeObservation() {
	obs := 0
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			obs = t.board[r][c] + 4*obs
		}
	}
	t.observation = obs
}

func (t *TicTacToe) checkWin() bool {
	b := t.board
	for r := 0; r < 3; r++ {
		if b[r][0] != tttEmpty && b[r][0] == b[r][1] && b[r][1] == b[r][2] {
			return true
		}
	}
	for c := 0; c < 3; c++ {
		if b[0][c] != tttEmpty && b[0][c] == b[1][c] && b[1][c] == b[2][c] {
			return true
		}
	}
	if b[1][1] != tttEmpty && b[0][0] == b[1][1] && b[1][1] == b[2][2] {
		return true
	}
	if b[1][1] != tttEmpty && b[0][2] == b[1][1] && b[1][1] == b[2][0] {
		return true
	}
	return false
}

func (t *TicTacToe) MaxAction() int      { return 8 }
func (t *TicTacToe) MaxObservation() int { return 174762 }
func (t *TicTacToe) MaxReward() int      { return tttRewardWin }
func (t *TicTacToe) Observation() int    { return t.observation }
func (t *TicTacToe) Reward() int         { return t.reward }
func (t *TicTacToe) IsFinished() bool    { return false }

func (t *TicTacToe) PerformAction(action int) {
	if !IsValidAction(t, action) {
		panic(fmt.Sprintf("tictactoe: invalid action %d", action))
	}
	t.action = action
	t.actionsSinceReset++

	r, c := action/3, action%3

	if t.board[r][c] != tttEmpty {
		t.reward = tttRewardInvalid
		t.reset()
		return
	}

	t.board[r][c] = tttAgent

	if t.checkWin() {
		t.reward = tttRewardWin
		t.reset()
		return
	}
	if t.actionsSinceReset == 5 {
		t.reward = tttRewardDraw
		t.reset()
		return
	}

	for t.board[r][c] != tttEmpty {
		r = t.rng.IntRange(3)
		c = t.rng.IntRange(3)
	}
	t.board[r][c] = tttEnv

	if t.checkWin() {
		t.reward = tttRewardLoss
		t.reset()
		return
	}

	t.reward = tttRewardNull
	t.computeObservation()
}

func (t *TicTacToe) Print() string {
	var b strings.Builder
	fmt.Fprintf(&b, "action = %d, observation = %d, reward = %d, board:\n", t.action, t.observation, t.reward)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			switch t.board[r][c] {
			case tttEmpty:
				b.WriteString(".")
			case tttAgent:
				b.WriteString("A")
			default:
				b.WriteString("O")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
