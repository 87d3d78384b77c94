// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package env

import (
	"fmt"

	"github.com/aixi-go/aixi/pkg/config"
	"github.com/aixi-go/aixi/pkg/random"
)

// Rock/paper/scissors throws, shared between actions and observations.
const (
	rpsRock     = 0
	rpsPaper    = 1
	rpsScissors = 2
)

// Rewards.
const (
	rpsLose = 0
	rpsDraw = 1
	rpsWin  = 2
)

// RockPaperScissors pits the agent against an opponent with a single
// exploitable bias: after winning a round by playing rock, the opponent
// always plays rock again next round; otherwise it throws uniformly at
// random. An agent that learns this can win consistently, which is the
// property the E2 scenario exercises.
type RockPaperScissors struct {
	rng         *random.Source
	observation int
	reward      int
	action      int
}

// NewRockPaperScissors constructs a RockPaperScissors environment.
func NewRockPaperScissors(_ config.Options, rng *random.Source) *RockPaperScissors {
	return &RockPaperScissors{
		rng:         rng,
		observation: rpsPaper, // anything but rock, so the first move below is random
	}
}

func (r *RockPaperScissors) MaxAction() int      { return 2 }
func (r *RockPaperScissors) MaxObservation() int { return 2 }
func (r *RockPaperScissors) MaxReward() int      { return 2 }
func (r *RockPaperScissors) Observation() int    { return r.observation }
func (r *RockPaperScissors) Reward() int         { return r.reward }
func (r *RockPaperScissors) IsFinished() bool    { return false }

func (r *RockPaperScissors) PerformAction(action int) {
	if !IsValidAction(r, action) {
		panic(fmt.Sprintf("rock-paper-scissors: invalid action %d", action))
	}
	r.action = action

	if r.observation == rpsRock && r.reward == rpsLose {
		r.observation = rpsRock
	} else {
		r.observation = r.rng.IntRange(3)
	}

	switch {
	case action == r.observation:
		r.reward = rpsDraw
	case action == rpsRock:
		r.reward = pick(r.observation == rpsScissors, rpsWin, rpsLose)
	case action == rpsScissors:
		r.reward = pick(r.observation == rpsPaper, rpsWin, rpsLose)
	case action == rpsPaper:
		r.reward = pick(r.observation == rpsRock, rpsWin, rpsLose)
	}
}

func pick(cond bool, ifTrue, ifFalse int) int {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func throwName(t int) string {
	switch t {
	case rpsRock:
		return "rock"
	case rpsPaper:
		return "paper"
	default:
		return "scissors"
	}
}

func (r *RockPaperScissors) Print() string {
	outcome := "loses"
	switch r.reward {
	case rpsWin:
		outcome = "wins"
	case rpsDraw:
		outcome = "draws"
	}
	return fmt.Sprintf("agent played %s, opponent played %s, agent %s\n",
		throwName(r.action), throwName(r.observation), outcome)
}
