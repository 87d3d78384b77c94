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

// Tiger actions.
const (
	tigerListen = 0
	tigerLeft   = 1
	tigerRight  = 2
)

// Tiger observations.
const (
	tigerObsNull  = 0
	tigerObsLeft  = 1
	tigerObsRight = 2
)

// Tiger rewards, shifted by +100 so the minimum (eaten) maps to 0:
// raw -100/-1/+10 becomes 0/99/110.
const (
	tigerRewardEaten  = 0
	tigerRewardListen = 99
	tigerRewardGold   = 110
)

// Tiger is the classic two-door partially observable planning benchmark:
// a tiger and a pot of gold are hidden behind one of two doors. Listening
// gives a noisy hint at the tiger's location for a small penalty; opening
// a door ends the round, either eating the agent or awarding the gold,
// and the doors are re-randomized.
type Tiger struct {
	rng            *random.Source
	listenAccuracy float64
	tigerDoor      int
	goldDoor       int
	observation    int
	reward         int
	action         int
}

// NewTiger constructs a Tiger environment.
func NewTiger(opts config.Options, rng *random.Source) *Tiger {
	t := &Tiger{
		rng:            rng,
		listenAccuracy: opts.GetFloat("tiger-listen-accuracy", 0.85),
		observation:    tigerObsNull,
	}
	t.placeTiger()
	return t
}

func (t *Tiger) placeTiger() {
	if t.rng.Bool(0.5) {
		t.tigerDoor, t.goldDoor = tigerObsLeft, tigerObsRight
	} else {
		t.tigerDoor, t.goldDoor = tigerObsRight, tigerObsLeft
	}
}

func (t *Tiger) MaxAction() int      { return 2 }
func (t *Tiger) MaxObservation() int { return 2 }
func (t *Tiger) MaxReward() int      { return tigerRewardGold }
func (t *Tiger) Observation() int    { return t.observation }
func (t *Tiger) Reward() int         { return t.reward }
func (t *Tiger) IsFinished() bool    { return false }

func (t *Tiger) PerformAction(action int) {
	if !IsValidAction(t, action) {
		panic(fmt.Sprintf("tiger: invalid action %d", action))
	}
	t.action = action

	if action == tigerListen {
		t.reward = tigerRewardListen
		if t.rng.Bool(t.listenAccuracy) {
			t.observation = t.tigerDoor
		} else {
			t.observation = t.goldDoor
		}
		return
	}

	if action == tigerLeft {
		t.reward = pick(t.tigerDoor == tigerObsLeft, tigerRewardEaten, tigerRewardGold)
	} else {
		t.reward = pick(t.tigerDoor == tigerObsRight, tigerRewardEaten, tigerRewardGold)
	}
	t.observation = tigerObsNull
	t.placeTiger()
}

func (t *Tiger) Print() string {
	action := "listen"
	switch t.action {
	case tigerLeft:
		action = "open left door"
	case tigerRight:
		action = "open right door"
	}
	obs := "null"
	switch t.observation {
	case tigerObsLeft:
		obs = "hear tiger at left door"
	case tigerObsRight:
		obs = "hear tiger at right door"
	}
	return fmt.Sprintf("action = %s, observation = %s, reward = %d\n", action, obs, t.reward)
}
