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

// ExtendedTiger actions.
const (
	etListen = 0
	etLeft   = 1
	etRight  = 2
	etStand  = 3
)

// ExtendedTiger observations.
const (
	etObsNull  = 0
	etObsLeft  = 1
	etObsRight = 2
)

// ExtendedTiger rewards.
const (
	etRewardInvalid = 0
	etRewardTiger   = 0
	etRewardStand   = 99
	etRewardListen  = 100
	etRewardGold    = 130
)

// ExtendedTiger adds a stand/sit state machine to Tiger: the agent must
// stand before it may open a door, and may only listen while sitting.
// Any action attempted in the wrong posture is invalid and earns no
// reward. Opening a door re-seats the agent and re-randomizes the doors.
type ExtendedTiger struct {
	rng            *random.Source
	listenAccuracy float64
	sitting        bool
	tigerDoor      int
	goldDoor       int
	observation    int
	reward         int
	action         int
}

// NewExtendedTiger constructs an ExtendedTiger environment.
func NewExtendedTiger(opts config.Options, rng *random.Source) *ExtendedTiger {
	t := &ExtendedTiger{
		rng:            rng,
		listenAccuracy: opts.GetFloat("tiger-listen-accuracy", 0.85),
		observation:    etObsNull,
	}
	t.reset()
	return t
}

func (t *ExtendedTiger) reset() {
	if t.rng.Bool(0.5) {
		t.tigerDoor, t.goldDoor = etObsLeft, etObsRight
	} else {
		t.tigerDoor, t.goldDoor = etObsRight, etObsLeft
	}
	t.sitting = true
}

func (t *ExtendedTiger) MaxAction() int      { return 3 }
func (t *ExtendedTiger) MaxObservation() int { return 2 }
func (t *ExtendedTiger) MaxReward() int      { return etRewardGold }
func (t *ExtendedTiger) Observation() int    { return t.observation }
func (t *ExtendedTiger) Reward() int         { return t.reward }
func (t *ExtendedTiger) IsFinished() bool    { return false }

func (t *ExtendedTiger) PerformAction(action int) {
	if !IsValidAction(t, action) {
		panic(fmt.Sprintf("extended-tiger: invalid action %d", action))
	}
	t.action = action

	// Unless explicitly accounted for below, the action is invalid.
	t.observation = etObsNull
	t.reward = etRewardInvalid

	switch {
	case action == etListen && t.sitting:
		if t.rng.Bool(t.listenAccuracy) {
			t.observation = t.tigerDoor
		} else {
			t.observation = t.goldDoor
		}
		t.reward = etRewardListen
	case action == etLeft && !t.sitting:
		t.reward = pick(t.tigerDoor == etObsLeft, etRewardTiger, etRewardGold)
		t.reset()
	case action == etRight && !t.sitting:
		t.reward = pick(t.tigerDoor == etObsRight, etRewardTiger, etRewardGold)
		t.reset()
	case action == etStand && t.sitting:
		t.reward = etRewardStand
		t.sitting = false
	}
}

func (t *ExtendedTiger) Print() string {
	action := "listen"
	switch t.action {
	case etLeft:
		action = "open left door"
	case etRight:
		action = "open right door"
	case etStand:
		action = "stand up"
	}
	obs := "null"
	switch t.observation {
	case etObsLeft:
		obs = "hear tiger at left door"
	case etObsRight:
		obs = "hear tiger at right door"
	}
	posture := "standing"
	if t.sitting {
		posture = "sitting"
	}
	return fmt.Sprintf("action = %s, observation = %s, reward = %d, agent is now %s\n",
		action, obs, t.reward, posture)
}
