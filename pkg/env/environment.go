// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package env defines the environment contract the agent depends on, and
// the eight toy environments this repository ships.
//
// Every environment is stateful and single-threaded: PerformAction mutates
// internal state and the following Observation/Reward calls reflect the
// result. Minimum action/observation/reward are always 0; maxima are
// environment-specific and must stay consistent with the environment's
// reward table so that RewardBits stays sufficient.
package env

import (
	"fmt"

	"github.com/aixi-go/aixi/pkg/bits"
	"github.com/aixi-go/aixi/pkg/config"
	"github.com/aixi-go/aixi/pkg/random"
)

// Environment is the capability set the agent consumes.
type Environment interface {
	// MaxAction is the largest valid action value (inclusive); valid
	// actions are [0, MaxAction].
	MaxAction() int
	// MaxObservation is the largest value Observation can return.
	MaxObservation() int
	// MaxReward is the largest value Reward can return. Rewards are
	// always non-negative; environments with naturally negative rewards
	// shift them by a constant offset.
	MaxReward() int
	// PerformAction executes action and advances the environment's state.
	PerformAction(action int)
	// Observation returns the most recent observation.
	Observation() int
	// Reward returns the most recent reward.
	Reward() int
	// IsFinished reports whether the episode has ended. Most toy
	// environments in this package reset internally and never finish.
	IsFinished() bool
	// Print renders a human-readable description of current state, used
	// by the interaction loop's verbose progress summary.
	Print() string
}

// IsValidAction reports whether action is within [0, e.MaxAction()].
func IsValidAction(e Environment, action int) bool {
	return action >= 0 && action <= e.MaxAction()
}

// ActionBits is the number of bits required to encode any valid action.
func ActionBits(e Environment) int { return bits.Required(e.MaxAction()) }

// ObservationBits is the number of bits required to encode any valid
// observation.
func ObservationBits(e Environment) int { return bits.Required(e.MaxObservation()) }

// RewardBits is the number of bits required to encode any valid reward.
func RewardBits(e Environment) int { return bits.Required(e.MaxReward()) }

// PerceptBits is the combined width of an encoded (reward, observation)
// percept.
func PerceptBits(e Environment) int { return RewardBits(e) + ObservationBits(e) }

// New constructs the named environment, reading any environment-specific
// options it requires from opts. name matches the "environment" option.
func New(name string, opts config.Options, rng *random.Source) (Environment, error) {
	switch name {
	case "coin-flip":
		return NewCoinFlip(opts, rng), nil
	case "rock-paper-scissors":
		return NewRockPaperScissors(opts, rng), nil
	case "tiger":
		return NewTiger(opts, rng), nil
	case "extended-tiger":
		return NewExtendedTiger(opts, rng), nil
	case "kuhn-poker":
		return NewKuhnPoker(opts, rng), nil
	case "tictactoe":
		return NewTicTacToe(opts, rng), nil
	case "maze":
		return NewMaze(opts, rng), nil
	case "pacman":
		return NewPacMan(opts, rng), nil
	default:
		return nil, fmt.Errorf("env: unknown environment %q", name)
	}
}
