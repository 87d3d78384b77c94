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

// KuhnPoker actions.
const (
	kpBet  = 0
	kpPass = 1
)

// KuhnPoker card observations. The final observation is the agent's card
// plus the opponent's bet status (kpPass or kpBet).
const (
	kpJack  = 0
	kpQueen = 1
	kpKing  = 2
	kpBetOb = 0
	kpPassOb = 4
)

// KuhnPoker rewards.
const (
	kpRewardBetLoss  = 0
	kpRewardPassLoss = 1
	kpRewardPassWin  = 3
	kpRewardBetWin   = 4
)

// Opponent betting probabilities. King and jack use theirs for the
// opening bet; a queen always opens with a pass and uses its probability
// to bet after the agent bets.
const (
	kpBetProbKing  = 0.7
	kpBetProbQueen = (1.0 + kpBetProbKing) / 3.0
	kpBetProbJack  = kpBetProbKing / 3.0
)

// KuhnPoker is a three-card, two-player zero-sum poker variant. The
// opponent acts first each round; a card-dependent bluffing policy
// governs both its opening bet and its chance to "change its mind" and
// bet after initially passing, once the agent raises.
type KuhnPoker struct {
	rng *random.Source

	envAction int
	agentCard int
	envCard   int

	agentPrevCard int
	envPrevAction int
	envPrevCard   int

	observation int
	reward      int
	action      int
}

// NewKuhnPoker constructs a KuhnPoker environment.
func NewKuhnPoker(_ config.Options, rng *random.Source) *KuhnPoker {
	k := &KuhnPoker{rng: rng}
	k.reset()
	return k
}

func (k *KuhnPoker) randomCard() int {
	switch k.rng.IntRange(3) {
	case 0:
		return kpJack
	case 1:
		return kpQueen
	default:
		return kpKing
	}
}

// reset deals a new round: saves the previous round's state for Print,
// deals new cards, and has the opponent choose its opening action.
func (k *KuhnPoker) reset() {
	k.envPrevAction = k.envAction
	k.agentPrevCard = k.agentCard
	k.envPrevCard = k.envCard

	k.agentCard = k.randomCard()
	k.envCard = k.agentCard
	for k.envCard == k.agentCard {
		k.envCard = k.randomCard()
	}

	switch k.envCard {
	case kpJack:
		k.envAction = pick(k.rng.Float64() < kpBetProbJack, kpBet, kpPass)
	case kpQueen:
		k.envAction = kpPass
	case kpKing:
		k.envAction = pick(k.rng.Float64() < kpBetProbKing, kpBet, kpPass)
	}

	k.observation = k.agentCard + pick(k.envAction == kpPass, kpPassOb, kpBetOb)
}

func (k *KuhnPoker) MaxAction() int      { return 1 }
func (k *KuhnPoker) MaxObservation() int { return 6 }
func (k *KuhnPoker) MaxReward() int      { return kpRewardBetWin }
func (k *KuhnPoker) Observation() int    { return k.observation }
func (k *KuhnPoker) Reward() int         { return k.reward }
func (k *KuhnPoker) IsFinished() bool    { return false }

func (k *KuhnPoker) PerformAction(action int) {
	if !IsValidAction(k, action) {
		panic(fmt.Sprintf("kuhn-poker: invalid action %d", action))
	}
	k.action = action

	if k.action == kpPass && k.envAction == kpBet {
		k.reward = kpRewardPassLoss
		k.reset()
		return
	}

	if k.action == kpBet && k.envAction == kpPass {
		switch {
		case k.envCard == kpQueen && k.rng.Float64() < kpBetProbQueen:
			k.envAction = kpBet
		case k.envCard == kpKing:
			k.envAction = kpBet
		default:
			k.reward = kpRewardPassWin
			k.reset()
			return
		}
	}

	agentWins := k.envCard == kpJack || (k.envCard == kpQueen && k.agentCard == kpKing)
	if agentWins {
		k.reward = pick(k.envAction == kpBet, kpRewardBetWin, kpRewardPassWin)
	} else {
		k.reward = pick(k.action == kpBet, kpRewardBetLoss, kpRewardPassLoss)
	}
	k.reset()
}

func kuhnCardName(card int) string {
	switch card {
	case kpJack:
		return "jack"
	case kpQueen:
		return "queen"
	default:
		return "king"
	}
}

func (k *KuhnPoker) Print() string {
	agentWins := k.reward == kpRewardPassWin || k.reward == kpRewardBetWin
	return fmt.Sprintf(
		"agent card = %s, environment card = %s, agent %s, environment %s\nagent %s, reward = %d\n",
		kuhnCardName(k.agentPrevCard), kuhnCardName(k.envPrevCard),
		pick2(k.action == kpPass, "passes", "bets"),
		pick2(k.envPrevAction == kpPass, "passes", "bets"),
		pick2(agentWins, "wins", "loses"), k.reward,
	)
}

func pick2(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
