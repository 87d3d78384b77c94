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

// CoinFlip is a biased coin-guessing domain: the agent predicts how a coin
// weighted towards heads with probability coin-flip-p will land. The coin
// is flipped when the prediction is performed; a correct prediction earns
// a reward of 1, an incorrect one earns 0.
type CoinFlip struct {
	rng         *random.Source
	pHeads      float64
	observation int
	reward      int
	action      int
}

const (
	coinTails = 0
	coinHeads = 1
)

// NewCoinFlip constructs a CoinFlip environment from configuration options.
func NewCoinFlip(opts config.Options, rng *random.Source) *CoinFlip {
	c := &CoinFlip{
		rng:    rng,
		pHeads: opts.GetFloat("coin-flip-p", 0.7),
	}
	c.observation = c.flip()
	return c
}

func (c *CoinFlip) flip() int {
	if c.rng.Bool(c.pHeads) {
		return coinHeads
	}
	return coinTails
}

func (c *CoinFlip) MaxAction() int      { return 1 }
func (c *CoinFlip) MaxObservation() int { return 1 }
func (c *CoinFlip) MaxReward() int      { return 1 }
func (c *CoinFlip) Observation() int    { return c.observation }
func (c *CoinFlip) Reward() int         { return c.reward }
func (c *CoinFlip) IsFinished() bool    { return false }

func (c *CoinFlip) PerformAction(action int) {
	if !IsValidAction(c, action) {
		panic(fmt.Sprintf("coin-flip: invalid action %d", action))
	}
	c.action = action
	c.observation = c.flip()
	if action == c.observation {
		c.reward = 1
	} else {
		c.reward = 0
	}
}

func (c *CoinFlip) Print() string {
	return fmt.Sprintf("coin-flip: predicted=%d landed=%d reward=%d\n", c.action, c.observation, c.reward)
}
