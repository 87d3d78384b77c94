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

func TestCoinFlip_CorrectPredictionEarnsReward(t *testing.T) {
	c := NewCoinFlip(config.Options{"coin-flip-p": "1.0"}, random.New(1))
	c.observation = coinHeads
	c.PerformAction(coinHeads)
	assert.Equal(t, coinHeads, c.action)
	assert.Equal(t, 1, c.Reward())
}

func TestCoinFlip_RewardMatchesPredictionAccuracy(t *testing.T) {
	c := NewCoinFlip(config.Options{}, random.New(7))
	for i := 0; i < 50; i++ {
		c.PerformAction(coinHeads)
		if c.Reward() == 1 {
			assert.Equal(t, coinHeads, c.Observation())
		} else {
			assert.Equal(t, coinTails, c.Observation())
		}
	}
}

func TestCoinFlip_InvalidActionPanics(t *testing.T) {
	c := NewCoinFlip(config.Options{}, random.New(1))
	assert.Panics(t, func() { c.PerformAction(2) })
}

func TestCoinFlip_NeverFinishes(t *testing.T) {
	c := NewCoinFlip(config.Options{}, random.New(1))
	assert.False(t, c.IsFinished())
}

func TestCoinFlip_CustomBiasIsHonored(t *testing.T) {
	c := NewCoinFlip(config.Options{"coin-flip-p": "1.0"}, random.New(1))
	for i := 0; i < 10; i++ {
		c.PerformAction(coinHeads)
		assert.Equal(t, coinHeads, c.Observation())
	}
}
