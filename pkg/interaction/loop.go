// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package interaction drives the agent/environment cycle: read the
// current percept, train the model on it, choose an action (ε-greedy
// over ρUCT search), execute it, and log the result. It is the single
// goroutine permitted to mutate the agent, its model, and the
// environment; every other ambient consumer (TUI, HTTP status, metrics)
// only ever reads snapshots this loop publishes.
package interaction

import (
	"context"
	"time"

	"github.com/aixi-go/aixi/pkg/agent"
	"github.com/aixi-go/aixi/pkg/env"
	"github.com/aixi-go/aixi/pkg/logging"
	"github.com/aixi-go/aixi/pkg/random"
)

// CycleSnapshot is the read-only view of one completed cycle, published
// for ambient consumers after every iteration of Run.
type CycleSnapshot struct {
	Cycle           int
	Observation     int
	Reward          int
	Action          int
	Explored        bool
	ExploreRate     float64
	TotalReward     float64
	AverageReward   float64
	ModelSize       int
	CycleTime       time.Duration
}

// Sink receives one CycleSnapshot per completed cycle. Implementations
// must not block the driver for long; Run does not buffer beyond one
// pending send per sink.
type Sink interface {
	Publish(CycleSnapshot)
}

// Options configures a Run call.
type Options struct {
	// TerminateAge stops the loop once Age() exceeds this value. It is
	// ignored unless HasTerminateAge is set; without it the loop runs
	// until the environment reports IsFinished().
	TerminateAge int
	// HasTerminateAge distinguishes "stop at age 0" from "no limit".
	HasTerminateAge bool
	// Verbose logs a per-cycle summary at debug level and, on
	// power-of-two cycles, a cumulative summary at info level, mirroring
	// the original driver's console output.
	Verbose bool
	Sinks   []Sink
}

// Run executes the agent/environment cycle until the environment
// finishes or the configured age limit is reached, invoking onCycle
// (typically a CSV logger's WriteRow) once per completed cycle.
func Run(ctx context.Context, a *agent.Agent, e env.Environment, rng *random.Source, opts Options, logger *logging.Logger, onCycle func(CycleSnapshot) error) error {
	cycle := 0
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if e.IsFinished() {
			return nil
		}
		if opts.HasTerminateAge && a.Age() > opts.TerminateAge {
			return nil
		}

		start := time.Now()
		cycle++

		observation, reward := e.Observation(), e.Reward()

		// Captured before ModelUpdatePercept advances age, so it reflects
		// the learning-period check ModelUpdatePercept itself makes
		// internally (freezing CTW training) and gates exploration below
		// the same way.
		frozen := a.IsLearningPeriodExceeded()
		if err := a.ModelUpdatePercept(observation, reward); err != nil {
			return err
		}

		explored := false
		var action int
		if !frozen && rng.Bool(a.ExplorationRate()) {
			action = a.GenRandomAction()
			explored = true
		} else {
			action = a.Search()
		}

		e.PerformAction(action)
		a.ModelUpdate(action)

		snapshot := CycleSnapshot{
			Cycle:         cycle,
			Observation:   observation,
			Reward:        reward,
			Action:        action,
			Explored:      explored,
			ExploreRate:   a.ExplorationRate(),
			TotalReward:   a.TotalReward(),
			AverageReward: a.AverageReward(),
			ModelSize:     a.ModelSize(),
			CycleTime:     time.Since(start),
		}

		if err := onCycle(snapshot); err != nil {
			return err
		}
		for _, sink := range opts.Sinks {
			sink.Publish(snapshot)
		}
		if opts.Verbose {
			logVerbose(logger, snapshot, e)
		}

		if !frozen {
			a.DecayExploration()
		}
	}
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func logVerbose(logger *logging.Logger, s CycleSnapshot, e env.Environment) {
	logger.Debug("cycle complete",
		"cycle", s.Cycle, "observation", s.Observation, "reward", s.Reward,
		"action", s.Action, "explored", s.Explored)
	if isPowerOfTwo(s.Cycle) {
		logger.Info("progress summary",
			"cycle", s.Cycle, "average_reward", s.AverageReward,
			"model_size", s.ModelSize, "state", e.Print())
	}
}
