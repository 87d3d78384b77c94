// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// AgentConfig is the typed view of the subset of Options the agent
// requires, validated in one pass instead of ad hoc parse-error checks
// scattered across call sites.
type AgentConfig struct {
	Environment     string  `validate:"required"`
	CTDepth         int     `validate:"required,gt=0"`
	AgentHorizon    int     `validate:"required,gt=0"`
	MCSimulations   int     `validate:"required,gt=0"`
	LearningPeriod  int     `validate:"gte=0"`
	Exploration     float64 `validate:"gte=0"`
	ExploreDecay    float64 `validate:"gte=0,lte=1"`
	TerminateAge    int     `validate:"gte=0"`
	HasTerminateAge bool
	RandomSeed      uint64
	Verbose         bool
}

// DecodeAgentConfig reads the agent-level options out of opts and
// validates them, returning a combined error describing every violated
// constraint.
func DecodeAgentConfig(opts Options) (AgentConfig, error) {
	env, err := opts.RequiredString("environment")
	if err != nil {
		return AgentConfig{}, err
	}
	ctDepth, err := opts.RequiredInt("ct-depth")
	if err != nil {
		return AgentConfig{}, err
	}
	horizon, err := opts.RequiredInt("agent-horizon")
	if err != nil {
		return AgentConfig{}, err
	}
	sims, err := opts.RequiredInt("mc-simulations")
	if err != nil {
		return AgentConfig{}, err
	}

	cfg := AgentConfig{
		Environment:     env,
		CTDepth:         ctDepth,
		AgentHorizon:    horizon,
		MCSimulations:   sims,
		LearningPeriod:  opts.GetInt("learning-period", 0),
		Exploration:     opts.GetFloat("exploration", 0.0),
		ExploreDecay:    opts.GetFloat("explore-decay", 1.0),
		TerminateAge:    opts.GetInt("terminate-age", 0),
		HasTerminateAge: opts.Has("terminate-age"),
		RandomSeed:      uint64(opts.GetInt("random-seed", 0)),
		Verbose:         opts.GetBool("verbose", false),
	}

	if err := validate.Struct(cfg); err != nil {
		return AgentConfig{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return cfg, nil
}
