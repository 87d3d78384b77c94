// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package agent implements the MC-AIXI-CTW agent shell: it owns a CTW
// mixture model, encodes actions and percepts as bit strings, and uses
// ρUCT (pkg/search) to choose actions that maximize expected future
// reward under the model.
package agent

import (
	"errors"

	"github.com/aixi-go/aixi/pkg/bits"
	"github.com/aixi-go/aixi/pkg/config"
	"github.com/aixi-go/aixi/pkg/ctw"
	"github.com/aixi-go/aixi/pkg/env"
	"github.com/aixi-go/aixi/pkg/random"
	"github.com/aixi-go/aixi/pkg/search"
)

// ErrOutOfSequence is returned by ModelUpdatePercept when it is called
// twice without an intervening ModelUpdate(action). ModelUpdate itself
// does not check the order.
var ErrOutOfSequence = errors.New("agent: model updates must alternate percept and action")

type updateKind int

const (
	updateNone updateKind = iota
	updateAction
	updatePercept
)

// updateRecord remembers one history push so ModelRevert can undo it
// with the matching tree operation (trained vs. history-only).
type updateRecord struct {
	trained bool
	width   int
}

// Undo is an opaque snapshot produced by Snapshot and consumed by
// Revert to restore the agent (and its CTW model) to an earlier state.
type Undo struct {
	age         int
	totalReward float64
	stackDepth  int
	lastUpdate  updateKind
}

// Agent is the MC-AIXI-CTW agent shell.
type Agent struct {
	model *ctw.ContextTree
	rng   *random.Source

	maxAction      int
	maxObservation int
	maxReward      int
	actionBits     int
	observationBits int
	rewardBits     int
	perceptBits    int

	horizon        int
	simulations    int
	learningPeriod int
	hasLearning    bool
	exploration    float64
	exploreDecay   float64

	age         int
	totalReward float64
	lastUpdate  updateKind
	updates     []updateRecord
}

// New constructs an agent from its configuration and the environment it
// will act in (used only to read the environment's action/observation/
// reward bounds; the agent never calls back into the environment).
func New(cfg config.AgentConfig, environment env.Environment, rng *random.Source) *Agent {
	a := &Agent{
		model:          ctw.New(cfg.CTDepth),
		rng:            rng,
		maxAction:      environment.MaxAction(),
		maxObservation: environment.MaxObservation(),
		maxReward:      environment.MaxReward(),
		horizon:        cfg.AgentHorizon,
		simulations:    cfg.MCSimulations,
		learningPeriod: cfg.LearningPeriod,
		hasLearning:    cfg.LearningPeriod > 0,
		exploration:    cfg.Exploration,
		exploreDecay:   cfg.ExploreDecay,
	}
	a.actionBits = bits.Required(a.maxAction)
	a.observationBits = bits.Required(a.maxObservation)
	a.rewardBits = bits.Required(a.maxReward)
	a.perceptBits = a.rewardBits + a.observationBits
	return a
}

// Age is the number of (observation, reward) cycles the agent has seen.
func (a *Agent) Age() int { return a.age }

// TotalReward is the cumulative reward received so far.
func (a *Agent) TotalReward() float64 { return a.totalReward }

// AverageReward is TotalReward divided by Age, or 0 before the first cycle.
func (a *Agent) AverageReward() float64 {
	if a.age == 0 {
		return 0
	}
	return a.totalReward / float64(a.age)
}

// HistorySize is the number of bits currently in the model's history.
func (a *Agent) HistorySize() int { return a.model.HistorySize() }

// Horizon is the configured planning horizon, in cycles.
func (a *Agent) Horizon() int { return a.horizon }

// ModelSize is the number of CT nodes materialized in the model.
func (a *Agent) ModelSize() int { return a.model.Size() }

// MaxAction, MaxReward satisfy search.Agent.
func (a *Agent) MaxAction() int { return a.maxAction }
func (a *Agent) MaxReward() int { return a.maxReward }

// Rand satisfies search.Agent, exposing the shared RNG for UCB jitter.
func (a *Agent) Rand() *random.Source { return a.rng }

// MaxBitsNeeded is the widest single-operation bit width the agent will
// ever encode, used by callers that need to size scratch buffers.
func (a *Agent) MaxBitsNeeded() int {
	if a.actionBits > a.perceptBits {
		return a.actionBits
	}
	return a.perceptBits
}

// IsLearningPeriodExceeded reports whether Age has passed the
// configured learning-period cutoff (false if no cutoff is configured).
func (a *Agent) IsLearningPeriodExceeded() bool {
	return a.hasLearning && a.age > a.learningPeriod
}

// ExplorationRate is the current (possibly decayed) value of ε.
func (a *Agent) ExplorationRate() float64 { return a.exploration }

// DecayExploration applies one step of the configured ε decay.
func (a *Agent) DecayExploration() { a.exploration *= a.exploreDecay }

// GenRandomAction returns an action drawn uniformly from [0, MaxAction].
func (a *Agent) GenRandomAction() int { return a.rng.IntRange(a.maxAction + 1) }

// GenAction samples an action from the CTW model's predictive
// distribution without training the model, mirroring GenPercept.
func (a *Agent) GenAction() int {
	symbols := a.model.GenRandomSymbols(a.rng, a.actionBits)
	return bits.Decode(symbols, a.actionBits) % (a.maxAction + 1)
}

// GenPercept samples an (observation, reward) pair from the model's
// predictive distribution without training the model.
func (a *Agent) GenPercept() (observation, reward int) {
	symbols := a.model.GenRandomSymbols(a.rng, a.perceptBits)
	return a.decodePercept(symbols)
}

// GenPerceptAndUpdate samples an (observation, reward) pair and trains
// the model on the sampled bits, satisfying search.Agent.
func (a *Agent) GenPerceptAndUpdate() (observation, reward int) {
	symbols := a.model.GenRandomSymbolsAndUpdate(a.rng, a.perceptBits)
	a.updates = append(a.updates, updateRecord{trained: true, width: a.perceptBits})
	return a.decodePercept(symbols)
}

// ModelUpdatePercept updates the model on an observed (observation,
// reward) pair, advancing age and total reward. Once the configured
// learning period is exceeded, the mixture is no longer trained on new
// percepts — the symbols are still pushed into the history (so future
// predictions stay conditioned on them) via UpdateHistorySymbols rather
// than UpdateSymbols. It must not be called twice in a row without an
// intervening ModelUpdate(action).
func (a *Agent) ModelUpdatePercept(observation, reward int) error {
	if a.lastUpdate == updatePercept {
		return ErrOutOfSequence
	}
	symbols := a.encodePercept(observation, reward)
	if a.IsLearningPeriodExceeded() {
		a.model.UpdateHistorySymbols(symbols)
		a.updates = append(a.updates, updateRecord{trained: false, width: a.perceptBits})
	} else {
		a.model.UpdateSymbols(symbols)
		a.updates = append(a.updates, updateRecord{trained: true, width: a.perceptBits})
	}
	a.age++
	a.totalReward += float64(reward)
	a.lastUpdate = updatePercept
	return nil
}

// ModelUpdate appends action's bits to the model's history without
// training the mixture (an action conditions future predictions but is
// never itself predicted). Satisfies search.Agent.
func (a *Agent) ModelUpdate(action int) {
	symbols := bits.Encode(nil, action, a.actionBits)
	a.model.UpdateHistorySymbols(symbols)
	a.updates = append(a.updates, updateRecord{trained: false, width: a.actionBits})
	a.lastUpdate = updateAction
}

// PredictedActionProb returns the model's current predictive
// probability of action, conditioned on history so far.
func (a *Agent) PredictedActionProb(action int) float64 {
	symbols := bits.Encode(nil, action, a.actionBits)
	return a.model.PredictSequence(symbols)
}

// PerceptProbability returns the model's predictive probability of
// observing (observation, reward) next.
func (a *Agent) PerceptProbability(observation, reward int) float64 {
	return a.model.PredictSequence(a.encodePercept(observation, reward))
}

// PerceptKey packs (observation, reward) into the integer search uses
// to key chance-node children: reward occupies the high bits,
// observation the low bits.
func (a *Agent) PerceptKey(observation, reward int) int {
	return reward<<uint(a.observationBits) | observation
}

// Snapshot captures the agent's current state so Revert can restore it.
func (a *Agent) Snapshot() Undo {
	return Undo{
		age:         a.age,
		totalReward: a.totalReward,
		stackDepth:  len(a.updates),
		lastUpdate:  a.lastUpdate,
	}
}

// Revert undoes every ModelUpdate/ModelUpdatePercept/GenPerceptAndUpdate
// call made since undo was captured, restoring the model and the
// agent's bookkeeping fields exactly.
func (a *Agent) Revert(undo Undo) {
	for len(a.updates) > undo.stackDepth {
		rec := a.updates[len(a.updates)-1]
		a.updates = a.updates[:len(a.updates)-1]
		if rec.trained {
			a.model.RevertN(rec.width)
		} else {
			a.model.RevertHistory(rec.width)
		}
	}
	a.age = undo.age
	a.totalReward = undo.totalReward
	a.lastUpdate = undo.lastUpdate
}

// Reset clears the model and all bookkeeping, returning the agent to
// its just-constructed state.
func (a *Agent) Reset() {
	a.model.Clear()
	a.age = 0
	a.totalReward = 0
	a.lastUpdate = updateNone
	a.updates = nil
}

// Search runs Simulations simulations of ρUCT from the current model
// state and returns the chosen action, leaving the model exactly as it
// was found (every simulation mutates it and then reverts).
func (a *Agent) Search() int {
	undo := a.Snapshot()
	root := search.NewRoot()
	for i := 0; i < a.simulations; i++ {
		root.Sample(a, a.horizon)
		a.Revert(undo)
	}
	if action, ok := search.BestAction(root, a.rng); ok {
		return action
	}
	return a.GenRandomAction()
}

// Playout performs a uniform-random rollout of length horizon, mutating
// the model as it goes, and returns the accumulated reward. Satisfies
// search.Agent; callers (ρUCT) are responsible for reverting.
func (a *Agent) Playout(horizon int) float64 {
	total := 0.0
	for i := 0; i < horizon; i++ {
		a.ModelUpdate(a.GenRandomAction())
		_, reward := a.GenPerceptAndUpdate()
		total += float64(reward)
	}
	return total
}

func (a *Agent) encodePercept(observation, reward int) []bits.Symbol {
	symbols := bits.Encode(nil, reward, a.rewardBits)
	return bits.Encode(symbols, observation, a.observationBits)
}

func (a *Agent) decodePercept(symbols []bits.Symbol) (observation, reward int) {
	rewardSymbols := symbols[:a.rewardBits]
	observationSymbols := symbols[a.rewardBits:]
	reward = bits.Decode(rewardSymbols, a.rewardBits) % (a.maxReward + 1)
	observation = bits.Decode(observationSymbols, a.observationBits) % (a.maxObservation + 1)
	return observation, reward
}
