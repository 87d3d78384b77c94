// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package search implements predictive-UCT (ρUCT): an online Monte Carlo
// Tree Search planner that alternates decision nodes (choose an action
// via UCB1) with chance nodes (sample a percept from the agent's CTW
// model). A fresh tree is grown and discarded for every call to Search.
package search

import (
	"math"

	"github.com/aixi-go/aixi/pkg/random"
)

// Agent is the capability ρUCT needs from the agent it plans for. It is
// defined here, not imported from pkg/agent, so that pkg/agent can own
// the tree without an import cycle.
type Agent interface {
	// MaxAction is the largest valid action value.
	MaxAction() int
	// MaxReward is the largest single-cycle reward the environment can emit.
	MaxReward() int
	// Horizon is the agent's fixed configured planning horizon H, used
	// (not the per-node recursion depth) to compute the UCB exploration
	// bias at every decision node.
	Horizon() int
	// GenPerceptAndUpdate samples an (observation, reward) pair from the
	// CTW model and trains the model on the sampled bits.
	GenPerceptAndUpdate() (observation, reward int)
	// PerceptKey packs an (observation, reward) pair into the integer
	// used to index chance-node children.
	PerceptKey(observation, reward int) int
	// ModelUpdate appends action's bits to the model's history without
	// training the mixture (actions are conditioning context).
	ModelUpdate(action int)
	// Playout performs a uniform-random rollout of length horizon,
	// mutating the model, and returns the accumulated reward.
	Playout(horizon int) float64
	// Rand returns the shared random source, used for UCB tie-breaking.
	Rand() *random.Source
}

type kind int

const (
	decisionNode kind = iota
	chanceNode
)

// Node is a single decision or chance node in the search tree. The full
// tree is rebuilt from scratch for each Search call and discarded when
// it returns; no state survives across calls.
type Node struct {
	kind     kind
	visits   int
	mean     float64
	children map[int]*Node
}

// NewRoot creates the decision node every Search call descends from.
func NewRoot() *Node {
	return &Node{kind: decisionNode, children: make(map[int]*Node)}
}

func newDecisionChild() *Node {
	return &Node{kind: decisionNode, children: make(map[int]*Node)}
}

func newChanceChild() *Node {
	return &Node{kind: chanceNode, children: make(map[int]*Node)}
}

// Visits is this node's sample count.
func (n *Node) Visits() int { return n.visits }

// Mean is the arithmetic mean of returns accumulated at this node.
func (n *Node) Mean() float64 { return n.mean }

// Child returns the existing child keyed by idx (an action at a
// decision node, a packed percept integer at a chance node), or nil.
func (n *Node) Child(idx int) *Node { return n.children[idx] }

func (n *Node) backup(reward float64) float64 {
	n.visits++
	n.mean += (reward - n.mean) / float64(n.visits)
	return reward
}

// Sample descends one simulation through the tree, mutating agent's
// model along the way, and returns the sampled return. The caller is
// responsible for reverting the agent's model to its pre-sample state
// before the next call.
//
// The horizon is not decremented across the decision-to-chance link;
// this mirrors a peculiarity of the original ρUCT formulation that this
// implementation preserves rather than "fixes".
func (n *Node) Sample(agent Agent, horizon int) float64 {
	if horizon == 0 {
		return 0
	}

	if n.kind == chanceNode {
		observation, reward := agent.GenPerceptAndUpdate()
		key := agent.PerceptKey(observation, reward)
		child, ok := n.children[key]
		if !ok {
			child = newDecisionChild()
			n.children[key] = child
		}
		total := float64(reward) + child.Sample(agent, horizon-1)
		return n.backup(total)
	}

	if n.visits == 0 {
		return n.backup(agent.Playout(horizon))
	}

	action := n.selectAction(agent)
	agent.ModelUpdate(action)
	child, ok := n.children[action]
	if !ok {
		child = newChanceChild()
		n.children[action] = child
	}
	return n.backup(child.Sample(agent, horizon))
}

// selectAction chooses the action maximizing UCB1 priority, giving
// unvisited actions infinite priority so every action is tried at least
// once before any is revisited.
func (n *Node) selectAction(agent Agent) int {
	maxAction := agent.MaxAction()
	lnVisits := math.Log(float64(n.visits))
	exploreConstant := float64(agent.Horizon()) * float64(agent.MaxReward())

	bestAction := 0
	bestPriority := math.Inf(-1)
	for a := 0; a <= maxAction; a++ {
		child := n.children[a]
		var priority float64
		if child == nil || child.visits == 0 {
			priority = math.Inf(1)
		} else {
			priority = child.mean + exploreConstant*math.Sqrt(2*lnVisits/float64(child.visits))
			priority += agent.Rand().Float64() * 1e-3
		}
		if priority > bestPriority {
			bestPriority, bestAction = priority, a
		}
	}
	return bestAction
}

// BestAction returns the action whose direct child has the highest mean
// return, breaking ties with a tiny random perturbation, along with
// whether any child existed at all (false means the search never
// expanded a single action, which callers handle by picking uniformly
// at random).
func BestAction(root *Node, rng *random.Source) (action int, ok bool) {
	bestPriority := math.Inf(-1)
	found := false
	for a, child := range root.children {
		priority := child.mean + rng.Float64()*0.0001
		if priority > bestPriority {
			bestPriority, action, found = priority, a, true
		}
	}
	return action, found
}
