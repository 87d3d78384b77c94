// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package random isolates the single non-determinism source the agent and
// its environments depend on behind a small seedable Source, so that runs
// are reproducible given a fixed seed and tests can assert on deterministic
// outcomes.
package random

import (
	"math/rand"
	"sync"
)

// Source produces uniform reals and integers. It is safe for concurrent
// use; the core itself is single-threaded, but ambient observability
// goroutines never call it, so the lock is cheap insurance rather than a
// load-bearing feature.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Source seeded deterministically from seed.
func New(seed uint64) *Source {
	return &Source{rng: rand.New(rand.NewSource(int64(seed)))}
}

// Float64 returns a uniform double in [0, 1).
func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// IntRange returns a uniform integer in [0, end) via rejection sampling,
// matching the original C++ implementation's modulo-bias correction.
func (s *Source) IntRange(end int) int {
	if end <= 0 {
		panic("random: IntRange requires end > 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	const maxInt = int(^uint(0) >> 1)
	remainder := maxInt % end
	r := s.rng.Int()
	for r < remainder {
		r = s.rng.Int()
	}
	return r % end
}

// IntBetween returns a uniform integer in [start, end).
func (s *Source) IntBetween(start, end int) int {
	if start >= end {
		panic("random: IntBetween requires start < end")
	}
	return start + s.IntRange(end-start)
}

// Bool returns true with probability p.
func (s *Source) Bool(p float64) bool {
	return s.Float64() < p
}
