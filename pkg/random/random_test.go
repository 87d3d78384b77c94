// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat64_InRange(t *testing.T) {
	s := New(0)
	for i := 0; i < 1000; i++ {
		v := s.Float64()
		assert.True(t, v >= 0.0 && v < 1.0)
	}
}

func TestIntRange_InRange(t *testing.T) {
	s := New(1)
	for i := 0; i < 1000; i++ {
		v := s.IntRange(7)
		assert.True(t, v >= 0 && v < 7)
	}
}

func TestIntBetween_InRange(t *testing.T) {
	s := New(2)
	for i := 0; i < 1000; i++ {
		v := s.IntBetween(3, 9)
		assert.True(t, v >= 3 && v < 9)
	}
}

func TestSameSeed_IsReproducible(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}
