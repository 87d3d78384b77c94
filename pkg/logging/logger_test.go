// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.String())
	}
}

func TestDefault_LogsWithoutPanicking(t *testing.T) {
	l := Default()
	require.NotNil(t, l)
	l.Info("cycle complete", "cycle", 1)
	l.Warn("explored", "rate", 0.1)
}

func TestWith_AttachesFields(t *testing.T) {
	l := Default().With("run_id", "abc123")
	require.NotNil(t, l.Slog())
}

type closingBuffer struct {
	bytes.Buffer
	closed bool
}

func (c *closingBuffer) Close() error {
	c.closed = true
	return nil
}

func TestNew_WithJSONFile_FansOutAndCloses(t *testing.T) {
	buf := &closingBuffer{}
	l := New(Config{Level: LevelInfo, JSONFile: buf, RunID: "run-1"})
	l.Info("hello")
	require.NoError(t, l.Close())
	assert.True(t, buf.closed)
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "run-1")
}

func TestClose_IdempotentWithoutFileSink(t *testing.T) {
	l := Default()
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
}

func TestContext_RoundTrip(t *testing.T) {
	l := Default().With("component", "test")
	ctx := WithContext(context.Background(), l)
	got := FromContext(ctx)
	assert.Same(t, l, got)

	assert.NotNil(t, FromContext(context.Background()))
}
