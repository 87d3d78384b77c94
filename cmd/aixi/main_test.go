// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/aixi-go/aixi/pkg/interaction"
)

func TestNewRootCmd_HasRunSubcommandWithTwoArgs(t *testing.T) {
	root := newRootCmd()
	run, _, err := root.Find([]string{"run"})
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.NoError(t, run.Args(run, []string{"config.txt", "out.csv"}))
	assert.Error(t, run.Args(run, []string{"config.txt"}))
}

func TestNewRootCmd_RunHasWatchServeAndLogJSONFlags(t *testing.T) {
	root := newRootCmd()
	run, _, err := root.Find([]string{"run"})
	require.NoError(t, err)
	assert.NotNil(t, run.Flags().Lookup("watch"))
	assert.NotNil(t, run.Flags().Lookup("serve"))
	assert.NotNil(t, run.Flags().Lookup("log-json"))
}

func TestChannelSink_PublishDropsRatherThanBlocksWhenFull(t *testing.T) {
	ch := make(channelSink, 1)
	ch.Publish(interaction.CycleSnapshot{Cycle: 1})
	assert.NotPanics(t, func() {
		ch.Publish(interaction.CycleSnapshot{Cycle: 2})
	})
	assert.Len(t, ch, 1)
}

func TestRateLimitSink_BlocksUntilLimiterAdmitsTheCycle(t *testing.T) {
	sink := &rateLimitSink{limiter: rate.NewLimiter(rate.Inf, 1), ctx: context.Background()}
	assert.NotPanics(t, func() { sink.Publish(interaction.CycleSnapshot{}) })
}
