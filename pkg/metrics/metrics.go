// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package metrics publishes the interaction loop's running average
// reward and model size as OpenTelemetry gauges, exported periodically
// to stdout. It is a read-only observer: Publish is the only entry point
// the driver calls, and it never touches the agent or environment
// directly.
package metrics

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/aixi-go/aixi/pkg/interaction"
)

// Recorder owns the MeterProvider and the two gauges the interaction
// loop updates once per logged cycle.
type Recorder struct {
	provider      *sdkmetric.MeterProvider
	averageReward metric.Float64Gauge
	modelSize     metric.Int64Gauge
}

// New builds a Recorder exporting periodic snapshots to w (typically
// stdout or a discard sink in tests).
func New(w io.Writer) (*Recorder, error) {
	exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("metrics: build exporter: %w", err)
	}
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
	)
	meter := provider.Meter("aixi-go/interaction")

	averageReward, err := meter.Float64Gauge("average_reward",
		metric.WithDescription("running mean reward per cycle"))
	if err != nil {
		return nil, fmt.Errorf("metrics: build average_reward gauge: %w", err)
	}
	modelSize, err := meter.Int64Gauge("model_size",
		metric.WithDescription("number of nodes materialized in the context tree"))
	if err != nil {
		return nil, fmt.Errorf("metrics: build model_size gauge: %w", err)
	}

	return &Recorder{provider: provider, averageReward: averageReward, modelSize: modelSize}, nil
}

// Publish satisfies interaction.Sink, recording one snapshot's gauges.
func (r *Recorder) Publish(s interaction.CycleSnapshot) {
	ctx := context.Background()
	r.averageReward.Record(ctx, s.AverageReward)
	r.modelSize.Record(ctx, int64(s.ModelSize))
}

// Shutdown flushes and releases the underlying exporter.
func (r *Recorder) Shutdown(ctx context.Context) error {
	return r.provider.Shutdown(ctx)
}
