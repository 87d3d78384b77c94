// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package csvlog writes one row per interaction cycle in the column
// format the original driver emitted. No third-party CSV library
// appears anywhere in the example pack, so this component is built on
// encoding/csv; see DESIGN.md for the justification.
package csvlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/aixi-go/aixi/pkg/interaction"
)

// Header is the fixed column order every row follows.
var Header = []string{
	"cycle", "observation", "reward", "action", "explored", "explore_rate",
	"total_reward", "average_reward", "cycle_time_seconds", "model_size",
}

// Writer buffers rows and flushes them periodically and on Close, in
// the teacher's resource-lifecycle style: an explicit Close() error,
// deferred flush, checked write errors at every call site.
type Writer struct {
	csv         *csv.Writer
	closer      io.Closer
	rowsWritten int
	flushEvery  int
}

// New wraps w (typically an *os.File) as a CSV row writer, writing the
// header immediately. flushEvery controls how many rows accumulate
// before an automatic flush; 0 flushes every row.
func New(w io.Writer, flushEvery int) (*Writer, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return nil, fmt.Errorf("csvlog: write header: %w", err)
	}
	closer, _ := w.(io.Closer)
	wr := &Writer{csv: cw, closer: closer, flushEvery: flushEvery}
	cw.Flush()
	return wr, nil
}

// WriteRow appends one row for a completed cycle; its signature matches
// the onCycle hook interaction.Run accepts.
func (w *Writer) WriteRow(s interaction.CycleSnapshot) error {
	row := []string{
		strconv.Itoa(s.Cycle),
		strconv.Itoa(s.Observation),
		strconv.Itoa(s.Reward),
		strconv.Itoa(s.Action),
		strconv.FormatBool(s.Explored),
		strconv.FormatFloat(s.ExploreRate, 'f', -1, 64),
		strconv.FormatFloat(s.TotalReward, 'f', -1, 64),
		strconv.FormatFloat(s.AverageReward, 'f', -1, 64),
		strconv.FormatFloat(s.CycleTime.Seconds(), 'f', -1, 64),
		strconv.Itoa(s.ModelSize),
	}
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("csvlog: write row: %w", err)
	}
	w.rowsWritten++
	if w.flushEvery <= 0 || w.rowsWritten%w.flushEvery == 0 {
		w.csv.Flush()
		if err := w.csv.Error(); err != nil {
			return fmt.Errorf("csvlog: flush: %w", err)
		}
	}
	return nil
}

// Close flushes any buffered rows and closes the underlying writer, if
// it implements io.Closer.
func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("csvlog: final flush: %w", err)
	}
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}
