// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package tui renders a live, read-only dashboard of the interaction
// loop over a bubbletea program. It only ever reads CycleSnapshot
// values off a channel; it never reaches back into the agent, model,
// or environment.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aixi-go/aixi/pkg/interaction"
)

const historyLen = 64

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	exploreTag  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	frame       = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder())
)

// snapshotMsg wraps a CycleSnapshot as a tea.Msg.
type snapshotMsg interaction.CycleSnapshot

// doneMsg signals the upstream channel closed.
type doneMsg struct{}

// Model is the bubbletea model driving the dashboard. It never mutates
// anything outside itself; Update only folds incoming snapshots into
// local display state.
type Model struct {
	ch       <-chan interaction.CycleSnapshot
	bar      progress.Model
	latest   interaction.CycleSnapshot
	history  []float64
	cycles   int
	finished bool
}

// New builds a Model that reads snapshots from ch until it closes.
func New(ch <-chan interaction.CycleSnapshot) Model {
	return Model{
		ch:  ch,
		bar: progress.New(progress.WithDefaultGradient()),
	}
}

func waitForSnapshot(ch <-chan interaction.CycleSnapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return doneMsg{}
		}
		return snapshotMsg(s)
	}
}

// Init starts the read loop against the snapshot channel.
func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.ch)
}

// Update folds one message into the model. It handles snapshot
// arrivals, channel closure, and a quit keypress.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case snapshotMsg:
		m.latest = interaction.CycleSnapshot(msg)
		m.cycles++
		m.history = append(m.history, m.latest.AverageReward)
		if len(m.history) > historyLen {
			m.history = m.history[len(m.history)-historyLen:]
		}
		return m, waitForSnapshot(m.ch)
	case doneMsg:
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the current dashboard frame: a header, the latest
// cycle's fields, and a progress bar scaled to recent average reward.
func (m Model) View() string {
	if m.cycles == 0 {
		return frame.Render("waiting for the first cycle...")
	}

	var b strings.Builder
	fmt.Fprintln(&b, headerStyle.Render("aixi-go interaction monitor"))
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("cycle"), m.latest.Cycle)
	fmt.Fprintf(&b, "%s %d  %s %d  %s %d\n",
		labelStyle.Render("observation"), m.latest.Observation,
		labelStyle.Render("reward"), m.latest.Reward,
		labelStyle.Render("action"), m.latest.Action)
	if m.latest.Explored {
		fmt.Fprintf(&b, "%s\n", exploreTag.Render("explored"))
	}
	fmt.Fprintf(&b, "%s %.4f  %s %.4f  %s %d\n",
		labelStyle.Render("avg reward"), m.latest.AverageReward,
		labelStyle.Render("explore rate"), m.latest.ExploreRate,
		labelStyle.Render("model size"), m.latest.ModelSize)
	fmt.Fprintln(&b, m.bar.ViewAs(normalizedReward(m.history)))
	if m.finished {
		fmt.Fprintln(&b, labelStyle.Render("environment finished, press q to exit"))
	}

	return frame.Render(b.String())
}

// normalizedReward maps the most recent average reward in history onto
// [0,1] against the window's own min/max, so the bar tracks relative
// trend rather than requiring a known reward scale.
func normalizedReward(history []float64) float64 {
	if len(history) == 0 {
		return 0
	}
	lo, hi := history[0], history[0]
	for _, v := range history {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return 0.5
	}
	return (history[len(history)-1] - lo) / (hi - lo)
}
