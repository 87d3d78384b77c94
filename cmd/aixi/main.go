// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Command aixi drives an MC-AIXI-CTW agent against one of the toy
// environments, reading its configuration from a key=value file and
// writing one CSV row per interaction cycle.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/aixi-go/aixi/pkg/agent"
	"github.com/aixi-go/aixi/pkg/config"
	"github.com/aixi-go/aixi/pkg/csvlog"
	"github.com/aixi-go/aixi/pkg/env"
	"github.com/aixi-go/aixi/pkg/interaction"
	"github.com/aixi-go/aixi/pkg/logging"
	"github.com/aixi-go/aixi/pkg/metrics"
	"github.com/aixi-go/aixi/pkg/random"
	"github.com/aixi-go/aixi/pkg/statusserver"
	"github.com/aixi-go/aixi/pkg/tui"
)

var (
	watch           bool
	serveAddr       string
	logJSONPath     string
	maxCyclesPerSec float64
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "aixi",
		Short: "Run an MC-AIXI-CTW agent against a toy environment",
	}
	runCmd := &cobra.Command{
		Use:   "run <config-file> <log-file>",
		Short: "Run the agent/environment interaction loop",
		Args:  cobra.ExactArgs(2),
		RunE:  runAgent,
	}
	runCmd.Flags().BoolVar(&watch, "watch", false, "render a live TUI dashboard while the loop runs")
	runCmd.Flags().StringVar(&serveAddr, "serve", "", "serve GET /status on this address (e.g. :8080)")
	runCmd.Flags().StringVar(&logJSONPath, "log-json", "", "also write structured JSON logs to this path")
	runCmd.Flags().Float64Var(&maxCyclesPerSec, "max-cycles-per-sec", 0, "throttle the interaction loop to this rate, useful alongside --watch")
	root.AddCommand(runCmd)
	return root
}

func runAgent(cmd *cobra.Command, args []string) error {
	configPath, logPath := args[0], args[1]

	configFile, err := os.Open(configPath)
	if err != nil {
		return fmt.Errorf("aixi: open config: %w", err)
	}
	defer configFile.Close()

	bootLogger := logging.Default()
	opts, err := config.Parse(configFile, bootLogger)
	if err != nil {
		return fmt.Errorf("aixi: parse config: %w", err)
	}

	agentCfg, err := config.DecodeAgentConfig(opts)
	if err != nil {
		return fmt.Errorf("aixi: decode agent config: %w", err)
	}

	logCfg := logging.Config{RunID: configPath}
	if agentCfg.Verbose {
		logCfg.Level = logging.LevelDebug
	}
	if logJSONPath != "" {
		jsonFile, err := os.Create(logJSONPath)
		if err != nil {
			return fmt.Errorf("aixi: create json log: %w", err)
		}
		defer jsonFile.Close()
		logCfg.JSONFile = jsonFile
	}
	logger := logging.New(logCfg)
	defer logger.Close()

	rng := random.New(agentCfg.RandomSeed)

	environment, err := env.New(agentCfg.Environment, opts, rng)
	if err != nil {
		return fmt.Errorf("aixi: build environment: %w", err)
	}

	a := agent.New(agentCfg, environment, rng)

	logFile, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("aixi: create log file: %w", err)
	}
	defer logFile.Close()

	writer, err := csvlog.New(logFile, 16)
	if err != nil {
		return fmt.Errorf("aixi: build csv writer: %w", err)
	}
	defer writer.Close()

	recorder, err := metrics.New(os.Stdout)
	if err != nil {
		return fmt.Errorf("aixi: build metrics recorder: %w", err)
	}

	runOpts := interaction.Options{
		TerminateAge:    agentCfg.TerminateAge,
		HasTerminateAge: agentCfg.HasTerminateAge,
		Verbose:         agentCfg.Verbose,
		Sinks:           []interaction.Sink{recorder},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var group errgroup.Group

	if maxCyclesPerSec > 0 {
		runOpts.Sinks = append(runOpts.Sinks, &rateLimitSink{limiter: rate.NewLimiter(rate.Limit(maxCyclesPerSec), 1), ctx: ctx})
	}

	if serveAddr != "" {
		server := statusserver.New(serveAddr)
		runOpts.Sinks = append(runOpts.Sinks, server)
		group.Go(func() error {
			return server.ListenAndServe(ctx)
		})
	}

	var program *tea.Program
	if watch {
		snapshots := make(chan interaction.CycleSnapshot, 64)
		runOpts.Sinks = append(runOpts.Sinks, channelSink(snapshots))
		program = tea.NewProgram(tui.New(snapshots))
		group.Go(func() error {
			_, err := program.Run()
			close(snapshots)
			return err
		})
	}

	group.Go(func() error {
		defer func() {
			if recorder != nil {
				recorder.Shutdown(context.Background())
			}
			if watch && program != nil {
				program.Quit()
			}
			cancel()
		}()
		return interaction.Run(ctx, a, environment, rng, runOpts, logger, writer.WriteRow)
	})

	return group.Wait()
}

// channelSink adapts a channel of CycleSnapshot into an interaction.Sink
// for the TUI program, dropping a snapshot rather than blocking the
// driver if the dashboard falls behind.
type channelSink chan interaction.CycleSnapshot

func (c channelSink) Publish(s interaction.CycleSnapshot) {
	select {
	case c <- s:
	default:
	}
}

// rateLimitSink blocks the interaction loop's own goroutine until the
// limiter admits the next cycle, throttling the loop to a human-watchable
// pace when --watch is attached.
type rateLimitSink struct {
	limiter *rate.Limiter
	ctx     context.Context
}

func (r *rateLimitSink) Publish(interaction.CycleSnapshot) {
	_ = r.limiter.Wait(r.ctx)
}
