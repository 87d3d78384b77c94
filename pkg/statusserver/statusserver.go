// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package statusserver exposes the most recent interaction cycle over
// HTTP. The handler only ever reads an atomically-published snapshot;
// it never touches the agent, model, or environment, preserving the
// single-owner concurrency model the interaction loop depends on.
package statusserver

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aixi-go/aixi/pkg/interaction"
)

// Server publishes CycleSnapshot updates and serves them over
// GET /status as JSON.
type Server struct {
	latest atomic.Pointer[interaction.CycleSnapshot]
	http   *http.Server
}

// New constructs a Server bound to addr, not yet listening.
func New(addr string) *Server {
	s := &Server{}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/status", s.handleStatus)

	s.http = &http.Server{Addr: addr, Handler: router}
	return s
}

// Publish satisfies interaction.Sink, atomically swapping in the latest
// snapshot for the next /status request to read.
func (s *Server) Publish(snapshot interaction.CycleSnapshot) {
	s.latest.Store(&snapshot)
}

func (s *Server) handleStatus(c *gin.Context) {
	snapshot := s.latest.Load()
	if snapshot == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no cycles completed yet"})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// ListenAndServe blocks serving HTTP until ctx is cancelled, then shuts
// the server down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}
