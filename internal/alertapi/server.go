// Copyright (C) 2025-2026 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package alertapi serves the connection alert badge, its JSON form and the
// click-through to the listing page.
package alertapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/cardinalhq/myalerts/internal/alertcount"
	"github.com/cardinalhq/myalerts/internal/connections"
	"github.com/cardinalhq/myalerts/internal/rendercycle"
)

const (
	BadgePath = "/alerts/connections/badge"
	OpenPath  = "/alerts/connections/open"
	ListPath  = "/api/v1/alerts/connections"
)

// CountResolver is the part of alertcount.Resolver the handlers use.
type CountResolver interface {
	Resolve(ctx context.Context, cycle *rendercycle.Cycle, actorID connections.ActorID, ttl alertcount.TTLConfig) (int, bool, error)
	CriticalRequests(ctx context.Context, cycle *rendercycle.Cycle, actorID connections.ActorID) ([]connections.WorkItem, error)
}

// Navigator prepares and returns the click-through destination.
type Navigator interface {
	Open(ctx context.Context, actorID connections.ActorID) (string, error)
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	Port int `mapstructure:"port"`
}

func DefaultConfig() Config {
	return Config{Port: 8080}
}

type Server struct {
	port     int
	resolver CountResolver
	nav      Navigator
	ttl      alertcount.TTLConfig
	pingers  []Pinger
	healthy  atomic.Bool
}

type Option func(*Server)

// WithReadinessCheck adds a dependency that must answer Ping for /readyz
// to report ready.
func WithReadinessCheck(p Pinger) Option {
	return func(s *Server) {
		s.pingers = append(s.pingers, p)
	}
}

func NewServer(cfg Config, resolver CountResolver, nav Navigator, ttl alertcount.TTLConfig, opts ...Option) *Server {
	if cfg.Port == 0 {
		cfg.Port = DefaultConfig().Port
	}
	s := &Server{
		port:     cfg.Port,
		resolver: resolver,
		nav:      nav,
		ttl:      ttl,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routes without starting a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+BadgePath, s.renderCycleMiddleware(s.handleBadge))
	mux.HandleFunc("GET "+ListPath, s.renderCycleMiddleware(s.handleList))
	mux.HandleFunc("GET "+OpenPath, s.renderCycleMiddleware(s.handleOpen))
	mux.HandleFunc("POST "+OpenPath, s.renderCycleMiddleware(s.handleOpen))

	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/readyz", s.handleReadyz)

	return mux
}

// Run serves until doneCtx is cancelled, then shuts down gracefully.
func (s *Server) Run(doneCtx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting alerts API server", slog.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.healthy.Store(true)

	select {
	case err, ok := <-errCh:
		s.healthy.Store(false)
		if ok {
			return fmt.Errorf("alerts API server failed: %w", err)
		}
		return nil
	case <-doneCtx.Done():
	}

	s.healthy.Store(false)
	slog.Info("Shutting down alerts API server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return nil
}
