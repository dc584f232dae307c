// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

// Package main is the entry point for the Rollcall server.
//
// Rollcall is the backend for a camera-assisted attendance and headcount
// system. It records attendance marks, headcount scans and overtime
// requisitions per company, and pushes change events to dashboards over
// cursor-based long-poll feeds (one sequence space per company per topic).
//
// # Startup order
//
//  1. Configuration: Koanf v2 layered defaults -> config.yaml -> ROLLCALL_* env
//  2. Logging: zerolog, JSON by default
//  3. Record store: embedded BadgerDB (in-memory when store.path is empty)
//  4. Event logs: attendance and headcount topics, in-memory, non-durable
//  5. Recognizer client: optional external face-recognition service
//  6. HTTP server under a suture supervision tree
//
// # Signal handling
//
// SIGINT/SIGTERM cancel the root context. Suspended long-poll requests
// resolve immediately (their contexts descend from the server's base
// context), then the HTTP server drains and the store closes.
//
// Event feeds are not persisted: a restart resets every sequence counter to
// zero. Clients detect latest_seq below their cursor and start over.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rollcall-hq/rollcall/internal/api"
	"github.com/rollcall-hq/rollcall/internal/auth"
	"github.com/rollcall-hq/rollcall/internal/config"
	"github.com/rollcall-hq/rollcall/internal/eventlog"
	"github.com/rollcall-hq/rollcall/internal/logging"
	"github.com/rollcall-hq/rollcall/internal/models"
	"github.com/rollcall-hq/rollcall/internal/recognizer"
	"github.com/rollcall-hq/rollcall/internal/store"
	"github.com/rollcall-hq/rollcall/internal/supervisor"
	"github.com/rollcall-hq/rollcall/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server exited with error")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().Str("addr", cfg.Addr()).Msg("starting rollcall server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("failed to close record store")
		}
	}()

	attendance := eventlog.New[models.AttendanceEvent]("attendance", cfg.Events.Capacity)
	headcount := eventlog.New[models.HeadcountEvent]("headcount", cfg.Events.Capacity)

	recognizerClient := recognizer.New(&cfg.Recognizer)
	if recognizerClient.Enabled() {
		if err := recognizerClient.Ping(ctx); err != nil {
			// Start anyway; the circuit breaker guards the write path.
			logging.Warn().Err(err).Msg("recognizer unreachable at startup")
		}
	}

	handler := api.NewHandler(api.HandlerConfig{
		Attendance:      attendance,
		Headcount:       headcount,
		AttendanceStore: store.NewAttendanceStore(db),
		HeadcountStore:  store.NewHeadcountStore(db),
		OvertimeStore:   store.NewOvertimeStore(db),
		EmployeeStore:   store.NewEmployeeStore(db),
		Recognizer:      recognizerClient,
		DefaultLimit:    cfg.Events.DefaultLimit,
		MaxWait:         cfg.Events.MaxWait,
	})

	var verifier *auth.Verifier
	if cfg.Security.JWTSecret != "" {
		verifier = auth.NewVerifier(cfg.Security.JWTSecret)
	} else {
		logging.Warn().Msg("no JWT secret configured; trusting X-Company-ID header for tenant resolution")
	}

	mw := api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		RateLimitRequests:  cfg.Security.RateLimitReqs,
		RateLimitWindow:    cfg.Security.RateLimitWindow,
		RateLimitDisabled:  cfg.Security.RateLimitDisabled,
	})

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: api.NewRouter(handler, mw, verifier).Setup(),

		// Long-poll responses are held open on purpose, so only header
		// reads get a deadline. Request contexts descend from the root
		// context so shutdown resolves suspended polls immediately.
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if cfg.Store.Path != "" {
		tree.AddDataService(services.NewStoreGCService(db, cfg.Store.GCInterval))
	}

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree failed: %w", err)
	}

	if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("service did not stop within timeout")
		}
	}

	logging.Info().Msg("rollcall server stopped")
	return nil
}
