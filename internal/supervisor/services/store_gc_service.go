// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package services

import (
	"context"
	"time"

	"github.com/rollcall-hq/rollcall/internal/logging"
	"github.com/rollcall-hq/rollcall/internal/store"
)

// gcDiscardRatio rewrites value-log files with at least half stale data.
const gcDiscardRatio = 0.5

// StoreGCService runs the record store's value-log GC on an interval.
// Badger only reclaims space from one file per pass, so each tick loops
// until the pass reports nothing left to rewrite.
type StoreGCService struct {
	db       *store.DB
	interval time.Duration
}

// NewStoreGCService creates the GC loop.
func NewStoreGCService(db *store.DB, interval time.Duration) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{db: db, interval: interval}
}

// Serve implements suture.Service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *StoreGCService) runOnce() {
	passes := 0
	for {
		err := s.db.RunGC(gcDiscardRatio)
		if err == nil {
			passes++
			continue
		}
		if !store.IsNoRewrite(err) {
			logging.Warn().Err(err).Msg("store GC pass failed")
		}
		break
	}
	if passes > 0 {
		logging.Debug().Int("passes", passes).Msg("store GC reclaimed space")
	}
}

// String identifies the service in supervisor logs.
func (s *StoreGCService) String() string {
	return "store-gc"
}
