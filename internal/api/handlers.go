// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package api

import (
	"time"

	"github.com/rollcall-hq/rollcall/internal/eventlog"
	"github.com/rollcall-hq/rollcall/internal/models"
	"github.com/rollcall-hq/rollcall/internal/recognizer"
	"github.com/rollcall-hq/rollcall/internal/store"
)

// Handler holds the dependencies every endpoint needs. Constructed once at
// the composition root; no package-level state.
type Handler struct {
	attendance *eventlog.Log[models.AttendanceEvent]
	headcount  *eventlog.Log[models.HeadcountEvent]

	attendanceStore *store.AttendanceStore
	headcountStore  *store.HeadcountStore
	overtimeStore   *store.OvertimeStore
	employeeStore   *store.EmployeeStore

	recognizer *recognizer.Client

	defaultLimit int
	maxWait      time.Duration
	startTime    time.Time
}

// HandlerConfig wires a Handler's collaborators.
type HandlerConfig struct {
	Attendance *eventlog.Log[models.AttendanceEvent]
	Headcount  *eventlog.Log[models.HeadcountEvent]

	AttendanceStore *store.AttendanceStore
	HeadcountStore  *store.HeadcountStore
	OvertimeStore   *store.OvertimeStore
	EmployeeStore   *store.EmployeeStore

	Recognizer *recognizer.Client

	// DefaultLimit applies when a poll request omits limit.
	DefaultLimit int

	// MaxWait caps the long-poll wait budget per request.
	MaxWait time.Duration
}

// NewHandler creates the endpoint handler.
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 50
	}
	if cfg.MaxWait <= 0 || cfg.MaxWait > eventlog.MaxWait {
		cfg.MaxWait = eventlog.MaxWait
	}
	return &Handler{
		attendance:      cfg.Attendance,
		headcount:       cfg.Headcount,
		attendanceStore: cfg.AttendanceStore,
		headcountStore:  cfg.HeadcountStore,
		overtimeStore:   cfg.OvertimeStore,
		employeeStore:   cfg.EmployeeStore,
		recognizer:      cfg.Recognizer,
		defaultLimit:    cfg.DefaultLimit,
		maxWait:         cfg.MaxWait,
		startTime:       time.Now(),
	}
}
