// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package api

import (
	"net/http"
	"time"
)

// healthStatus is the GET /health payload.
type healthStatus struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`

	AttendanceTenants int `json:"attendance_tenants"`
	HeadcountTenants  int `json:"headcount_tenants"`

	Recognizer string `json:"recognizer"`
}

// HealthLive is the liveness probe: the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondOK(w, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady is the readiness probe. The event feeds are in-memory and
// always ready once constructed.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	respondOK(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Health reports overall status with feed diagnostics.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	recognizerState := "disabled"
	if h.recognizer.Enabled() {
		recognizerState = "enabled"
		if err := h.recognizer.Ping(r.Context()); err != nil {
			recognizerState = "unreachable"
		}
	}

	respondOK(w, http.StatusOK, &healthStatus{
		Status:            "ok",
		UptimeSeconds:     int64(time.Since(h.startTime).Seconds()),
		AttendanceTenants: h.attendance.TenantCount(),
		HeadcountTenants:  h.headcount.TenantCount(),
		Recognizer:        recognizerState,
	})
}
