// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package api

import (
	"net/http"

	"github.com/rollcall-hq/rollcall/internal/eventlog"
	"github.com/rollcall-hq/rollcall/internal/logging"
)

// pollResponse is the long-poll feed contract:
// {"ok":true,"latest_seq":N,"events":[...]}.
type pollResponse[T any] struct {
	OK bool `json:"ok"`
	eventlog.PollResult[T]
}

// AttendanceEvents serves GET /attendance/events.
//
// Query parameters (first non-empty alias wins): afterSeq|after_seq
// (default 0), limit (default from config, clamped [1,200]), waitMs|wait_ms
// (default 0, clamped [0,300000]). Out-of-range values are clamped, never
// rejected. The client's next call passes the returned latest_seq as
// afterSeq.
func (h *Handler) AttendanceEvents(w http.ResponseWriter, r *http.Request) {
	servePoll(w, r, h.attendance, h.parsePollParams(r))
}

// HeadcountEvents serves GET /headcount/events with the same contract as
// AttendanceEvents on the independent headcount sequence space.
func (h *Handler) HeadcountEvents(w http.ResponseWriter, r *http.Request) {
	servePoll(w, r, h.headcount, h.parsePollParams(r))
}

// servePoll runs one long-poll read against the topic's log. The request
// context doubles as the disconnect signal: when the client goes away the
// poll resolves promptly and the response write is suppressed.
func servePoll[T any](w http.ResponseWriter, r *http.Request, log *eventlog.Log[T], p pollParams) {
	ctx := r.Context()
	tenant := logging.TenantFromContext(ctx)

	result := log.Poll(ctx, tenant, p.AfterSeq, p.Limit, p.Wait)

	if ctx.Err() != nil {
		// Client disconnected mid-wait; nothing to write to.
		logging.Ctx(ctx).Debug().Str("topic", log.Topic()).Msg("poll client disconnected")
		return
	}

	respondJSON(w, http.StatusOK, &pollResponse[T]{OK: true, PollResult: result})
}
