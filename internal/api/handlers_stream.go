// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rollcall-hq/rollcall/internal/eventlog"
	"github.com/rollcall-hq/rollcall/internal/logging"
	"github.com/rollcall-hq/rollcall/internal/metrics"
)

// streamPollWait is how long each internal poll cycle blocks. Short enough
// that a dead connection is noticed within one ping interval.
const streamPollWait = 25 * time.Second

const streamPingInterval = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Origin is enforced by the CORS layer; the upgrade itself accepts any.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// AttendanceStream serves GET /attendance/stream, a WebSocket push variant
// of the long-poll feed. The cursor contract is identical: an optional
// afterSeq|after_seq query parameter resumes from a known position.
func (h *Handler) AttendanceStream(w http.ResponseWriter, r *http.Request) {
	serveStream(w, r, h.attendance)
}

// HeadcountStream serves GET /headcount/stream.
func (h *Handler) HeadcountStream(w http.ResponseWriter, r *http.Request) {
	serveStream(w, r, h.headcount)
}

// serveStream upgrades the connection and forwards poll results as JSON
// frames until the client goes away. Each frame carries the same
// {"ok":true,"latest_seq":...,"events":[...]} shape as the long-poll
// response, so front-end code can share the decoding path.
func serveStream[T any](w http.ResponseWriter, r *http.Request, log *eventlog.Log[T]) {
	ctx := r.Context()
	tenant := logging.TenantFromContext(ctx)
	afterSeq := queryInt64(r, 0, "afterSeq", "after_seq")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote its own error response.
		logging.Ctx(ctx).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()

	metrics.StreamClients.WithLabelValues(log.Topic()).Inc()
	defer metrics.StreamClients.WithLabelValues(log.Topic()).Dec()

	logging.Ctx(ctx).Debug().Str("topic", log.Topic()).Int64("after_seq", afterSeq).Msg("stream client connected")

	// Reader goroutine: discard client frames, surface close/error.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	lastPing := time.Now()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		default:
		}

		result := log.Poll(ctx, tenant, afterSeq, eventlog.MaxLimit, streamPollWait)
		if ctx.Err() != nil {
			return
		}

		if len(result.Events) > 0 {
			frame := &pollResponse[T]{OK: true, PollResult: result}
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(frame); err != nil {
				logging.Ctx(ctx).Debug().Err(err).Str("topic", log.Topic()).Msg("stream write failed")
				return
			}
			afterSeq = result.LatestSeq
			continue
		}

		// Idle cycle; reconcile the cursor after a server restart and keep
		// the connection alive.
		if result.LatestSeq < afterSeq {
			afterSeq = result.LatestSeq
		}
		if time.Since(lastPing) >= streamPingInterval {
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
				return
			}
			lastPing = time.Now()
		}
	}
}
