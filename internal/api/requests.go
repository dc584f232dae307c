// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package api

import (
	"net/http"
	"strconv"
	"time"
)

// queryValue returns the first non-empty value among the named query
// parameters. Poll endpoints accept both camelCase and snake_case aliases.
func queryValue(r *http.Request, names ...string) string {
	q := r.URL.Query()
	for _, name := range names {
		if v := q.Get(name); v != "" {
			return v
		}
	}
	return ""
}

// queryInt64 parses the first non-empty alias as int64, falling back to def
// on absence or malformed input. Out-of-range values are clamped by the
// caller, never rejected.
func queryInt64(r *http.Request, def int64, names ...string) int64 {
	v := queryValue(r, names...)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// queryInt parses the first non-empty alias as int, falling back to def.
func queryInt(r *http.Request, def int, names ...string) int {
	return int(queryInt64(r, int64(def), names...))
}

// pollParams holds the parsed long-poll cursor inputs.
type pollParams struct {
	AfterSeq int64
	Limit    int
	Wait     time.Duration
}

// parsePollParams reads afterSeq/after_seq, limit and waitMs/wait_ms.
// Defaults: afterSeq 0, limit from config, waitMs 0. The wait budget is
// capped by the configured maximum here; the remaining range clamping
// happens inside the event log.
func (h *Handler) parsePollParams(r *http.Request) pollParams {
	wait := time.Duration(queryInt64(r, 0, "waitMs", "wait_ms")) * time.Millisecond
	if wait > h.maxWait {
		wait = h.maxWait
	}
	return pollParams{
		AfterSeq: queryInt64(r, 0, "afterSeq", "after_seq"),
		Limit:    queryInt(r, h.defaultLimit, "limit"),
		Wait:     wait,
	}
}
