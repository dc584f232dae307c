// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package eventlog

import (
	"time"

	"github.com/goccy/go-json"
)

// Event is one immutable occurrence on a tenant's stream. Seq is the sole
// ordering authority; At is informational wall-clock time assigned at publish.
//
// The payload is opaque to this package. On the wire an event marshals
// flattened, payload fields alongside seq/at:
//
//	{"seq":42,"at":"2026-02-11T09:30:00Z","employeeId":"E1",...}
type Event[T any] struct {
	Seq     int64
	At      time.Time
	Payload T
}

// MarshalJSON flattens the payload's fields into the event object.
// A payload that does not marshal to a JSON object is nested under "payload".
func (e Event[T]) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(e.Payload)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		fields = map[string]interface{}{"payload": json.RawMessage(raw)}
	}
	fields["seq"] = e.Seq
	fields["at"] = e.At.UTC().Format(time.RFC3339)

	return json.Marshal(fields)
}

// PollResult is the outcome of one Poll call. LatestSeq is the tenant's
// last-assigned sequence number at snapshot time and becomes the caller's
// next cursor. Events is never nil.
type PollResult[T any] struct {
	LatestSeq int64      `json:"latest_seq"`
	Events    []Event[T] `json:"events"`
}
