// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package eventlog

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestEventMarshalJSON_FlattensPayload(t *testing.T) {
	ev := Event[testPayload]{
		Seq:     42,
		At:      time.Date(2026, 2, 11, 9, 30, 0, 0, time.UTC),
		Payload: testPayload{EmployeeID: "E7"},
	}

	raw, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if got["seq"] != float64(42) {
		t.Errorf("expected seq 42, got %v", got["seq"])
	}
	if got["at"] != "2026-02-11T09:30:00Z" {
		t.Errorf("expected RFC3339 at field, got %v", got["at"])
	}
	if got["employeeId"] != "E7" {
		t.Errorf("expected flattened employeeId field, got %v", got["employeeId"])
	}
	if _, nested := got["payload"]; nested {
		t.Error("object payload must flatten, not nest under \"payload\"")
	}
}

func TestEventMarshalJSON_NonObjectPayloadNests(t *testing.T) {
	ev := Event[string]{
		Seq:     1,
		At:      time.Date(2026, 2, 11, 9, 30, 0, 0, time.UTC),
		Payload: "badge-scan",
	}

	raw, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if got["payload"] != "badge-scan" {
		t.Errorf("expected non-object payload nested under \"payload\", got %v", got["payload"])
	}
	if got["seq"] != float64(1) {
		t.Errorf("expected seq 1, got %v", got["seq"])
	}
}

func TestPollResultMarshalJSON_EmptyEventsIsArray(t *testing.T) {
	res := PollResult[testPayload]{LatestSeq: 3, Events: []Event[testPayload]{}}

	raw, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if string(raw) != `{"latest_seq":3,"events":[]}` {
		t.Errorf("expected empty array for events, got %s", raw)
	}
}
