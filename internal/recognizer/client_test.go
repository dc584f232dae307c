// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package recognizer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/rollcall-hq/rollcall/internal/config"
)

func testConfig(url string) *config.RecognizerConfig {
	return &config.RecognizerConfig{
		Enabled:       true,
		URL:           url,
		APIKey:        "test-key",
		Timeout:       2 * time.Second,
		RatePerSecond: 100,
	}
}

func TestEnroll(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path

		var req EnrollRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.EmployeeID != "e1" {
			t.Errorf("expected employee e1, got %s", req.EmployeeID)
		}

		_ = json.NewEncoder(w).Encode(EnrollResult{Enrolled: true, FaceID: "f-123"})
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	result, err := c.Enroll(context.Background(), &EnrollRequest{
		CompanyID:  "acme",
		EmployeeID: "e1",
		PhotoRef:   "s3://photos/e1.jpg",
	})
	if err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if !result.Enrolled || result.FaceID != "f-123" {
		t.Errorf("unexpected enroll result: %+v", result)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth header, got %q", gotAuth)
	}
	if gotPath != "/v1/faces" {
		t.Errorf("expected /v1/faces, got %s", gotPath)
	}
}

func TestPing_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	if err := c.Ping(context.Background()); err == nil {
		t.Error("expected error for 503 response")
	}
}

func TestDisabledClient(t *testing.T) {
	cfg := testConfig("http://recognizer.invalid")
	cfg.Enabled = false

	c := New(cfg)
	if c.Enabled() {
		t.Error("expected Enabled() false")
	}
	if err := c.Ping(context.Background()); !errors.Is(err, ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
}

func TestUnenroll_PathScoping(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	if err := c.Unenroll(context.Background(), "acme", "e1"); err != nil {
		t.Fatalf("unenroll failed: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("expected DELETE, got %s", gotMethod)
	}
	if gotPath != "/v1/faces/acme/e1" {
		t.Errorf("unexpected path %s", gotPath)
	}
}
