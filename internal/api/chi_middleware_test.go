// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rollcall-hq/rollcall/internal/auth"
	"github.com/rollcall-hq/rollcall/internal/logging"
)

func tenantEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(logging.TenantFromContext(r.Context())))
	})
}

func TestTenantResolver_Header(t *testing.T) {
	h := TenantResolver(nil)(tenantEcho())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(companyIDHeader, "acme")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "acme" {
		t.Errorf("expected acme from header, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestTenantResolver_HeaderMissing(t *testing.T) {
	h := TenantResolver(nil)(tenantEcho())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without tenant, got %d", rec.Code)
	}
}

func TestTenantResolver_JWT(t *testing.T) {
	verifier := auth.NewVerifier("test-secret")
	h := TenantResolver(verifier)(tenantEcho())

	token, err := verifier.Mint("globex", "cam-gateway", time.Hour)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "globex" {
		t.Errorf("expected globex from JWT, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestTenantResolver_JWTIgnoresHeader(t *testing.T) {
	// With a verifier configured the proxy header must not override claims.
	verifier := auth.NewVerifier("test-secret")
	h := TenantResolver(verifier)(tenantEcho())

	token, err := verifier.Mint("globex", "", time.Hour)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(companyIDHeader, "acme")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Body.String() != "globex" {
		t.Errorf("expected claim tenant to win, got %q", rec.Body.String())
	}
}

func TestTenantResolver_JWTInvalid(t *testing.T) {
	h := TenantResolver(auth.NewVerifier("secret-a"))(tenantEcho())

	badToken, err := auth.NewVerifier("secret-b").Mint("globex", "", time.Hour)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	for _, header := range []string{"", "Bearer ", "Bearer " + badToken, "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("header %q: expected 400, got %d", header, rec.Code)
		}
	}
}

func TestRequestIDWithLogging(t *testing.T) {
	var seen string
	h := RequestIDWithLogging()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen == "" {
		t.Error("expected generated request ID in context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("expected response header %q to match context ID %q", got, seen)
	}

	// Inbound IDs are honored.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-42")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen != "upstream-42" {
		t.Errorf("expected inbound request ID to be kept, got %q", seen)
	}
}
