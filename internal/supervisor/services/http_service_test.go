// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockServer is a controllable HTTPServer.
type mockServer struct {
	listenErr   error
	listenBlock chan struct{}
	shutdownErr error
	shutdowns   int
}

func (m *mockServer) ListenAndServe() error {
	if m.listenBlock != nil {
		<-m.listenBlock
	}
	return m.listenErr
}

func (m *mockServer) Shutdown(ctx context.Context) error {
	m.shutdowns++
	if m.listenBlock != nil {
		close(m.listenBlock)
	}
	return m.shutdownErr
}

func TestHTTPServerService_GracefulShutdown(t *testing.T) {
	srv := &mockServer{listenBlock: make(chan struct{})}
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("service did not stop")
	}
	if srv.shutdowns != 1 {
		t.Errorf("expected one Shutdown call, got %d", srv.shutdowns)
	}
}

func TestHTTPServerService_StartupFailure(t *testing.T) {
	srv := &mockServer{listenErr: errors.New("bind: address already in use")}
	svc := NewHTTPServerService(srv, time.Second)

	err := svc.Serve(context.Background())
	if err == nil {
		t.Fatal("expected startup error")
	}
}

func TestHTTPServerService_String(t *testing.T) {
	if got := NewHTTPServerService(&mockServer{}, 0).String(); got != "http-server" {
		t.Errorf("unexpected name %q", got)
	}
}
