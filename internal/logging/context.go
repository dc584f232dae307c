// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Context keys for logging.
type contextKey string

const (
	// requestIDKey is the context key for HTTP request IDs.
	requestIDKey contextKey = "request_id"

	// tenantKey is the context key for the resolved tenant (company) ID.
	tenantKey contextKey = "tenant"
)

// GenerateRequestID creates a new unique request ID.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID returns a new context with the given request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext retrieves the request ID from context.
// Returns empty string if not present.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithTenant returns a new context carrying the resolved tenant ID.
func ContextWithTenant(ctx context.Context, companyID string) context.Context {
	return context.WithValue(ctx, tenantKey, companyID)
}

// TenantFromContext retrieves the tenant (company) ID from context.
// Returns empty string if tenant resolution has not run.
func TenantFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(tenantKey).(string); ok {
		return id
	}
	return ""
}

// Ctx returns a logger with request_id and tenant fields populated from the
// context. This is the recommended way to log inside handlers and services.
//
//	logging.Ctx(ctx).Info().Msg("processing request")
func Ctx(ctx context.Context) *zerolog.Logger {
	logCtx := Logger().With()

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		logCtx = logCtx.Str("request_id", requestID)
	}
	if tenant := TenantFromContext(ctx); tenant != "" {
		logCtx = logCtx.Str("tenant", tenant)
	}

	logger := logCtx.Logger()
	return &logger
}
