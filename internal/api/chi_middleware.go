// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package api

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/rollcall-hq/rollcall/internal/auth"
	"github.com/rollcall-hq/rollcall/internal/logging"
	"github.com/rollcall-hq/rollcall/internal/metrics"
)

// companyIDHeader carries the tenant when no JWT secret is configured.
// Only a trusted reverse proxy should be allowed to set it.
const companyIDHeader = "X-Company-ID"

// ChiMiddlewareConfig holds the edge middleware settings.
type ChiMiddlewareConfig struct {
	CORSAllowedOrigins []string

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// ChiMiddleware builds the CORS and rate-limit middleware from config.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware creates the middleware factory.
func NewChiMiddleware(config *ChiMiddlewareConfig) *ChiMiddleware {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   config.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", companyIDHeader},
		AllowCredentials: false,
		MaxAge:           86400,
	})
	return &ChiMiddleware{config: config, cors: corsHandler}
}

// CORS returns the CORS middleware.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit returns an IP-keyed rate limiter, or a no-op when disabled.
// Long-poll feeds need headroom: a client in steady state re-issues a
// request for every response it receives.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		m.config.RateLimitRequests,
		m.config.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
	)
}

// RequestIDWithLogging assigns each request an ID (honoring an inbound
// X-Request-ID) and threads it into the logging context.
func RequestIDWithLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = logging.GenerateRequestID()
			}
			w.Header().Set("X-Request-ID", requestID)

			ctx := logging.ContextWithRequestID(r.Context(), requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrometheusMetrics records request counts, latency and in-flight gauge per
// route pattern.
func PrometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		ww := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(ww, r)

		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				endpoint = pattern
			}
		}
		metrics.RecordAPIRequest(r.Method, endpoint, metrics.FormatStatusCode(ww.statusCode), time.Since(start))
	})
}

// TenantResolver resolves the calling company and stores it in the request
// context. With a verifier configured, a bearer JWT is required and its
// company_id claim wins. Without one, the X-Company-ID header from the
// trusted proxy is used. Requests that resolve to no tenant get a 400.
func TenantResolver(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			companyID, err := resolveTenant(r, verifier)
			if err != nil {
				respondError(w, r, http.StatusBadRequest, "tenant could not be resolved", err)
				return
			}

			ctx := logging.ContextWithTenant(r.Context(), companyID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveTenant(r *http.Request, verifier *auth.Verifier) (string, error) {
	if verifier != nil {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			return "", auth.ErrInvalidToken
		}
		claims, err := verifier.Verify(token)
		if err != nil {
			return "", err
		}
		return claims.CompanyID, nil
	}

	companyID := strings.TrimSpace(r.Header.Get(companyIDHeader))
	if companyID == "" {
		return "", auth.ErrNoCompany
	}
	return companyID, nil
}

// statusResponseWriter captures the status code for metrics.
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack passes through to the underlying writer so WebSocket upgrades work
// on instrumented routes.
func (w *statusResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return hj.Hijack()
}

func (w *statusResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
