// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rollcall-hq/rollcall/internal/auth"
)

// Router assembles the HTTP surface from its middleware and handler parts.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	verifier      *auth.Verifier
}

// NewRouter creates a Router. verifier may be nil, which switches tenant
// resolution to the X-Company-ID header.
func NewRouter(handler *Handler, mw *ChiMiddleware, verifier *auth.Verifier) *Router {
	return &Router{handler: handler, chiMiddleware: mw, verifier: verifier}
}

// Setup builds the route tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	// Operational endpoints, no tenant required.
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// Tenant-scoped API.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(PrometheusMetrics)
		r.Use(TenantResolver(router.verifier))

		// Real-time feeds. Long-poll GETs hold the connection open up to
		// the clamped wait budget; the stream variants push over WebSocket.
		r.Get("/attendance/events", router.handler.AttendanceEvents)
		r.Get("/headcount/events", router.handler.HeadcountEvents)
		r.Get("/attendance/stream", router.handler.AttendanceStream)
		r.Get("/headcount/stream", router.handler.HeadcountStream)

		// Write path.
		r.Post("/attendance", router.handler.CreateAttendance)
		r.Get("/attendance", router.handler.ListAttendance)
		r.Post("/headcount", router.handler.CreateHeadcount)
		r.Get("/headcount", router.handler.ListHeadcount)
		r.Post("/overtime", router.handler.CreateOvertime)
		r.Get("/overtime", router.handler.ListOvertime)

		// Roster.
		r.Post("/employees", router.handler.CreateEmployee)
		r.Get("/employees", router.handler.ListEmployees)
		r.Get("/employees/{id}", router.handler.GetEmployee)
		r.Delete("/employees/{id}", router.handler.DeleteEmployee)
	})

	return r
}
