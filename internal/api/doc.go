// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

// Package api is Rollcall's HTTP surface: the long-poll event feeds the
// front-end subscribes to, the WebSocket variants, the write-path endpoints
// that record attendance/headcount/overtime and publish change events, and
// the health probes.
//
// Routing is Chi with the go-chi middleware ecosystem (CORS, httprate).
// Tenant resolution runs as middleware before every data route: a bearer
// JWT when a signing secret is configured, the X-Company-ID header from the
// trusted proxy otherwise.
package api
