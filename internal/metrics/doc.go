// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

// Package metrics defines all Prometheus collectors for Rollcall.
//
// Collectors are registered once at package load via promauto and exposed
// by the /metrics endpoint. Helper functions wrap the common record
// patterns so call sites stay one-liners.
package metrics
