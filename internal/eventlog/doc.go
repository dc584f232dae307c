// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

// Package eventlog implements the in-memory, per-tenant event notification
// subsystem backing Rollcall's real-time dashboard feeds.
//
// Each Log is one topic (attendance, headcount) holding an independent,
// sequence-numbered event stream per tenant. Producers call Publish after
// committing a record; consumers call Poll with a cursor and an optional
// wait budget, which makes HTTP long-polling a thin adapter on top.
//
// Guarantees per tenant per topic:
//
//   - Sequence numbers are strictly increasing and never reused.
//   - Events are delivered in ascending sequence order.
//   - A reader with cursor X sees every retained event with seq > X.
//
// The stream is deliberately not durable: a process restart resets every
// sequence counter to zero and discards history. Only the most recent
// events per tenant are retained (bounded ring, default 500); readers whose
// cursor predates the retained window silently miss the trimmed events.
//
// Logs are explicitly constructed and dependency-injected; the package has
// no global state, so tests build a fresh Log per test.
package eventlog
