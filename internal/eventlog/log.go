// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package eventlog

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rollcall-hq/rollcall/internal/logging"
	"github.com/rollcall-hq/rollcall/internal/metrics"
)

const (
	// DefaultCapacity is the per-tenant ring buffer capacity.
	DefaultCapacity = 500

	// MaxLimit caps the number of events returned by one Poll call.
	MaxLimit = 200

	// MaxWait caps how long one Poll call may stay suspended.
	MaxWait = 5 * time.Minute

	// DefaultTenant is the sentinel key an empty tenant collapses to.
	// Deliberate current behavior: callers that fail tenant resolution
	// upstream share one stream. See DESIGN.md before changing.
	DefaultTenant = "default"
)

// Poll resolution outcomes, recorded as metric labels.
const (
	outcomeImmediate = "immediate"
	outcomeWakeup    = "wakeup"
	outcomeTimeout   = "timeout"
	outcomeCanceled  = "canceled"
)

// Log is one topic's event stream, holding an independent sequence space per
// tenant. Tenant stores are created lazily on first publish or poll and live
// for the process lifetime; the registry grows with distinct tenants seen
// (bounded in practice by the number of registered companies) while each
// store's memory is bounded by the ring capacity.
type Log[T any] struct {
	topic    string
	capacity int

	mu     sync.RWMutex
	stores map[string]*tenantStore[T]
}

// New creates an empty Log for the given topic. Capacity <= 0 selects
// DefaultCapacity.
func New[T any](topic string, capacity int) *Log[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log[T]{
		topic:    topic,
		capacity: capacity,
		stores:   make(map[string]*tenantStore[T]),
	}
}

// Topic returns the topic name this log was created with.
func (l *Log[T]) Topic() string {
	return l.topic
}

// NormalizeTenant trims the tenant key and collapses an empty key to the
// shared DefaultTenant sentinel.
func NormalizeTenant(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return DefaultTenant
	}
	return key
}

// store returns the tenant's store, creating it on first use. Idempotent:
// the same key always yields the same store for the process lifetime.
func (l *Log[T]) store(tenant string) *tenantStore[T] {
	tenant = NormalizeTenant(tenant)

	l.mu.RLock()
	s, ok := l.stores[tenant]
	l.mu.RUnlock()
	if ok {
		return s
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok = l.stores[tenant]; ok {
		return s
	}
	s = newTenantStore[T](l.capacity)
	l.stores[tenant] = s
	metrics.TenantStores.WithLabelValues(l.topic).Set(float64(len(l.stores)))
	return s
}

// Publish appends an event to the tenant's stream, assigns the next sequence
// number, trims the ring if over capacity, and wakes all suspended pollers.
// Pure in-memory mutation; it never fails. Returns the assigned sequence
// number (useful for tests and diagnostics).
func (l *Log[T]) Publish(tenant string, payload T) int64 {
	seq, dropped := l.store(tenant).publish(payload, time.Now())

	metrics.EventsPublished.WithLabelValues(l.topic).Inc()
	if dropped > 0 {
		metrics.EventsDropped.WithLabelValues(l.topic).Add(float64(dropped))
	}

	logging.Debug().
		Str("topic", l.topic).
		Str("tenant", NormalizeTenant(tenant)).
		Int64("seq", seq).
		Msg("event published")

	return seq
}

// Poll returns the tenant's events with seq > afterSeq, up to limit, in
// ascending order. When no matching events are retained and wait > 0, the
// call suspends until a publish advances the stream, the wait elapses, or
// ctx is canceled (client disconnect); all three paths resolve with a fresh
// snapshot and no error - cancellation is not an error here.
//
// Inputs are clamped, never rejected: limit to [1, MaxLimit], wait to
// [0, MaxWait], negative afterSeq to 0. A tenant that has never published
// reads as an empty stream with LatestSeq 0.
func (l *Log[T]) Poll(ctx context.Context, tenant string, afterSeq int64, limit int, wait time.Duration) PollResult[T] {
	if afterSeq < 0 {
		afterSeq = 0
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if wait < 0 {
		wait = 0
	}
	if wait > MaxWait {
		wait = MaxWait
	}

	s := l.store(tenant)

	latest, events, wake := s.snapshot(afterSeq, limit)
	if afterSeq > latest {
		// Cursor from before a process restart; resume from the current
		// head so later wakes in this call deliver new events.
		afterSeq = latest
	}
	if len(events) > 0 || wait <= 0 {
		metrics.RecordPollOutcome(l.topic, outcomeImmediate, 0)
		return l.result(latest, events)
	}

	metrics.LongPollWaiting.WithLabelValues(l.topic).Inc()
	defer metrics.LongPollWaiting.WithLabelValues(l.topic).Dec()

	started := time.Now()
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case <-wake:
			// Re-check rather than trust the waking publish: multiple
			// publishes may have coalesced into one close, and the new
			// events could already be trimmed for a far-behind cursor.
			latest, events, wake = s.snapshot(afterSeq, limit)
			if len(events) > 0 {
				metrics.RecordPollOutcome(l.topic, outcomeWakeup, time.Since(started))
				return l.result(latest, events)
			}

		case <-timer.C:
			latest, events, _ = s.snapshot(afterSeq, limit)
			metrics.RecordPollOutcome(l.topic, outcomeTimeout, time.Since(started))
			return l.result(latest, events)

		case <-ctx.Done():
			// Caller disconnected; resolve with the best snapshot available.
			latest, events, _ = s.snapshot(afterSeq, limit)
			metrics.RecordPollOutcome(l.topic, outcomeCanceled, time.Since(started))
			return l.result(latest, events)
		}
	}
}

// result normalizes a snapshot into a PollResult with a non-nil event slice.
func (l *Log[T]) result(latest int64, events []Event[T]) PollResult[T] {
	if events == nil {
		events = []Event[T]{}
	} else {
		metrics.EventsDelivered.WithLabelValues(l.topic).Add(float64(len(events)))
	}
	return PollResult[T]{LatestSeq: latest, Events: events}
}

// TenantCount reports how many tenant stores exist. Diagnostics only.
func (l *Log[T]) TenantCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.stores)
}

// Retained reports how many events the tenant's ring currently holds.
// Diagnostics only.
func (l *Log[T]) Retained(tenant string) int {
	return l.store(tenant).retained()
}
