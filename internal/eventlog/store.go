// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package eventlog

import (
	"sync"
	"time"
)

// tenantStore holds one tenant's mutable stream state: the last-assigned
// sequence number, a bounded ascending buffer of the most recent events, and
// the wake channel used to broadcast to suspended pollers.
//
// The wake mechanism is a closed-and-replaced channel: publish closes the
// current channel (waking every waiter at once) and installs a fresh one.
// Waiters capture the channel inside the same critical section as their
// snapshot, so a publish landing between snapshot and wait is never missed.
// There is no waiter registry to clean up on timeout or cancellation.
type tenantStore[T any] struct {
	mu       sync.Mutex
	seq      int64
	events   []Event[T]
	wake     chan struct{}
	capacity int
}

func newTenantStore[T any](capacity int) *tenantStore[T] {
	return &tenantStore[T]{
		wake:     make(chan struct{}),
		capacity: capacity,
	}
}

// publish assigns the next sequence number, appends the event, trims the
// buffer to capacity, and wakes all waiters. Returns the assigned sequence
// number and how many old events were dropped by trimming.
func (s *tenantStore[T]) publish(payload T, now time.Time) (seq int64, dropped int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.events = append(s.events, Event[T]{Seq: s.seq, At: now, Payload: payload})

	if n := len(s.events) - s.capacity; n > 0 {
		// Copy down in place so the backing array stays bounded.
		s.events = append(s.events[:0], s.events[n:]...)
		dropped = n
	}

	close(s.wake)
	s.wake = make(chan struct{})

	return s.seq, dropped
}

// snapshot returns the tenant's latest sequence number, up to limit retained
// events with seq > afterSeq in ascending order, and the current wake channel.
//
// A cursor beyond the latest sequence number means the caller polled across a
// process restart (sequence counters reset to zero); it is reconciled by
// resuming from the current head rather than waiting forever for the old
// numbering to catch up.
func (s *tenantStore[T]) snapshot(afterSeq int64, limit int) (latest int64, events []Event[T], wake <-chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	latest = s.seq
	if afterSeq > latest {
		afterSeq = latest
	}

	for _, ev := range s.events {
		if ev.Seq > afterSeq {
			events = append(events, ev)
			if len(events) == limit {
				break
			}
		}
	}

	return latest, events, s.wake
}

// retained reports how many events the buffer currently holds.
func (s *tenantStore[T]) retained() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}
