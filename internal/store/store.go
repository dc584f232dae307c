// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

// Package store persists Rollcall's operational records (attendance marks,
// headcount scans, overtime requisitions, the employee roster) in an
// embedded BadgerDB keyspace.
//
// Keys are tenant-scoped: <kind>/<company>/<sort-key>. Time-series kinds use
// a zero-padded reverse-friendly timestamp sort key so prefix iteration
// yields chronological order and reverse iteration yields newest-first.
//
// This layer is intentionally narrow - the real system of record for
// reporting lives elsewhere; Rollcall only needs fast tenant-local reads
// and durable writes ahead of the best-effort event publish.
package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/rollcall-hq/rollcall/internal/logging"
	"github.com/rollcall-hq/rollcall/internal/metrics"
)

// DB wraps the shared Badger instance all record stores run on.
type DB struct {
	badger *badger.DB
}

// Open opens (or creates) the record store at path. An empty path selects
// an in-memory store, used by tests and ephemeral deployments.
func Open(path string) (*DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	logging.Info().Str("path", path).Bool("in_memory", path == "").Msg("record store opened")
	return &DB{badger: db}, nil
}

// Close flushes and closes the underlying Badger instance.
func (d *DB) Close() error {
	return d.badger.Close()
}

// RunGC performs one value-log GC pass, rewriting files where at least
// discardRatio of the data is stale. Returns badger.ErrNoRewrite when there
// was nothing to collect; callers treat that as success.
func (d *DB) RunGC(discardRatio float64) error {
	err := d.badger.RunValueLogGC(discardRatio)
	if err == nil {
		metrics.StoreGCRuns.Inc()
	}
	return err
}

// IsNoRewrite reports whether err is Badger's "nothing to GC" sentinel.
func IsNoRewrite(err error) bool {
	return errors.Is(err, badger.ErrNoRewrite)
}

// put serializes v and writes it under key.
func (d *DB) put(key []byte, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	return d.badger.Update(func(txn *badger.Txn) error {
		return txn.Set(key, raw)
	})
}

// delete removes key. Deleting a missing key is not an error.
func (d *DB) delete(key []byte) error {
	return d.badger.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// get reads the value under key into v. Returns badger.ErrKeyNotFound when
// the key does not exist.
func (d *DB) get(key []byte, v interface{}) error {
	return d.badger.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(raw []byte) error {
			return json.Unmarshal(raw, v)
		})
	})
}

// listPrefix iterates keys under prefix, newest-first when reverse is set,
// invoking fn with each raw value until fn returns false or the prefix is
// exhausted.
func (d *DB) listPrefix(prefix []byte, reverse bool, fn func(raw []byte) (bool, error)) error {
	return d.badger.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = reverse
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		seek := prefix
		if reverse {
			// Reverse iteration needs a seek key past the prefix range.
			seek = append(append([]byte{}, prefix...), 0xFF)
		}

		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			var more bool
			err := it.Item().Value(func(raw []byte) error {
				var ferr error
				more, ferr = fn(raw)
				return ferr
			})
			if err != nil {
				return err
			}
			if !more {
				return nil
			}
		}
		return nil
	})
}

// IsNotFound reports whether err is the missing-key sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, badger.ErrKeyNotFound)
}
