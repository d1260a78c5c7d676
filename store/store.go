/*
Package store defines the persistence contract for the back office: a
durable key-value store of named snapshots.

PURPOSE:
  Each domain ledger (shifts, inventory, finance, suppliers) serializes its
  full state to a snapshot and persists it under a well-known name. The
  contract is deliberately small:

    Load(name)       -> snapshot bytes, or ErrNotFound when empty
    Save(name, data) -> durable ack

  Callers treat the store as synchronous and always-available; there is no
  retry or backoff policy at this layer.

IMPLEMENTATIONS:
  - memory.go:       In-memory, for tests and the :memory: mode
  - sqlite/sqlite.go: SQLite-backed, for durable desktop installs
*/
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no snapshot exists under the name.
// First-run callers should treat it as "start empty", not as a failure.
var ErrNotFound = errors.New("snapshot not found")

// Store persists named snapshots.
type Store interface {
	// Load returns the snapshot saved under name, or ErrNotFound.
	Load(ctx context.Context, name string) ([]byte, error)

	// Save durably replaces the snapshot under name.
	Save(ctx context.Context, name string, data []byte) error

	// Names lists every snapshot name currently stored.
	Names(ctx context.Context) ([]string, error)
}
