// Package ledger owns the persistence contract for the transaction sequence:
// whole-ledger load, whole-ledger save, and the composed mutations built on
// top of them.
package ledger

import (
	"context"

	"kharcha/internal/core"
)

// Store is the port implemented by every backend. There is no partial or
// incremental update primitive: every mutation is load-all, compute the new
// full sequence, overwrite-all.
type Store interface {
	// Load returns the full transaction sequence in stored order. The
	// file-backed store is fail-soft: a missing or unreadable file yields
	// an empty ledger and a nil error.
	Load(ctx context.Context) ([]core.Transaction, error)

	// Save overwrites the entire persisted ledger with the given sequence.
	// Save is fail-loud; implementations must replace the old content
	// atomically so a crash mid-write never leaves an unreadable file.
	Save(ctx context.Context, txns []core.Transaction) error
}
