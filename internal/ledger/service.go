package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"kharcha/internal/core"
)

// ErrIndexOutOfRange is returned by RemoveAt when any requested position does
// not exist in the loaded ledger. Nothing is mutated in that case.
var ErrIndexOutOfRange = errors.New("index out of range")

// Service composes the store's load/save primitives into the mutations the
// UI needs. A process-wide mutex serializes mutations so two handlers cannot
// interleave their load-mutate-save cycles; concurrent writers from other
// processes remain out of contract.
type Service struct {
	mu    sync.Mutex
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Load returns the full ledger in stored order.
func (s *Service) Load(ctx context.Context) ([]core.Transaction, error) {
	return s.store.Load(ctx)
}

// Append adds one entry at the end of the ledger.
func (s *Service) Append(ctx context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}
	txns = append(txns, t)
	if err := s.store.Save(ctx, txns); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	slog.InfoContext(ctx, "Transaction appended",
		"category", t.Category,
		"kind", string(t.Kind),
		"amount_paise", t.Amount.Paise,
		"count", len(txns))
	return nil
}

// RemoveLast removes and returns the final entry. A nil transaction with a
// nil error means the ledger was empty; the persisted file is untouched.
func (s *Service) RemoveLast(ctx context.Context) (*core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	if len(txns) == 0 {
		return nil, nil
	}
	last := txns[len(txns)-1]
	if err := s.store.Save(ctx, txns[:len(txns)-1]); err != nil {
		return nil, fmt.Errorf("save ledger: %w", err)
	}

	slog.InfoContext(ctx, "Last transaction removed",
		"category", last.Category,
		"amount_paise", last.Amount.Paise)
	return &last, nil
}

// RemoveAt deletes the entries at the given zero-based positions in the
// stored order and returns how many were removed. Duplicate indices collapse.
// Any out-of-range index rejects the whole call before anything is written.
func (s *Service) RemoveAt(ctx context.Context, indices []int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns, err := s.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load ledger: %w", err)
	}

	drop := map[int]struct{}{}
	for _, i := range indices {
		if i < 0 || i >= len(txns) {
			return 0, fmt.Errorf("%w: %d (ledger has %d entries)", ErrIndexOutOfRange, i, len(txns))
		}
		drop[i] = struct{}{}
	}
	if len(drop) == 0 {
		return 0, nil
	}

	kept := make([]core.Transaction, 0, len(txns)-len(drop))
	for i, t := range txns {
		if _, gone := drop[i]; gone {
			continue
		}
		kept = append(kept, t)
	}
	if err := s.store.Save(ctx, kept); err != nil {
		return 0, fmt.Errorf("save ledger: %w", err)
	}

	removed := make([]int, 0, len(drop))
	for i := range drop {
		removed = append(removed, i)
	}
	sort.Ints(removed)
	slog.InfoContext(ctx, "Transactions removed", "indices", removed, "remaining", len(kept))
	return len(drop), nil
}
