// Package memory is the volatile TradeLog used in tests and for ephemeral
// classroom sessions where the ledger dies with the process.
package memory

import (
	"context"
	"sync"

	"github.com/classusd/exchange/internal/interfaces"
	"github.com/classusd/exchange/internal/models"
)

type Store struct {
	mu      sync.Mutex
	entries []models.LedgerEntry
}

func NewStore() *Store {
	return &Store{}
}

func (m *Store) Append(_ context.Context, entry models.LedgerEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *Store) Replay(_ context.Context) ([]models.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.LedgerEntry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *Store) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

func (m *Store) Close() error { return nil }

var _ interfaces.TradeLog = (*Store)(nil)
