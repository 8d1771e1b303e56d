// Package file is an append-only TradeLog backed by a JSON-lines file, one
// entry per line in canonical field order. Writes are synced before the
// trade is acknowledged, so after a crash the file replays to exactly the
// acknowledged history.
package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/classusd/exchange/internal/interfaces"
	"github.com/classusd/exchange/internal/models"
)

type Store struct {
	mu   sync.Mutex
	path string
	f    *os.File
	enc  *json.Encoder
}

// Open opens or creates the ledger file for appending.
func Open(path string) (*Store, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open ledger file: %w", err)
	}
	return &Store{path: path, f: f, enc: json.NewEncoder(f)}, nil
}

func (s *Store) Append(_ context.Context, entry models.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(entry); err != nil {
		return fmt.Errorf("append ledger entry %d: %w", entry.Index, err)
	}
	if err := s.f.Sync(); err != nil {
		return fmt.Errorf("sync ledger entry %d: %w", entry.Index, err)
	}
	return nil
}

func (s *Store) Replay(_ context.Context) ([]models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("replay ledger file: %w", err)
	}
	defer f.Close()

	var entries []models.LedgerEntry
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var e models.LedgerEntry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("replay ledger entry %d: %w", len(entries), err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("replay ledger file: %w", err)
	}
	return entries, nil
}

// Reset truncates the ledger file in place; the open append handle stays
// valid because the offset is maintained by O_APPEND.
func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.f.Truncate(0); err != nil {
		return fmt.Errorf("reset ledger file: %w", err)
	}
	return s.f.Sync()
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}

var _ interfaces.TradeLog = (*Store)(nil)
