// Package chain implements the append-only, hash-linked sequence of ledger
// entries and the canonical hashing rule both the server and any offline
// verifier must agree on.
package chain

import (
	"fmt"

	"github.com/classusd/exchange/internal/models"
)

// Chain is the ordered ledger history. It is owned by the trade processor;
// like the account store it carries no lock of its own.
type Chain struct {
	entries []models.LedgerEntry
}

// New returns an empty chain.
func New() *Chain {
	return &Chain{}
}

// Rehydrate rebuilds a chain from previously recorded entries, e.g. a
// durable log replayed at startup. The entries are trusted as-is; run the
// verifier over them first.
func Rehydrate(entries []models.LedgerEntry) *Chain {
	c := &Chain{entries: make([]models.LedgerEntry, len(entries))}
	copy(c.entries, entries)
	return c
}

// Len is the number of recorded entries.
func (c *Chain) Len() int { return len(c.entries) }

// Head returns the content hash the next entry must link to: the last
// entry's hash, or the genesis value while the chain is empty.
func (c *Chain) Head() string {
	if len(c.entries) == 0 {
		return GenesisHash
	}
	return c.entries[len(c.entries)-1].Hash
}

// Append seals the given entry fields into the chain: it assigns the next
// contiguous index, links PrevHash to the current head, computes the content
// hash and appends. The sealed entry is returned.
func (c *Chain) Append(e models.LedgerEntry) models.LedgerEntry {
	e.Index = int64(len(c.entries))
	e.PrevHash = c.Head()
	e.Hash = EntryHash(e)
	c.entries = append(c.entries, e)
	return e
}

// Truncate drops entries from the tail until n remain. The processor uses
// it to roll back an in-memory append whose durable write failed.
func (c *Chain) Truncate(n int) {
	if n < 0 || n > len(c.entries) {
		panic(fmt.Sprintf("chain: truncate to %d with %d entries", n, len(c.entries)))
	}
	c.entries = c.entries[:n]
}

// Entries returns an ordered copy of the full history, safe to export.
func (c *Chain) Entries() []models.LedgerEntry {
	out := make([]models.LedgerEntry, len(c.entries))
	copy(out, c.entries)
	return out
}
