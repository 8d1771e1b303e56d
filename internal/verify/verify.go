// Package verify re-derives the hash chain over a ledger snapshot and
// certifies or rejects its integrity. It is a pure function of the entries:
// it never consults balances or the issuing server, so an independent party
// running it against an exported snapshot reaches the same verdict.
package verify

import (
	"fmt"

	"github.com/classusd/exchange/internal/chain"
	"github.com/classusd/exchange/internal/models"
)

// Reason classifies the first integrity violation found.
type Reason string

const (
	// HashMismatch: an entry's stored hash does not match the hash
	// recomputed from its own fields, i.e. a field was tampered with.
	HashMismatch Reason = "hash_mismatch"
	// LinkBroken: an entry's prev_hash does not match its predecessor's
	// hash, i.e. entries were reordered, inserted or replaced.
	LinkBroken Reason = "link_broken"
	// IndexGap: an entry's sequence index does not match its position,
	// i.e. an entry was deleted or the export is out of order.
	IndexGap Reason = "index_gap"
	// GenesisMismatch: the first entry does not link to the genesis value.
	GenesisMismatch Reason = "genesis_mismatch"
)

// Result is the verifier's verdict. When Valid is false, Index and Reason
// identify the first entry that diverges.
type Result struct {
	Valid  bool   `json:"valid"`
	Index  int64  `json:"invalid_at"`
	Reason Reason `json:"reason,omitempty"`
}

func (r Result) String() string {
	if r.Valid {
		return "chain valid"
	}
	return fmt.Sprintf("chain invalid at index %d: %s", r.Index, r.Reason)
}

// Chain walks the snapshot from index 0 and reports the first divergence.
// An empty chain is vacuously valid.
func Chain(entries []models.LedgerEntry) Result {
	prev := chain.GenesisHash
	for i, e := range entries {
		if e.Index != int64(i) {
			return Result{Index: int64(i), Reason: IndexGap}
		}
		if e.PrevHash != prev {
			reason := LinkBroken
			if i == 0 {
				reason = GenesisMismatch
			}
			return Result{Index: int64(i), Reason: reason}
		}
		if chain.EntryHash(e) != e.Hash {
			return Result{Index: int64(i), Reason: HashMismatch}
		}
		prev = e.Hash
	}
	return Result{Valid: true}
}
