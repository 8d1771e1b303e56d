package verify

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/classusd/exchange/internal/chain"
	"github.com/classusd/exchange/internal/models"
)

// buildChain seals n transfer entries the way the processor would.
func buildChain(n int) []models.LedgerEntry {
	c := chain.New()
	for i := 0; i < n; i++ {
		c.Append(models.LedgerEntry{
			Kind:            models.KindTransfer,
			Sender:          "alice",
			Receiver:        "bob",
			Amount:          decimal.NewFromInt(int64(i + 1)),
			Burned:          decimal.RequireFromString("0.05"),
			SenderBalance:   decimal.NewFromInt(100 - int64(i+1)),
			ReceiverBalance: decimal.NewFromInt(100 + int64(i+1)),
			Timestamp:       time.Date(2026, 3, 2, 9, 30, i, 0, time.UTC),
		})
	}
	return c.Entries()
}

func TestEmptyChainIsValid(t *testing.T) {
	if res := Chain(nil); !res.Valid {
		t.Fatalf("empty chain: %s", res)
	}
}

func TestValidChain(t *testing.T) {
	entries := buildChain(5)
	res := Chain(entries)
	if !res.Valid {
		t.Fatalf("want valid, got %s", res)
	}
	// Verification is idempotent: an unmodified snapshot verifies the
	// same way twice.
	if again := Chain(entries); again != res {
		t.Fatalf("second run diverged: %v vs %v", again, res)
	}
}

func TestTamperedFieldIsHashMismatch(t *testing.T) {
	entries := buildChain(5)
	entries[2].Burned = decimal.RequireFromString("999")

	res := Chain(entries)
	if res.Valid || res.Index != 2 || res.Reason != HashMismatch {
		t.Fatalf("got %+v want invalid at 2, hash_mismatch", res)
	}
}

func TestEveryFieldIsCovered(t *testing.T) {
	mutations := map[string]func(*models.LedgerEntry){
		"kind":             func(e *models.LedgerEntry) { e.Kind = models.KindIssue },
		"sender":           func(e *models.LedgerEntry) { e.Sender = "mallory" },
		"receiver":         func(e *models.LedgerEntry) { e.Receiver = "mallory" },
		"amount":           func(e *models.LedgerEntry) { e.Amount = decimal.NewFromInt(1000) },
		"burned":           func(e *models.LedgerEntry) { e.Burned = decimal.NewFromInt(7) },
		"sender_balance":   func(e *models.LedgerEntry) { e.SenderBalance = decimal.NewFromInt(1) },
		"receiver_balance": func(e *models.LedgerEntry) { e.ReceiverBalance = decimal.NewFromInt(1) },
		"timestamp":        func(e *models.LedgerEntry) { e.Timestamp = e.Timestamp.Add(time.Second) },
	}
	for field, mutate := range mutations {
		entries := buildChain(4)
		mutate(&entries[1])
		res := Chain(entries)
		if res.Valid || res.Index != 1 || res.Reason != HashMismatch {
			t.Fatalf("mutating %s: got %+v want invalid at 1, hash_mismatch", field, res)
		}
	}
}

func TestDeletedEntryIsIndexGap(t *testing.T) {
	entries := buildChain(5)
	entries = append(entries[:2], entries[3:]...)

	res := Chain(entries)
	if res.Valid || res.Index != 2 || res.Reason != IndexGap {
		t.Fatalf("got %+v want invalid at 2, index_gap", res)
	}
}

func TestRewrittenEntryBreaksNextLink(t *testing.T) {
	entries := buildChain(5)
	// An attacker rewrites entry 2 and recomputes its hash: entry 2 now
	// self-verifies, but entry 3 no longer links to it.
	entries[2].Amount = decimal.NewFromInt(1000)
	entries[2].Hash = chain.EntryHash(entries[2])

	res := Chain(entries)
	if res.Valid || res.Index != 3 || res.Reason != LinkBroken {
		t.Fatalf("got %+v want invalid at 3, link_broken", res)
	}
}

func TestGenesisMismatch(t *testing.T) {
	entries := buildChain(3)
	entries[0].PrevHash = "not-the-genesis-value"

	res := Chain(entries)
	if res.Valid || res.Index != 0 || res.Reason != GenesisMismatch {
		t.Fatalf("got %+v want invalid at 0, genesis_mismatch", res)
	}
}

func TestBrokenLink(t *testing.T) {
	entries := buildChain(4)
	entries[2].PrevHash = entries[0].Hash

	res := Chain(entries)
	if res.Valid || res.Index != 2 || res.Reason != LinkBroken {
		t.Fatalf("got %+v want invalid at 2, link_broken", res)
	}
}
