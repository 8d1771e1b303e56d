package interfaces

import (
	"context"

	"github.com/classusd/exchange/internal/models"
)

// TradeLog is the append-only durable record behind the in-memory chain.
// Replay returns every recorded entry in sequence order; on startup it is
// the sole source of truth from which accounts and chain are rebuilt.
type TradeLog interface {
	Append(ctx context.Context, entry models.LedgerEntry) error
	Replay(ctx context.Context) ([]models.LedgerEntry, error)
	// Reset discards the whole record. Only the teacher's ledger reset
	// uses it; there is no partial deletion.
	Reset(ctx context.Context) error
	Close() error
}
