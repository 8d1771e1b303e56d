package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind tells whether an entry mints the starting balance for a new
// account or moves value between two existing accounts.
type EntryKind string

const (
	KindIssue    EntryKind = "issue"
	KindTransfer EntryKind = "transfer"
)

// LedgerEntry is one immutable record of the hash chain. The JSON field
// order below is the canonical export order: exports must preserve it so an
// external verifier can rebuild the exact byte string the hash covers.
//
// Amount is the gross amount the sender was debited; Burned is the part of
// it destroyed instead of credited. SenderBalance and ReceiverBalance are
// the balances after the entry was applied, kept for auditability. For
// issue entries Sender is empty and SenderBalance is zero.
type LedgerEntry struct {
	Index           int64           `json:"index"`
	Kind            EntryKind       `json:"kind"`
	Sender          string          `json:"sender"`
	Receiver        string          `json:"receiver"`
	Amount          decimal.Decimal `json:"amount"`
	Burned          decimal.Decimal `json:"burned"`
	SenderBalance   decimal.Decimal `json:"sender_balance"`
	ReceiverBalance decimal.Decimal `json:"receiver_balance"`
	Timestamp       time.Time       `json:"timestamp"`
	PrevHash        string          `json:"prev_hash"`
	Hash            string          `json:"hash"`
}
