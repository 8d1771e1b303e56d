package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopicTradeRecorded carries one event per committed ledger entry.
const TopicTradeRecorded = "trade.recorded"

type TradeRecorded struct {
	Index      int64           `json:"index"`
	Kind       string          `json:"kind"`
	Sender     string          `json:"sender"`
	Receiver   string          `json:"receiver"`
	Amount     decimal.Decimal `json:"amount"`
	Burned     decimal.Decimal `json:"burned"`
	Hash       string          `json:"hash"`
	OccurredAt time.Time       `json:"occurred_at"`
}
