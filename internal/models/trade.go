package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount rejects non-positive or malformed trade amounts.
	ErrInvalidAmount = errors.New("trade amount must be positive")
	// ErrSameParty rejects a trade whose sender and receiver are the same account.
	ErrSameParty = errors.New("sender and receiver must differ")
	// ErrBlankParty rejects a trade with an empty sender or receiver id.
	ErrBlankParty = errors.New("sender and receiver must be set")
)

// TradeRequest represents a validated intent to transfer value. Construct it
// with NewTradeRequest so malformed requests never reach the processor.
type TradeRequest struct {
	ID        string
	Sender    string
	Receiver  string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// NewTradeRequest validates the parties and the amount and stamps the
// request with a unique id.
func NewTradeRequest(sender, receiver string, amount decimal.Decimal) (TradeRequest, error) {
	sender = strings.TrimSpace(sender)
	receiver = strings.TrimSpace(receiver)
	if sender == "" || receiver == "" {
		return TradeRequest{}, ErrBlankParty
	}
	if sender == receiver {
		return TradeRequest{}, ErrSameParty
	}
	if amount.Cmp(decimal.Zero) <= 0 {
		return TradeRequest{}, ErrInvalidAmount
	}
	return TradeRequest{
		ID:        uuid.New().String(),
		Sender:    sender,
		Receiver:  receiver,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}, nil
}
