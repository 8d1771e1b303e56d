// Package ledger is the trade processor: it validates trade requests,
// applies their economic effect to the account store and seals each one
// into the hash chain, with a durable append in between. One balance
// mutation, one chain append, both or neither.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/classusd/exchange/internal/accounts"
	"github.com/classusd/exchange/internal/chain"
	"github.com/classusd/exchange/internal/interfaces"
	"github.com/classusd/exchange/internal/models"
	"github.com/classusd/exchange/internal/models/events"
	"github.com/classusd/exchange/internal/verify"
)

// Config carries the two economic knobs of the exchange.
type Config struct {
	// StartingBalance is minted for every account on registration.
	StartingBalance decimal.Decimal
	// BurnRate is the fraction of every transfer destroyed, 0 <= rate < 1.
	BurnRate decimal.Decimal
}

func (c Config) validate() error {
	if c.StartingBalance.Cmp(decimal.Zero) < 0 {
		return fmt.Errorf("starting balance must not be negative, got %s", c.StartingBalance)
	}
	if c.BurnRate.Cmp(decimal.Zero) < 0 || c.BurnRate.Cmp(decimal.NewFromInt(1)) >= 0 {
		return fmt.Errorf("burn rate must be in [0,1), got %s", c.BurnRate)
	}
	return nil
}

// Supply is the conservation-law view: Circulating == Issued - Burned and
// always equals the sum of all balances.
type Supply struct {
	Issued      decimal.Decimal `json:"issued"`
	Burned      decimal.Decimal `json:"burned"`
	Circulating decimal.Decimal `json:"circulating"`
}

// Service owns the account store and the chain. All trade execution runs
// under one mutex: the ledger is a single-writer, many-reader resource, and
// readers always see a balance together with its ledger entry.
type Service struct {
	mu       sync.RWMutex
	cfg      Config
	accounts *accounts.Store
	chain    *chain.Chain
	log      interfaces.TradeLog
	events   interfaces.EventPublisher
	logger   *slog.Logger
}

// New replays the durable log, verifies the replayed chain and rebuilds the
// account store from it. The persisted ledger is the sole source of truth
// after a restart; a replayed chain that fails verification is refused.
// pub may be nil when event publishing is disabled.
func New(ctx context.Context, cfg Config, tradeLog interfaces.TradeLog, pub interfaces.EventPublisher, logger *slog.Logger) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	entries, err := tradeLog.Replay(ctx)
	if err != nil {
		return nil, fmt.Errorf("replay trade log: %w", err)
	}
	if res := verify.Chain(entries); !res.Valid {
		return nil, fmt.Errorf("refusing to load tampered ledger: %s", res)
	}

	store := accounts.NewStore()
	for _, e := range entries {
		if err := applyEntry(store, e); err != nil {
			return nil, fmt.Errorf("rebuild accounts from entry %d: %w", e.Index, err)
		}
	}

	logger.Info("ledger loaded", "entries", len(entries), "accounts", len(store.Snapshot()))
	return &Service{
		cfg:      cfg,
		accounts: store,
		chain:    chain.Rehydrate(entries),
		log:      tradeLog,
		events:   pub,
		logger:   logger,
	}, nil
}

// applyEntry replays one recorded entry against the account store. An
// issue entry for a known account is an airdrop; for a new one it is the
// registration mint.
func applyEntry(store *accounts.Store, e models.LedgerEntry) error {
	switch e.Kind {
	case models.KindIssue:
		if store.Exists(e.Receiver) {
			return store.ApplyIssue(e.Receiver, e.Amount)
		}
		return store.Create(e.Receiver, e.Amount)
	case models.KindTransfer:
		return store.ApplyTransfer(e.Sender, e.Receiver, e.Amount, e.Burned)
	default:
		return fmt.Errorf("unknown entry kind %q", e.Kind)
	}
}

// stamp is the one clock of the ledger. Entries are stamped at microsecond
// precision: the canonical RFC3339Nano rendering must survive a round trip
// through every trade log backend, including TIMESTAMPTZ columns.
func stamp() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Register creates an account and records its starting balance as an
// issuance entry, so startup replay alone reconstructs every balance.
func (s *Service) Register(ctx context.Context, id string) (models.LedgerEntry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.LedgerEntry{}, ErrBlankParty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accounts.Exists(id) {
		return models.LedgerEntry{}, fmt.Errorf("%w: %s", ErrDuplicateAccount, id)
	}

	entry := models.LedgerEntry{
		Kind:            models.KindIssue,
		Receiver:        id,
		Amount:          s.cfg.StartingBalance,
		Burned:          decimal.Zero,
		SenderBalance:   decimal.Zero,
		ReceiverBalance: s.cfg.StartingBalance,
		Timestamp:       stamp(),
	}
	sealed, err := s.commit(ctx, entry)
	if err != nil {
		return models.LedgerEntry{}, err
	}
	if err := s.accounts.Create(id, s.cfg.StartingBalance); err != nil {
		// Unreachable: existence was checked under the same lock.
		return models.LedgerEntry{}, err
	}

	s.logger.Info("account registered", "account", id, "starting_balance", s.cfg.StartingBalance)
	s.publish(ctx, sealed)
	return sealed, nil
}

// Trade runs the full state machine for one request: validate, burn, apply,
// record. Any rejection leaves balances and chain untouched.
func (s *Service) Trade(ctx context.Context, req models.TradeRequest) (models.LedgerEntry, error) {
	if req.Sender == "" || req.Receiver == "" {
		return models.LedgerEntry{}, ErrBlankParty
	}
	if req.Sender == req.Receiver {
		return models.LedgerEntry{}, ErrSameParty
	}
	if req.Amount.Cmp(decimal.Zero) <= 0 {
		return models.LedgerEntry{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	senderBal, err := s.accounts.Balance(req.Sender)
	if err != nil {
		return models.LedgerEntry{}, fmt.Errorf("%w: %s", ErrUnknownAccount, req.Sender)
	}
	receiverBal, err := s.accounts.Balance(req.Receiver)
	if err != nil {
		return models.LedgerEntry{}, fmt.Errorf("%w: %s", ErrUnknownAccount, req.Receiver)
	}

	burn := burnAmount(req.Amount, s.cfg.BurnRate)
	if senderBal.Cmp(req.Amount) < 0 {
		return models.LedgerEntry{}, fmt.Errorf("%w: %s has %s, needs %s",
			ErrInsufficientBalance, req.Sender, senderBal, req.Amount)
	}

	entry := models.LedgerEntry{
		Kind:            models.KindTransfer,
		Sender:          req.Sender,
		Receiver:        req.Receiver,
		Amount:          req.Amount,
		Burned:          burn,
		SenderBalance:   senderBal.Sub(req.Amount),
		ReceiverBalance: receiverBal.Add(req.Amount.Sub(burn)),
		Timestamp:       stamp(),
	}
	sealed, err := s.commit(ctx, entry)
	if err != nil {
		return models.LedgerEntry{}, err
	}
	if err := s.accounts.ApplyTransfer(req.Sender, req.Receiver, req.Amount, burn); err != nil {
		// Unreachable: balance was checked under the same lock.
		return models.LedgerEntry{}, err
	}

	s.logger.Info("trade recorded",
		"index", sealed.Index, "trade_id", req.ID,
		"sender", req.Sender, "receiver", req.Receiver,
		"amount", req.Amount, "burned", burn)
	s.publish(ctx, sealed)
	return sealed, nil
}

// Airdrop mints extra supply into an existing account, recorded as an
// issue entry like the registration mint. Teacher-only at the edges; the
// core only cares that the account exists and the amount is positive.
func (s *Service) Airdrop(ctx context.Context, id string, amount decimal.Decimal) (models.LedgerEntry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.LedgerEntry{}, ErrBlankParty
	}
	if amount.Cmp(decimal.Zero) <= 0 {
		return models.LedgerEntry{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bal, err := s.accounts.Balance(id)
	if err != nil {
		return models.LedgerEntry{}, fmt.Errorf("%w: %s", ErrUnknownAccount, id)
	}

	entry := models.LedgerEntry{
		Kind:            models.KindIssue,
		Receiver:        id,
		Amount:          amount,
		Burned:          decimal.Zero,
		SenderBalance:   decimal.Zero,
		ReceiverBalance: bal.Add(amount),
		Timestamp:       stamp(),
	}
	sealed, err := s.commit(ctx, entry)
	if err != nil {
		return models.LedgerEntry{}, err
	}
	if err := s.accounts.ApplyIssue(id, amount); err != nil {
		// Unreachable: existence was checked under the same lock.
		return models.LedgerEntry{}, err
	}

	s.logger.Info("airdrop recorded", "index", sealed.Index, "account", id, "amount", amount)
	s.publish(ctx, sealed)
	return sealed, nil
}

// commit seals the entry into the in-memory chain and makes it durable.
// A failed durable append rolls the in-memory append back, so the chain
// never runs ahead of the log. Balances are only mutated after commit
// (log-then-apply), so they never run ahead of the chain either.
func (s *Service) commit(ctx context.Context, entry models.LedgerEntry) (models.LedgerEntry, error) {
	sealed := s.chain.Append(entry)
	if err := s.log.Append(ctx, sealed); err != nil {
		s.chain.Truncate(s.chain.Len() - 1)
		s.logger.Error("durable append failed, trade rolled back", "index", sealed.Index, "err", err)
		return models.LedgerEntry{}, fmt.Errorf("record entry %d: %w", sealed.Index, err)
	}
	return sealed, nil
}

func (s *Service) publish(ctx context.Context, e models.LedgerEntry) {
	if s.events == nil {
		return
	}
	ev := events.TradeRecorded{
		Index:      e.Index,
		Kind:       string(e.Kind),
		Sender:     e.Sender,
		Receiver:   e.Receiver,
		Amount:     e.Amount,
		Burned:     e.Burned,
		Hash:       e.Hash,
		OccurredAt: e.Timestamp,
	}
	if err := s.events.Publish(ctx, events.TopicTradeRecorded, ev); err != nil {
		s.logger.Warn("event publish failed", "index", e.Index, "err", err)
	}
}

// burnAmount is the one fixed rounding rule of the system: the burn is the
// gross amount times the rate, rounded half-to-even at four decimal places.
// Students re-derive burns independently, so this must never drift.
func burnAmount(gross, rate decimal.Decimal) decimal.Decimal {
	return gross.Mul(rate).RoundBank(4)
}

// Balance returns the current balance of one account.
func (s *Service) Balance(id string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts.Balance(id)
}

// Balances returns a consistent snapshot of every balance, for the
// leaderboard projection.
func (s *Service) Balances() map[string]decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts.Snapshot()
}

// Entries returns the sequence-ordered ledger snapshot for export and
// independent verification.
func (s *Service) Entries() []models.LedgerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chain.Entries()
}

// Verify re-derives the chain over the current snapshot.
func (s *Service) Verify() verify.Result {
	return verify.Chain(s.Entries())
}

// Reset wipes the durable log, the chain and every balance. Accounts are
// never deleted individually; this is the one way back to an empty ledger.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.log.Reset(ctx); err != nil {
		return fmt.Errorf("reset trade log: %w", err)
	}
	s.accounts = accounts.NewStore()
	s.chain = chain.New()
	s.logger.Warn("ledger reset")
	return nil
}

// Supply reports the conservation-law totals.
func (s *Service) Supply() Supply {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Supply{
		Issued:      s.accounts.TotalIssued(),
		Burned:      s.accounts.TotalBurned(),
		Circulating: s.accounts.Circulating(),
	}
}
