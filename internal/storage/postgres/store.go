// Package postgres is the TradeLog backed by a ledger_entries table. The
// same table is what students point their SQL lab at, so column names
// mirror the canonical entry fields exactly.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/classusd/exchange/internal/interfaces"
	"github.com/classusd/exchange/internal/models"
)

type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle and ensures the schema exists.
func NewStore(db *sql.DB) (*Store, error) {
	const schema = `
	CREATE TABLE IF NOT EXISTS ledger_entries (
		idx              BIGINT PRIMARY KEY,
		kind             TEXT NOT NULL,
		sender           TEXT NOT NULL,
		receiver         TEXT NOT NULL,
		amount           NUMERIC NOT NULL,
		burned           NUMERIC NOT NULL,
		sender_balance   NUMERIC NOT NULL,
		receiver_balance NUMERIC NOT NULL,
		ts               TIMESTAMPTZ NOT NULL,
		prev_hash        TEXT NOT NULL,
		hash             TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("ensure ledger schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (p *Store) Append(ctx context.Context, e models.LedgerEntry) error {
	const query = `INSERT INTO ledger_entries
		(idx, kind, sender, receiver, amount, burned, sender_balance, receiver_balance, ts, prev_hash, hash)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

	_, err := p.db.ExecContext(ctx, query,
		e.Index, string(e.Kind), e.Sender, e.Receiver,
		e.Amount, e.Burned, e.SenderBalance, e.ReceiverBalance,
		e.Timestamp, e.PrevHash, e.Hash,
	)
	if err != nil {
		return fmt.Errorf("append ledger entry %d: %w", e.Index, err)
	}
	return nil
}

func (p *Store) Replay(ctx context.Context) ([]models.LedgerEntry, error) {
	const query = `SELECT idx, kind, sender, receiver, amount, burned,
		sender_balance, receiver_balance, ts, prev_hash, hash
		FROM ledger_entries ORDER BY idx ASC`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("replay ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		var kind string
		if err := rows.Scan(
			&e.Index, &kind, &e.Sender, &e.Receiver,
			&e.Amount, &e.Burned, &e.SenderBalance, &e.ReceiverBalance,
			&e.Timestamp, &e.PrevHash, &e.Hash,
		); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.Kind = models.EntryKind(kind)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("replay ledger entries: %w", err)
	}
	return entries, nil
}

func (p *Store) Reset(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM ledger_entries`); err != nil {
		return fmt.Errorf("reset ledger entries: %w", err)
	}
	return nil
}

func (p *Store) Close() error { return p.db.Close() }

var _ interfaces.TradeLog = (*Store)(nil)
