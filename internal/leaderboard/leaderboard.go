// Package leaderboard is a read-only ranked projection of account balances.
package leaderboard

import (
	"sort"

	"github.com/shopspring/decimal"
)

type Row struct {
	Rank    int             `json:"rank"`
	Account string          `json:"account"`
	Balance decimal.Decimal `json:"balance"`
}

// Rank orders a balance snapshot by balance descending, ties broken by
// account id so the ordering is stable across refreshes.
func Rank(balances map[string]decimal.Decimal) []Row {
	rows := make([]Row, 0, len(balances))
	for id, bal := range balances {
		rows = append(rows, Row{Account: id, Balance: bal})
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Balance.Cmp(rows[j].Balance); c != 0 {
			return c > 0
		}
		return rows[i].Account < rows[j].Account
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
