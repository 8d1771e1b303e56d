package ledger

import (
	"github.com/classusd/exchange/internal/accounts"
	"github.com/classusd/exchange/internal/models"
)

// The full rejection taxonomy, re-exported so callers can errors.Is against
// one package. All of these reject a single trade with no state change.
var (
	ErrUnknownAccount      = accounts.ErrUnknownAccount
	ErrDuplicateAccount    = accounts.ErrDuplicateAccount
	ErrInsufficientBalance = accounts.ErrInsufficientBalance
	ErrInvalidAmount       = models.ErrInvalidAmount
	ErrSameParty           = models.ErrSameParty
	ErrBlankParty          = models.ErrBlankParty
)
