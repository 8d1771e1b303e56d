// Package server is the HTTP surface over the ledger core. It owns no
// state of its own: every handler goes through the service's narrow
// interface and returns typed rejections as JSON.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/classusd/exchange/internal/leaderboard"
	"github.com/classusd/exchange/internal/ledger"
	"github.com/classusd/exchange/internal/models"
)

type Server struct {
	svc        *ledger.Service
	teacherKey string
	logger     *slog.Logger
}

// New builds the HTTP surface. An empty teacherKey disables the admin
// endpoints entirely.
func New(svc *ledger.Service, teacherKey string, logger *slog.Logger) *Server {
	return &Server{svc: svc, teacherKey: teacherKey, logger: logger}
}

func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Account string `json:"account"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	entry, err := s.svc.Register(r.Context(), req.Account)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) Trade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sender   string          `json:"sender"`
		Receiver string          `json:"receiver"`
		Amount   decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	trade, err := models.NewTradeRequest(req.Sender, req.Receiver, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	entry, err := s.svc.Trade(r.Context(), trade)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) Balance(w http.ResponseWriter, r *http.Request) {
	account := r.URL.Query().Get("account")
	if account == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "account is a mandatory field"})
		return
	}

	balance, err := s.svc.Balance(account)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Account string          `json:"account"`
		Balance decimal.Decimal `json:"balance"`
	}{account, balance})
}

// Ledger exports the sequence-ordered snapshot. The JSON field order is the
// canonical hashing order, so the payload feeds the offline verifier as-is.
func (s *Server) Ledger(w http.ResponseWriter, _ *http.Request) {
	entries := s.svc.Entries()
	if entries == nil {
		entries = []models.LedgerEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Chain returns the verification verdict together with the blocks, the
// integrity view students check their own verifier against.
func (s *Server) Chain(w http.ResponseWriter, _ *http.Request) {
	entries := s.svc.Entries()
	if entries == nil {
		entries = []models.LedgerEntry{}
	}
	res := s.svc.Verify()
	writeJSON(w, http.StatusOK, struct {
		Valid     bool                 `json:"valid"`
		InvalidAt *int64               `json:"invalid_at,omitempty"`
		Reason    string               `json:"reason,omitempty"`
		Blocks    []models.LedgerEntry `json:"blocks"`
	}{
		Valid:     res.Valid,
		InvalidAt: invalidAt(res.Valid, res.Index),
		Reason:    string(res.Reason),
		Blocks:    entries,
	})
}

func invalidAt(valid bool, idx int64) *int64 {
	if valid {
		return nil
	}
	return &idx
}

func (s *Server) Leaderboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, leaderboard.Rank(s.svc.Balances()))
}

func (s *Server) Supply(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Supply())
}

// Airdrop mints extra supply into one existing account. Teacher-only.
func (s *Server) Airdrop(w http.ResponseWriter, r *http.Request) {
	if s.teacherKey == "" || r.Header.Get("X-Teacher-Key") != s.teacherKey {
		writeJSON(w, http.StatusForbidden, errorBody{Error: "teacher key required"})
		return
	}
	var req struct {
		Account string          `json:"account"`
		Amount  decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	entry, err := s.svc.Airdrop(r.Context(), req.Account, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// Reset wipes the whole ledger. Teacher-only.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	if s.teacherKey == "" || r.Header.Get("X-Teacher-Key") != s.teacherKey {
		writeJSON(w, http.StatusForbidden, errorBody{Error: "teacher key required"})
		return
	}
	if err := s.svc.Reset(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ledger reset"})
}
