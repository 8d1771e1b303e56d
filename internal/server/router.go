package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router wires the API routes.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/register", s.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/trade", s.Trade).Methods(http.MethodPost)
	r.HandleFunc("/api/balance", s.Balance).Methods(http.MethodGet)
	r.HandleFunc("/api/ledger", s.Ledger).Methods(http.MethodGet)
	r.HandleFunc("/api/chain", s.Chain).Methods(http.MethodGet)
	r.HandleFunc("/api/leaderboard", s.Leaderboard).Methods(http.MethodGet)
	r.HandleFunc("/api/supply", s.Supply).Methods(http.MethodGet)
	r.HandleFunc("/api/export/csv", s.ExportCSV).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/airdrop", s.Airdrop).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/reset", s.Reset).Methods(http.MethodPost)
	r.HandleFunc("/health", s.Health).Methods(http.MethodGet)
	return r
}
