package server

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"
)

// csvHeader is the canonical field order; a verifier can rebuild every
// entry hash from these columns alone.
var csvHeader = []string{
	"index", "kind", "sender", "receiver", "amount", "burned",
	"sender_balance", "receiver_balance", "timestamp", "prev_hash", "hash",
}

// ExportCSV streams the full ledger as CSV for the students' data labs.
func (s *Server) ExportCSV(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="ledger.csv"`)

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		s.logger.Error("csv export failed", "err", err)
		return
	}
	for _, e := range s.svc.Entries() {
		record := []string{
			strconv.FormatInt(e.Index, 10),
			string(e.Kind),
			e.Sender,
			e.Receiver,
			e.Amount.StringFixed(4),
			e.Burned.StringFixed(4),
			e.SenderBalance.StringFixed(4),
			e.ReceiverBalance.StringFixed(4),
			e.Timestamp.UTC().Format(time.RFC3339Nano),
			e.PrevHash,
			e.Hash,
		}
		if err := cw.Write(record); err != nil {
			s.logger.Error("csv export failed", "index", e.Index, "err", err)
			return
		}
	}
	cw.Flush()
}
