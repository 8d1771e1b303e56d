// Command verify re-checks an exported ledger snapshot without trusting
// the server that produced it. Feed it the JSON from /api/ledger:
//
//	verify -snapshot ledger.json
//
// It recomputes every hash and link from the canonical field order and
// prints the first divergence, if any.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/classusd/exchange/internal/models"
	"github.com/classusd/exchange/internal/verify"
)

func main() {
	snapshot := flag.String("snapshot", "ledger.json", "exported ledger snapshot (JSON)")
	showChain := flag.Bool("chain", false, "print every block after the verdict")
	flag.Parse()

	data, err := os.ReadFile(*snapshot)
	if err != nil {
		pterm.Error.Printfln("read snapshot: %v", err)
		os.Exit(1)
	}
	var entries []models.LedgerEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		pterm.Error.Printfln("decode snapshot: %v", err)
		os.Exit(1)
	}

	res := verify.Chain(entries)
	if res.Valid {
		pterm.Success.Printfln("%d blocks, all valid", len(entries))
	} else {
		pterm.Error.Printfln("chain invalid at block %d: %s", res.Index, res.Reason)
	}

	if *showChain {
		printChain(entries)
	}
	if !res.Valid {
		os.Exit(1)
	}
}

func printChain(entries []models.LedgerEntry) {
	data := pterm.TableData{{"#", "kind", "from", "to", "amount", "burned", "hash"}}
	for _, e := range entries {
		from := e.Sender
		if from == "" {
			from = "SYSTEM"
		}
		data = append(data, []string{
			fmt.Sprintf("%d", e.Index),
			string(e.Kind),
			from,
			e.Receiver,
			e.Amount.StringFixed(4),
			e.Burned.StringFixed(4),
			short(e.Hash),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func short(hash string) string {
	if len(hash) <= 16 {
		return hash
	}
	return hash[:16] + "…"
}
