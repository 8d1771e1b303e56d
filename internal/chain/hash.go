package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/classusd/exchange/internal/models"
)

// GenesisHash anchors the chain: the first entry's PrevHash is 64 ASCII
// zeros. Independent verifiers rely on this exact value.
const GenesisHash = "0000000000000000000000000000000000000000000000000000000000000000"

// canonicalString renders the hashed fields of an entry in their fixed,
// documented order:
//
//	index|kind|sender|receiver|amount|burned|sender_balance|receiver_balance|timestamp|prev_hash
//
// Amounts use exactly four decimal places, the timestamp is UTC RFC3339Nano.
// The processor stamps entries at microsecond precision so the rendered
// timestamp survives a round trip through TIMESTAMPTZ storage unchanged.
// Changing this format breaks every previously recorded chain, so don't.
func canonicalString(e models.LedgerEntry) string {
	return strings.Join([]string{
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
	}, "|")
}

// EntryHash computes the SHA-256 content hash of an entry over its
// canonical serialization, lowercase hex encoded. The stored Hash field is
// ignored; Index and PrevHash must already be set.
func EntryHash(e models.LedgerEntry) string {
	sum := sha256.Sum256([]byte(canonicalString(e)))
	return hex.EncodeToString(sum[:])
}
