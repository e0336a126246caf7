// Package recorder persists ledger events and valuation history for
// after-the-fact analysis. The in-memory ledger is the source of truth; the
// recorder is an audit trail, so its writes are best-effort from the
// caller's point of view.
package recorder

import "github.com/openalpha/piggy-vault/x/vault/types"

// ValuationSnapshot is one periodic mark of the vault's open positions.
type ValuationSnapshot struct {
	Timestamp int64
	// OpenPositionValue is the re-quoted base-currency value of all
	// unclaimed piggies plus outstanding stake principal and rewards.
	OpenPositionValue string
}

// Recorder persists ledger history.
type Recorder interface {
	RecordEvent(event types.Event) error
	RecordValuation(snap *ValuationSnapshot) error
	Close() error
}
