package metrics

import (
	"cosmossdk.io/math"

	"github.com/openalpha/piggy-vault/x/vault/types"
)

// Emitter translates ledger events into collector updates. It implements
// types.EventEmitter.
type Emitter struct {
	collector *Collector
}

// NewEmitter creates an emitter over the singleton collector.
func NewEmitter() *Emitter {
	return &Emitter{collector: GetCollector()}
}

// Emit implements types.EventEmitter.
func (e *Emitter) Emit(event types.Event) {
	attrs := event.Attributes
	switch event.Type {
	case types.EventStakeCreated:
		e.collector.RecordStake(attrs["duration"], amountToFloat(attrs["amount"]))
	case types.EventStakeClaimed:
		e.collector.RecordUnstake(attrs["duration"],
			amountToFloat(attrs["user_payout"]), amountToFloat(attrs["dev_fee"]))
	case types.EventPiggyCreated:
		e.collector.RecordPiggy(attrs["safe_mode"], amountToFloat(attrs["amount"]))
	case types.EventPiggyClaimed:
		e.collector.RecordClaim(attrs["safe_mode"],
			amountToFloat(attrs["user_payout"]), amountToFloat(attrs["dev_fee"]))
	}
}

// amountToFloat converts an 18-decimal fixed-point amount string to whole
// units. Precision loss is fine here, gauges and counters are approximate
// by nature.
func amountToFloat(s string) float64 {
	amount, ok := math.NewIntFromString(s)
	if !ok {
		return 0
	}
	f, err := math.LegacyNewDecFromIntWithPrec(amount, 18).Float64()
	if err != nil {
		return 0
	}
	return f
}
