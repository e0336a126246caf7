package api

import "github.com/openalpha/piggy-vault/x/vault/types"

// FanoutEmitter forwards each ledger event to every attached sink: the
// websocket hub, the recorder and the metrics collector. Each sink is
// responsible for its own non-blocking behavior.
type FanoutEmitter struct {
	sinks []types.EventEmitter
}

// NewFanoutEmitter creates an emitter over the given sinks.
func NewFanoutEmitter(sinks ...types.EventEmitter) *FanoutEmitter {
	return &FanoutEmitter{sinks: sinks}
}

// Emit implements types.EventEmitter.
func (f *FanoutEmitter) Emit(event types.Event) {
	for _, sink := range f.sinks {
		sink.Emit(event)
	}
}
