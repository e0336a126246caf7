package recorder

import (
	"cosmossdk.io/log"

	"github.com/openalpha/piggy-vault/x/vault/types"
)

// Emitter adapts a Recorder to types.EventEmitter. Events are queued and
// written by a background goroutine so a slow database write never blocks
// the ledger critical section; the queue drops on overflow.
type Emitter struct {
	recorder Recorder
	queue    chan types.Event
	done     chan struct{}
	logger   log.Logger
}

// NewEmitter starts the write loop over the given recorder.
func NewEmitter(rec Recorder, logger log.Logger) *Emitter {
	e := &Emitter{
		recorder: rec,
		queue:    make(chan types.Event, 256),
		done:     make(chan struct{}),
		logger:   logger.With("module", "recorder"),
	}
	go e.run()
	return e
}

// Emit implements types.EventEmitter.
func (e *Emitter) Emit(event types.Event) {
	select {
	case e.queue <- event:
	default:
		e.logger.Error("Recorder queue full, dropping event", "type", event.Type)
	}
}

// Close drains the queue and stops the write loop.
func (e *Emitter) Close() {
	close(e.queue)
	<-e.done
}

func (e *Emitter) run() {
	defer close(e.done)
	for event := range e.queue {
		if err := e.recorder.RecordEvent(event); err != nil {
			e.logger.Error("Record event failed", "type", event.Type, "error", err)
		}
	}
}
