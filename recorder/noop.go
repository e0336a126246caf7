package recorder

import "github.com/openalpha/piggy-vault/x/vault/types"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordEvent(_ types.Event) error            { return nil }
func (n *NoopRecorder) RecordValuation(_ *ValuationSnapshot) error { return nil }
func (n *NoopRecorder) Close() error                               { return nil }
