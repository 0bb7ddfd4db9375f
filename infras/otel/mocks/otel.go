package mocks

import (
	"context"
	"pawstay/infras/otel"
	"sync"
)

type otelImpl struct {
	recorder *Recorder
}

func (o *otelImpl) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	return ctx, &scopeImpl{span: spanName, recorder: o.recorder}
}

func (o *otelImpl) Shutdown(_ context.Context) error {
	return nil
}

func NewOtel() otel.Otel {
	return &otelImpl{}
}

// Recorder collects traced errors and events per span name.
type Recorder struct {
	mu      sync.Mutex
	entries map[string][]string
}

// NewRecordingOtel returns an Otel whose scopes report into the returned Recorder.
func NewRecordingOtel() (otel.Otel, *Recorder) {
	rec := &Recorder{entries: map[string][]string{}}

	return &otelImpl{recorder: rec}, rec
}

func (r *Recorder) record(span, entry string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[span] = append(r.entries[span], entry)
}

// Entries returns what was recorded for span, in order.
func (r *Recorder) Entries(span string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.entries[span]...)
}
