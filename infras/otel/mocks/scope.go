package mocks

import "pawstay/infras/otel"

// scopeImpl discards everything unless a Recorder is attached.
type scopeImpl struct {
	span     string
	recorder *Recorder
}

func (s *scopeImpl) AddEvent(name string) {
	s.recorder.record(s.span, "event:"+name)
}

func (s *scopeImpl) End() {}

func (s *scopeImpl) SetAttribute(_ string, _ any) {}

func (s *scopeImpl) SetAttributes(_ map[string]any) {}

func (s *scopeImpl) TraceError(err error) {
	if err != nil {
		s.recorder.record(s.span, "error:"+err.Error())
	}
}

func (s *scopeImpl) TraceIfError(err error) {
	s.TraceError(err)
}

func NewScope() otel.Scope {
	return &scopeImpl{}
}
