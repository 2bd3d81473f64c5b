package mocks

import "hotel/infras/otel"

type scopeImpl struct {
	parent *Otel
}

func (s *scopeImpl) AddEvent(_ string) {}

func (s *scopeImpl) End() {}

func (s *scopeImpl) SetAttribute(_ string, _ any) {}

func (s *scopeImpl) SetAttributes(_ map[string]any) {}

func (s *scopeImpl) TraceError(err error) {
	if s.parent != nil {
		s.parent.record(err)
	}
}

func (s *scopeImpl) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

// NewScope returns a scope that traces nothing.
func NewScope() otel.Scope {
	return &scopeImpl{}
}
