package mocks

import (
	"context"
	"sync"

	"rentwheels/infras/otel"
)

// Otel is a no-op tracer for tests. It remembers the spans that were opened
// and the errors traced on them.
type Otel struct {
	mu     sync.Mutex
	spans  []string
	errors []error
}

func NewOtel() *Otel {
	return &Otel{}
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	o.mu.Lock()
	o.spans = append(o.spans, spanName)
	o.mu.Unlock()

	return ctx, &scope{owner: o}
}

func (o *Otel) Shutdown(context.Context) error {
	return nil
}

// Spans lists opened span names in order.
func (o *Otel) Spans() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]string(nil), o.spans...)
}

// Errors lists every error passed to TraceError or a non-nil TraceIfError.
func (o *Otel) Errors() []error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]error(nil), o.errors...)
}

type scope struct {
	owner *Otel
}

func (s *scope) End() {}

func (s *scope) TraceError(err error) {
	s.owner.mu.Lock()
	s.owner.errors = append(s.owner.errors, err)
	s.owner.mu.Unlock()
}

func (s *scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scope) AddEvent(string) {}

func (s *scope) SetAttribute(string, any) {}

func (s *scope) SetAttributes(map[string]any) {}
