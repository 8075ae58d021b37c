// Package mocks provides an in-memory otel.Otel for tests. Every span is kept
// so a test can assert which operations ran and which errors were traced.
package mocks

import (
	"context"
	"saleema/infras/otel"
	"sync"
)

// Span is what a Recorder remembers about one scope.
type Span struct {
	Name       string
	Attributes map[string]any
	Events     []string
	Errors     []error
	Ended      bool
}

type Recorder struct {
	mu    sync.Mutex
	spans []*Span
}

func NewOtel() otel.Otel {
	return &Recorder{}
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := &Span{Name: spanName, Attributes: map[string]any{}}
	r.spans = append(r.spans, span)

	return ctx, &scope{recorder: r, span: span}
}

func (r *Recorder) Shutdown(context.Context) error {
	return nil
}

// Spans returns copies of the recorded spans in start order.
func (r *Recorder) Spans() []Span {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Span, len(r.spans))
	for i, span := range r.spans {
		out[i] = *span
	}

	return out
}

// Errors returns every error traced on any span.
func (r *Recorder) Errors() []error {
	var errs []error
	for _, span := range r.Spans() {
		errs = append(errs, span.Errors...)
	}

	return errs
}

type scope struct {
	recorder *Recorder
	span     *Span
}

func (s *scope) End() {
	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.span.Ended = true
}

func (s *scope) TraceError(err error) {
	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.span.Errors = append(s.span.Errors, err)
}

func (s *scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scope) AddEvent(name string) {
	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.span.Events = append(s.span.Events, name)
}

func (s *scope) SetAttribute(key string, value any) {
	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.span.Attributes[key] = value
}

func (s *scope) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}
