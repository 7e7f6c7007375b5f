package classroom

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mwalimu/darasa/core"
)

// graderStub scripts the external grading collaborator per question prompt.
type graderStub struct {
	mu      sync.Mutex
	results map[string]core.GradingResult
	errs    map[string]error
	drafts  []core.QuestionDraft
	summary string
	calls   int
}

var _ core.GradingService = (*graderStub)(nil)

func newGraderStub() *graderStub {
	return &graderStub{
		results: make(map[string]core.GradingResult),
		errs:    make(map[string]error),
	}
}

func (g *graderStub) GradeOpenQuestion(_ context.Context, question, _, _ string) (core.GradingResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if err, ok := g.errs[question]; ok {
		return core.GradingResult{}, err
	}
	return g.results[question], nil
}

func (g *graderStub) GenerateQuestions(_ context.Context, _ string, _ int) ([]core.QuestionDraft, error) {
	return g.drafts, nil
}

func (g *graderStub) GenerateSummary(_ context.Context, _, _ string) (string, error) {
	return g.summary, nil
}

// stubStore is a single-slot store keeping the document serialized, so every
// Load hands back an independent copy just like a real backend.
type stubStore struct {
	mu  sync.Mutex
	doc []byte
}

var _ Store = (*stubStore)(nil)

func (s *stubStore) Load() ([]Classroom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return []Classroom{}, nil
	}
	var rooms []Classroom
	if err := json.Unmarshal(s.doc, &rooms); err != nil {
		return []Classroom{}, nil
	}
	return rooms, nil
}

func (s *stubStore) Save(rooms []Classroom) error {
	doc, err := json.Marshal(rooms)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

// stubBus is a process-local change bus with synchronous best-effort delivery.
type (
	stubBus struct {
		mu   sync.Mutex
		subs map[*stubSub]struct{}
	}
	stubSub struct {
		bus    *stubBus
		ch     chan struct{}
		closed bool
	}
)

var _ core.ChangeBus = (*stubBus)(nil)

func newStubBus() *stubBus {
	return &stubBus{subs: make(map[*stubSub]struct{})}
}

func (b *stubBus) Subscribe() core.Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub := &stubSub{bus: b, ch: make(chan struct{}, 1)}
	b.subs[sub] = struct{}{}
	return sub
}

func (b *stubBus) Publish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		select {
		case sub.ch <- struct{}{}:
		default: // coalesce
		}
	}
}

func (s *stubSub) C() <-chan struct{} { return s.ch }

func (s *stubSub) Close() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	delete(s.bus.subs, s)
	close(s.ch)
}

// nopLogger drops everything.
type nopLogger struct{}

var _ core.Logger = (*nopLogger)(nil)

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}
