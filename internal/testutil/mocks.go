package testutil

import (
	"context"
	"sync"
	"time"

	"codeberg.org/snonux/poai/internal/provider"
)

// MockProvider mocks a translation backend. The zero value translates every
// text to "[T] " + text. It is safe for concurrent use.
type MockProvider struct {
	ProviderName string
	Translations map[string]string
	Errors       map[string]error
	// Delay is slept before every answer; useful to observe concurrency.
	Delay time.Duration

	mu          sync.Mutex
	calls       []provider.Request
	inFlight    int
	maxInFlight int
}

// Name returns ProviderName or "mock".
func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// Translate records the request and answers from Translations or Errors.
func (m *MockProvider) Translate(ctx context.Context, req provider.Request) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if err, ok := m.Errors[req.Text]; ok {
		return "", &provider.ProviderError{Provider: m.Name(), Err: err}
	}
	if translation, ok := m.Translations[req.Text]; ok {
		return translation, nil
	}
	return "[T] " + req.Text, nil
}

// Calls returns a copy of the requests seen so far.
func (m *MockProvider) Calls() []provider.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]provider.Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of requests seen so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// MaxInFlight returns the highest number of concurrent Translate calls.
func (m *MockProvider) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}

// Recorder collects values passed to Record, e.g. progress events.
type Recorder[E any] struct {
	mu     sync.Mutex
	events []E
}

// Record appends e.
func (r *Recorder[E]) Record(e E) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of everything recorded so far.
func (r *Recorder[E]) Events() []E {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]E, len(r.events))
	copy(out, r.events)
	return out
}
