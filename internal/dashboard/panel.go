package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bradenpeterson/JournalApp/client"
)

// State is what a panel renders: a spinner, an inline error, or a value.
type State[T any] struct {
	Loading bool
	Err     string
	Value   T
}

// Panel holds one piece of dashboard state. Each refresh takes a new
// generation; a load that finishes after a newer refresh began is dropped
// instead of committed. The request itself is never cancelled.
type Panel[T any] struct {
	name    string
	failMsg string
	load    func(ctx context.Context, date string) (T, error)

	mu    sync.Mutex
	gen   uint64
	state State[T]
}

func newPanel[T any](name, failMsg string, load func(context.Context, string) (T, error)) *Panel[T] {
	return &Panel[T]{name: name, failMsg: failMsg, load: load}
}

// Name identifies the panel; it is also the dispatch key.
func (p *Panel[T]) Name() string { return p.name }

// State returns a snapshot of the panel.
func (p *Panel[T]) State() State[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// begin marks the panel loading and returns the generation the matching
// commit must carry.
func (p *Panel[T]) begin() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.state.Loading = true
	p.state.Err = ""
	return p.gen
}

// commit applies a finished load unless a newer refresh superseded it. It
// reports whether the result was applied.
func (p *Panel[T]) commit(gen uint64, v T, err error) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return false
	}
	p.state.Loading = false
	if err != nil {
		p.state.Err = client.UserMessage(err, p.failMsg)
		return true
	}
	p.state.Err = ""
	p.state.Value = v
	return true
}

// set replaces the value directly after a local mutation.
func (p *Panel[T]) set(v T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.state = State[T]{Value: v}
}

// run is the dispatch job body for one refresh.
func (p *Panel[T]) run(ctx context.Context, gen uint64, date string) error {
	start := time.Now()
	v, err := p.load(ctx, date)
	applied := p.commit(gen, v, err)
	ev := log.Debug()
	if err != nil {
		ev = log.Warn().Err(err)
	}
	ev.Str("panel", p.name).Str("date", date).Bool("applied", applied).Dur("elapsed", time.Since(start)).Msg("panel refreshed")
	return err
}
