package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"storefront-home/metrics"
)

// PassTracker tracks the live resolution passes of each session. Starting a pass for another
// location cancels every live pass of the session for a different location so their late
// results can be discarded.
type PassTracker struct {
	mu   sync.Mutex
	live map[string]map[*Pass]struct{}
}

// Pass is one resolution pass of a session
type Pass struct {
	ID         string
	SessionKey string
	LocationID string

	tracker    *PassTracker
	cancel     context.CancelFunc
	superseded bool
}

// NewPassTracker creates a new PassTracker
func NewPassTracker() *PassTracker {
	return &PassTracker{live: make(map[string]map[*Pass]struct{})}
}

// Begin starts a pass and returns it with a context cancelled when the pass is superseded.
// Passes without a session key are never superseded.
func (t *PassTracker) Begin(ctx context.Context, sessionKey, locationID string) (*Pass, context.Context) {
	passCtx, cancel := context.WithCancel(ctx)
	p := &Pass{
		ID:         uuid.NewString(),
		SessionKey: sessionKey,
		LocationID: locationID,
		tracker:    t,
		cancel:     cancel,
	}
	if sessionKey == "" {
		return p, passCtx
	}

	t.mu.Lock()
	passes, ok := t.live[sessionKey]
	if !ok {
		passes = make(map[*Pass]struct{})
		t.live[sessionKey] = passes
	}
	for prev := range passes {
		if prev.LocationID == locationID {
			continue
		}
		prev.superseded = true
		prev.cancel()
		delete(passes, prev)
		metrics.RecordSuperseded()
	}
	passes[p] = struct{}{}
	t.mu.Unlock()

	return p, passCtx
}

// Current reports whether the pass is still valid for its session
func (p *Pass) Current() bool {
	p.tracker.mu.Lock()
	defer p.tracker.mu.Unlock()
	return !p.superseded
}

// Finish releases the pass
func (p *Pass) Finish() {
	p.tracker.mu.Lock()
	if passes, ok := p.tracker.live[p.SessionKey]; ok {
		delete(passes, p)
		if len(passes) == 0 {
			delete(p.tracker.live, p.SessionKey)
		}
	}
	p.tracker.mu.Unlock()
	p.cancel()
}

// active returns the number of tracked sessions
func (t *PassTracker) active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}
