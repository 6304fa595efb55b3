package forms

import (
	"context"
	"sync"
)

// Tracker hands out one Ticket per submission. Starting a submission
// supersedes the previous one: its context is cancelled and its ticket stops
// being current, so a late result can be recognised and dropped.
type Tracker struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Ticket identifies a single submission.
type Ticket struct {
	ctx     context.Context
	cancel  context.CancelFunc
	id      uint64
	tracker *Tracker
}

// Start supersedes the current ticket, if any, and returns a new one whose
// context derives from parent.
func (t *Tracker) Start(parent context.Context) *Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}
	t.seq++

	ctx, cancel := context.WithCancel(parent)
	t.cancel = cancel
	return &Ticket{ctx: ctx, cancel: cancel, id: t.seq, tracker: t}
}

// Reset supersedes the current ticket without starting a new one.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.seq++
}

func (k *Ticket) Context() context.Context {
	return k.ctx
}

// Current reports whether no later submission or reset has happened.
func (k *Ticket) Current() bool {
	k.tracker.mu.Lock()
	defer k.tracker.mu.Unlock()
	return k.id == k.tracker.seq
}

// Done releases the ticket's context.
func (k *Ticket) Done() {
	k.cancel()
}
