package membus

import (
	"sync"

	"github.com/mwalimu/darasa/core"
)

// Bus is a process-local change bus: every Publish fans a payload-free signal
// out to all live subscriptions. Signals coalesce when a subscriber lags; it
// must reload the store either way, so nothing is lost.
type (
	Bus struct {
		mutex sync.Mutex
		subs  map[*subscription]struct{}
	}

	subscription struct {
		bus    *Bus
		ch     chan struct{}
		closed bool
	}
)

var _ core.ChangeBus = (*Bus)(nil)

func New() *Bus {
	return &Bus{subs: make(map[*subscription]struct{})}
}

func (b *Bus) Subscribe() core.Subscription {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	sub := &subscription{bus: b, ch: make(chan struct{}, 1)}
	b.subs[sub] = struct{}{}
	return sub
}

func (b *Bus) Publish() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for sub := range b.subs {
		select {
		case sub.ch <- struct{}{}:
		default: // a pending signal already covers this change
		}
	}
}

func (s *subscription) C() <-chan struct{} { return s.ch }

func (s *subscription) Close() {
	s.bus.mutex.Lock()
	defer s.bus.mutex.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	delete(s.bus.subs, s)
	close(s.ch)
}
