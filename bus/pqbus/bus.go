package pqbus

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/mwalimu/darasa/core"
)

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
)

// Bus is a cross-process change bus over Postgres LISTEN/NOTIFY: sessions in
// other processes reading the same database observe every Publish. The
// notification payload is always empty; subscribers reload the store.
type (
	Bus struct {
		db       *sql.DB
		listener *pq.Listener
		channel  string
		logger   core.Logger

		mutex sync.Mutex
		subs  map[*subscription]struct{}
		done  chan struct{}
	}

	subscription struct {
		bus    *Bus
		ch     chan struct{}
		closed bool
	}
)

var _ core.ChangeBus = (*Bus)(nil)

func New(conninfo, channel string, logger core.Logger) (*Bus, error) {
	db, err := sql.Open("postgres", conninfo)
	if err != nil {
		return nil, errors.Wrap(err, "opening notify connection")
	}

	listener := pq.NewListener(conninfo, minReconnectInterval, maxReconnectInterval,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				logger.Warn(fmt.Sprintf("change bus listener event %d", ev), err)
			}
		})
	if err := listener.Listen(channel); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "listening on %q", channel)
	}

	b := &Bus{
		db:       db,
		listener: listener,
		channel:  channel,
		logger:   logger,
		subs:     make(map[*subscription]struct{}),
		done:     make(chan struct{}),
	}
	go b.fanout()
	return b, nil
}

// fanout relays every database notification, own publishes included, to the
// local subscriptions.
func (b *Bus) fanout() {
	for {
		select {
		case <-b.done:
			return
		case _, ok := <-b.listener.Notify:
			if !ok {
				return
			}
			b.broadcast()
		}
	}
}

func (b *Bus) broadcast() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for sub := range b.subs {
		select {
		case sub.ch <- struct{}{}:
		default: // a pending signal already covers this change
		}
	}
}

func (b *Bus) Subscribe() core.Subscription {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	sub := &subscription{bus: b, ch: make(chan struct{}, 1)}
	b.subs[sub] = struct{}{}
	return sub
}

func (b *Bus) Publish() {
	// NOTIFY takes no bind parameters; the channel name comes from config,
	// not user input, and is quoted regardless.
	if _, err := b.db.Exec("NOTIFY " + pq.QuoteIdentifier(b.channel)); err != nil {
		b.logger.Error("publishing change signal", err)
	}
}

// Close stops the listener and releases every subscription.
func (b *Bus) Close() error {
	close(b.done)

	b.mutex.Lock()
	for sub := range b.subs {
		sub.closed = true
		delete(b.subs, sub)
		close(sub.ch)
	}
	b.mutex.Unlock()

	err := b.listener.Close()
	if dbErr := b.db.Close(); err == nil {
		err = dbErr
	}
	return err
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
