package scan

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	// ErrSubscriberExists is returned when Subscribe is called with a duplicate name.
	ErrSubscriberExists = errors.New("subscriber name already exists")

	// ErrBusClosed is returned when subscribing to a closed bus.
	ErrBusClosed = errors.New("bus is closed")
)

// Handler receives published events. It runs on the publisher's goroutine.
type Handler func(Event)

// Stats counts events seen by the bus.
type Stats struct {
	Published uint64
	Blank     uint64
}

type subscriber struct {
	name    string
	handler Handler
}

// Bus fans decoded text out to subscribers in subscription order.
type Bus struct {
	mu          sync.RWMutex
	subscribers []subscriber
	closed      bool

	published atomic.Uint64
	blank     atomic.Uint64
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers handler under name and returns a func that removes it.
func (b *Bus) Subscribe(name string, handler Handler) (func(), error) {
	if handler == nil {
		return nil, errors.New("subscriber handler cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBusClosed
	}
	for _, s := range b.subscribers {
		if s.name == name {
			return nil, ErrSubscriberExists
		}
	}
	b.subscribers = append(b.subscribers, subscriber{name: name, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(name) })
	}, nil
}

func (b *Bus) remove(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subscribers {
		if s.name == name {
			b.subscribers = append(b.subscribers[:i:i], b.subscribers[i+1:]...)
			return
		}
	}
}

// Publish delivers ev to every subscriber. Blank text is a no-detection
// result and is dropped. Publishing on a closed bus does nothing.
func (b *Bus) Publish(ev Event) {
	ev.Text = strings.TrimSpace(ev.Text)

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	if ev.Text == "" {
		b.mu.RUnlock()
		b.blank.Add(1)
		return
	}
	subs := make([]subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	b.published.Add(1)
	for _, s := range subs {
		s.handler(ev)
	}
}

// Stats returns the current counters.
func (b *Bus) Stats() Stats {
	return Stats{
		Published: b.published.Load(),
		Blank:     b.blank.Load(),
	}
}

// Close drops all subscribers. Further publishes are ignored.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subscribers = nil
	return nil
}
