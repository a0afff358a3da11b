// Package events provides an in-process pub/sub bus for entity change
// events. Store handlers publish after a successful write; subscribers
// (change-feed connections, audit logging) process asynchronously.
package events

import (
	"context"
	"log"
	"sync"
	"time"
)

// Actions an entity record can undergo.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Change describes one mutation of one record.
type Change struct {
	Entity string    `json:"entity"`
	ID     string    `json:"id"`
	Action string    `json:"action"`
	At     time.Time `json:"at"`
}

// Handler processes a change event. Implementations must be safe for
// concurrent calls from different goroutines.
type Handler interface {
	HandleChange(ctx context.Context, chg Change) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, chg Change) error

func (f HandlerFunc) HandleChange(ctx context.Context, chg Change) error {
	return f(ctx, chg)
}

// Bus is a simple in-process change bus. Changes are published to a buffered
// channel and dispatched to all subscribers from a single consumer
// goroutine, which serialises processing and keeps subscriber code free of
// locking.
type Bus struct {
	mu          sync.RWMutex
	subscribers []namedHandler
	changes     chan Change
	done        chan struct{}
}

type namedHandler struct {
	name    string
	handler Handler
}

// NewBus creates a Bus with the given channel buffer size.
func NewBus(bufSize int) *Bus {
	if bufSize < 1 {
		bufSize = 256
	}
	return &Bus{
		changes: make(chan Change, bufSize),
		done:    make(chan struct{}),
	}
}

// Subscribe registers a named handler. Change-feed connections subscribe and
// unsubscribe while the bus is running.
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, namedHandler{name: name, handler: h})
}

// Unsubscribe removes a previously registered handler by name.
func (b *Bus) Unsubscribe(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subscribers {
		if s.name == name {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			return
		}
	}
}

// Publish sends a change to the bus. Non-blocking: if the buffer is full the
// change is dropped and a warning is logged, a write must never stall on a
// slow feed consumer.
func (b *Bus) Publish(ctx context.Context, chg Change) {
	if chg.At.IsZero() {
		chg.At = time.Now().UTC()
	}
	select {
	case b.changes <- chg:
	default:
		log.Printf("events: buffer full, dropping %s %s/%s", chg.Action, chg.Entity, chg.ID)
	}
}

// Start begins the consumer goroutine. It processes changes until the
// context is cancelled, draining whatever is already buffered.
func (b *Bus) Start(ctx context.Context) {
	go func() {
		defer close(b.done)
		for {
			select {
			case chg := <-b.changes:
				b.dispatch(ctx, chg)
			case <-ctx.Done():
				for {
					select {
					case chg := <-b.changes:
						b.dispatch(ctx, chg)
					default:
						return
					}
				}
			}
		}
	}()
}

// Wait blocks until the consumer goroutine has exited.
func (b *Bus) Wait() {
	<-b.done
}

func (b *Bus) dispatch(ctx context.Context, chg Change) {
	b.mu.RLock()
	subs := make([]namedHandler, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	for _, s := range subs {
		if err := s.handler.HandleChange(ctx, chg); err != nil {
			log.Printf("events: %s handler error for %s/%s: %v", s.name, chg.Entity, chg.ID, err)
		}
	}
}
