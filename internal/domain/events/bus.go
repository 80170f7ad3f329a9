// Package events is the engine's outbound notification channel.
//
// Publishers never block: each subscriber has a bounded buffer and events
// that do not fit are dropped and counted. The host side subscribes and
// forwards events over whatever transport it uses.
package events

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
)

// DefaultBuffer is the per-subscriber queue length when none is given
const DefaultBuffer = 256

// Bus fans events out to subscribers
type Bus struct {
	logger *zap.Logger

	mu     sync.RWMutex
	subs   map[uint64]*Subscription
	nextID uint64

	dropped atomic.Uint64
}

// Subscription receives events until Close is called
type Subscription struct {
	bus *Bus
	id  uint64
	ch  chan types.Event

	once sync.Once
}

// NewBus creates an empty bus
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		logger: logger,
		subs:   make(map[uint64]*Subscription),
	}
}

// Subscribe registers a subscriber with the given buffer size
func (b *Bus) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		bus: b,
		id:  b.nextID,
		ch:  make(chan types.Event, buffer),
	}
	b.subs[sub.id] = sub
	return sub
}

// Publish delivers ev to every subscriber without blocking
func (b *Bus) Publish(ev types.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		select {
		case sub.ch <- ev:
		default:
			b.dropped.Add(1)
			b.logger.Warn("subscriber buffer full, dropping event",
				zap.String("type", string(ev.Type)),
				zap.Uint64("subscriber", sub.id))
		}
	}
}

// Subscribers returns the number of registered subscribers
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped returns how many deliveries were discarded
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

// CloseAll closes every open subscription
func (b *Bus) CloseAll() {
	b.mu.RLock()
	subs := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.Close()
	}
}

// Events returns the receive channel. It is closed by Close.
func (s *Subscription) Events() <-chan types.Event {
	return s.ch
}

// Close unregisters the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s.id)
		s.bus.mu.Unlock()
		close(s.ch)
	})
}
