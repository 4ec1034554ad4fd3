// Package notify is the process-local publish/subscribe channel for device
// state changes.
//
// Handlers run synchronously on the goroutine that publishes, which is the
// goroutine draining the underlying source's change stream. Handlers for one
// event name run in subscription order.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arnavsurve/devicectl/internal/device"
)

type Name string

const (
	OrientationDidChange     Name = "orientation-changed"
	BatteryLevelDidChange    Name = "battery-level-changed"
	BatteryStateDidChange    Name = "battery-state-changed"
	ConnectionStateDidChange Name = "connection-state-changed"
)

// Names lists every event the facade publishes.
func Names() []Name {
	return []Name{OrientationDidChange, BatteryLevelDidChange, BatteryStateDidChange, ConnectionStateDidChange}
}

// Event carries the new value. Only the field matching Name is meaningful.
type Event struct {
	Name            Name                   `json:"name"`
	Time            time.Time              `json:"time"`
	Orientation     device.Orientation     `json:"orientation"`
	BatteryLevel    float32                `json:"battery_level"`
	BatteryState    device.BatteryState    `json:"battery_state"`
	ConnectionState device.ConnectionState `json:"connection_state"`
}

type Handler func(Event)

// Subscription identifies a registered handler.
type Subscription struct {
	ID   uuid.UUID
	Name Name
}

type entry struct {
	id uuid.UUID
	fn Handler
}

type Bus struct {
	mu       sync.RWMutex
	handlers map[Name][]entry
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Name][]entry)}
}

func (b *Bus) Subscribe(name Name, fn Handler) Subscription {
	sub := Subscription{ID: uuid.New(), Name: name}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], entry{id: sub.ID, fn: fn})
	return sub
}

// Unsubscribe removes the handler. It reports false if sub was not
// registered.
func (b *Bus) Unsubscribe(sub Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.handlers[sub.Name]
	for i, e := range entries {
		if e.id != sub.ID {
			continue
		}
		next := make([]entry, 0, len(entries)-1)
		next = append(next, entries[:i]...)
		next = append(next, entries[i+1:]...)
		if len(next) == 0 {
			delete(b.handlers, sub.Name)
		} else {
			b.handlers[sub.Name] = next
		}
		return true
	}
	return false
}

// Publish delivers ev to the handlers registered when Publish was called.
// A handler may subscribe or unsubscribe without deadlocking.
func (b *Bus) Publish(ev Event) {
	b.PublishWhile(ev, nil)
}

// PublishWhile is Publish, except live is consulted before every handler
// and delivery stops at the first false. A nil live always delivers.
func (b *Bus) PublishWhile(ev Event, live func() bool) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}

	b.mu.RLock()
	entries := b.handlers[ev.Name]
	b.mu.RUnlock()

	for _, e := range entries {
		if live != nil && !live() {
			return
		}
		e.fn(ev)
	}
}

func (b *Bus) Subscribers(name Name) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[name])
}
