package world

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/udisondev/openworld/internal/model"
)

// TriggerFunc handles a trigger fired at a named target.
type TriggerFunc func(target, source string)

// PerceptionFunc handles a passive perception raised by a character.
type PerceptionFunc func(who model.ObjectID, perception string)

// Bus dispatches trigger and perception events to subscribers.
// Handlers run synchronously on the caller's goroutine.
type Bus struct {
	mu          sync.RWMutex
	triggers    map[string][]TriggerFunc
	perceptions []PerceptionFunc
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{triggers: make(map[string][]TriggerFunc)}
}

// OnTrigger subscribes fn to triggers aimed at target (case-insensitive).
func (b *Bus) OnTrigger(target string, fn TriggerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := strings.ToUpper(target)
	b.triggers[key] = append(b.triggers[key], fn)
}

// OnPerception subscribes fn to every passive perception.
func (b *Bus) OnPerception(fn PerceptionFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.perceptions = append(b.perceptions, fn)
}

func (b *Bus) TriggerEvent(target, source string) {
	b.mu.RLock()
	handlers := b.triggers[strings.ToUpper(target)]
	b.mu.RUnlock()

	if len(handlers) == 0 {
		slog.Debug("trigger without receiver", "target", target, "source", source)
		return
	}
	for _, fn := range handlers {
		fn(target, source)
	}
}

func (b *Bus) PassivePerception(who model.ObjectID, perception string) {
	b.mu.RLock()
	handlers := b.perceptions
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(who, perception)
	}
}
