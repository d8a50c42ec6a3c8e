package core

// Event represents a game event
type Event struct {
	Type    EventType
	Tick    uint64
	Payload interface{}
}

type EventType uint16

const (
	EvtDied EventType = iota
	EvtGunFired
	EvtAlienSpawned
	EvtConstructionError
	EvtStateChanged
)

// Died is raised when an entity reaches zero hit points or is demolished.
// It may be raised more than once for the same entity in one tick.
type Died struct {
	Entity EntityID
	Killer EntityID // NoEntity for demolition
}

// GunFired is a cosmetic side channel for VFX and audio
type GunFired struct {
	Shooter   EntityID
	Transform Transform
	Weapon    WeaponType
}

// AlienSpawned reports a new alien and where it appeared
type AlienSpawned struct {
	Entity EntityID
	Point  Vec3
}

// ConstructionError carries a rejected build or demolish attempt
type ConstructionError struct {
	Err error
}

// StateChanged reports a match state transition
type StateChanged struct {
	From, To GameState
}

// EventBus is a per-tick mailbox. Emit queues, Dispatch drains the queue
// fully; nothing survives past Dispatch.
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type. Handlers run in registration
// order.
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Dispatch processes all queued events, including any emitted by handlers
// while dispatching, and returns how many were delivered.
func (eb *EventBus) Dispatch() int {
	n := 0
	for i := 0; i < len(eb.queue); i++ {
		e := eb.queue[i]
		for _, h := range eb.listeners[e.Type] {
			h(e)
		}
		n++
	}
	eb.queue = eb.queue[:0]
	return n
}

// Pending returns the number of queued events
func (eb *EventBus) Pending() int {
	return len(eb.queue)
}

// Discard drops queued events without delivering them
func (eb *EventBus) Discard() {
	eb.queue = eb.queue[:0]
}
