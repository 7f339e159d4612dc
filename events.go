package glide

import (
	"cmp"
	"slices"
)

const (
	CONTACT_ENTER EventType = iota
	CONTACT_STAY
	CONTACT_EXIT
	ON_GROUNDED
	ON_AIRBORNE
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Contact events, between the controlled agent and a collider
type ContactEnterEvent struct {
	Collider Handle
}

func (e ContactEnterEvent) Type() EventType { return CONTACT_ENTER }

type ContactStayEvent struct {
	Collider Handle
}

func (e ContactStayEvent) Type() EventType { return CONTACT_STAY }

// ContactExitEvent may name a collider removed since the contact began
type ContactExitEvent struct {
	Collider Handle
}

func (e ContactExitEvent) Type() EventType { return CONTACT_EXIT }

// Grounded/Airborne events
type GroundedEvent struct {
	GroundY float64
}

func (e GroundedEvent) Type() EventType { return ON_GROUNDED }

type AirborneEvent struct{}

func (e AirborneEvent) Type() EventType { return ON_AIRBORNE }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Contact tracking for Enter/Stay/Exit detection
	previousContacts map[Handle]bool
	currentContacts  map[Handle]bool

	grounded      bool
	groundedKnown bool
}

func NewEvents() Events {
	return Events{
		listeners:        make(map[EventType][]EventListener),
		buffer:           make([]Event, 0, 16),
		previousContacts: make(map[Handle]bool),
		currentContacts:  make(map[Handle]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordContacts is called during an update with the colliders touched
func (e *Events) recordContacts(handles []Handle) {
	for _, h := range handles {
		e.currentContacts[h] = true
	}
}

// recordGrounded tracks grounded transitions. The first observation only
// initializes the state.
func (e *Events) recordGrounded(grounded bool, groundY float64) {
	if !e.groundedKnown {
		e.grounded = grounded
		e.groundedKnown = true
		return
	}

	if !e.grounded && grounded {
		e.buffer = append(e.buffer, GroundedEvent{GroundY: groundY})
	} else if e.grounded && !grounded {
		e.buffer = append(e.buffer, AirborneEvent{})
	}
	e.grounded = grounded
}

// processContactEvents compares current and previous contacts to detect Enter/Stay/Exit
// Should be called once per update
func (e *Events) processContactEvents() {
	for _, h := range sortedHandles(e.currentContacts) {
		if e.previousContacts[h] {
			e.buffer = append(e.buffer, ContactStayEvent{Collider: h})
		} else {
			e.buffer = append(e.buffer, ContactEnterEvent{Collider: h})
		}
	}

	for _, h := range sortedHandles(e.previousContacts) {
		if !e.currentContacts[h] {
			e.buffer = append(e.buffer, ContactExitEvent{Collider: h})
		}
	}

	// Swap for next update and clear current
	e.previousContacts, e.currentContacts = e.currentContacts, e.previousContacts
	clear(e.currentContacts)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processContactEvents()

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}

func sortedHandles(set map[Handle]bool) []Handle {
	handles := make([]Handle, 0, len(set))
	for h := range set {
		handles = append(handles, h)
	}
	slices.SortFunc(handles, func(a, b Handle) int {
		if c := cmp.Compare(a.index, b.index); c != 0 {
			return c
		}
		return cmp.Compare(a.generation, b.generation)
	})
	return handles
}
