package collisionviz

const (
	ACTOR_BUILT EventType = iota
	ACTOR_REJECTED
	ACTOR_REMOVED
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// ActorBuiltEvent is sent once per actor whose mesh was generated.
type ActorBuiltEvent struct {
	Actor *Actor
	Mesh  *RenderMesh
}

func (e ActorBuiltEvent) Type() EventType { return ACTOR_BUILT }

// ActorRejectedEvent is sent for an actor that failed validation. No mesh
// was generated for it.
type ActorRejectedEvent struct {
	Actor *Actor
	Err   error
}

func (e ActorRejectedEvent) Type() EventType { return ACTOR_REJECTED }

type ActorRemovedEvent struct {
	Actor *Actor
}

func (e ActorRemovedEvent) Type() EventType { return ACTOR_REMOVED }

// EventListener - callback for events
type EventListener func(event Event)

// Events buffers scene events and hands them to listeners on flush, in the
// order they were recorded.
type Events struct {
	listeners map[EventType][]EventListener
	buffer    []Event
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 64),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) record(event Event) {
	e.buffer = append(e.buffer, event)
}

// flush sends every buffered event, then clears the buffer.
func (e *Events) flush() {
	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	clear(e.buffer)
	e.buffer = e.buffer[:0]
}
