package core

// Origin tags where an Event came from, per spec.md §6's event shape.
type Origin string

const (
	OriginExternal Origin = "external"
	OriginInternal Origin = "internal"
	OriginDone     Origin = "done"
)

// Event is the unit the interpreter's queues carry and selectTransitions
// matches against.
type Event struct {
	Name   string
	Data   any
	Origin Origin
}

// NewExternalEvent builds an event as arriving from outside the interpreter,
// e.g. via Interpreter.Send.
func NewExternalEvent(name string, data any) Event {
	return Event{Name: name, Data: data, Origin: OriginExternal}
}

// NewInternalEvent builds an event as raised from within the interpreter
// (executable content via SendInternal, or error.execution).
func NewInternalEvent(name string, data any) Event {
	return Event{Name: name, Data: data, Origin: OriginInternal}
}

func newDoneEvent(name string, data any) Event {
	return Event{Name: name, Data: data, Origin: OriginDone}
}
