package event

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Event is the per-occurrence value object handed to every observer of a
// notification. Subject, signal and id are fixed at construction; processed
// only ever goes from false to true.
//
// Parameters is a live map shared by everyone holding the event: observers
// may read and write entries to pass auxiliary data along the chain.
type Event struct {
	id          uuid.UUID
	subject     any
	signal      string
	parameters  map[string]any
	processed   bool
	returnValue any
}

// New builds an event raised by subject. The signal is normalized to its
// string form, so New(s, 123) yields the signal "123".
func New(subject any, signal any, parameters ...map[string]any) (*Event, error) {
	if subject == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "subject is required")
	}
	if signal == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "signal is required")
	}
	name := normalizeSignal(signal)
	if name == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "signal must not be empty")
	}
	if len(parameters) > 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "expected at most one parameters map, got %d", len(parameters))
	}
	params := make(map[string]any)
	if len(parameters) == 1 {
		for k, v := range parameters[0] {
			params[k] = v
		}
	}
	return &Event{
		id:         uuid.New(),
		subject:    subject,
		signal:     name,
		parameters: params,
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(subject any, signal any, parameters ...map[string]any) *Event {
	e, err := New(subject, signal, parameters...)
	if err != nil {
		panic(err)
	}
	return e
}

func normalizeSignal(signal any) string {
	switch s := signal.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}

func (e *Event) ID() uuid.UUID {
	return e.id
}

func (e *Event) Subject() any {
	return e.subject
}

func (e *Event) Signal() string {
	return e.signal
}

// Parameters returns the live parameter map; writes are visible to the
// producer and to observers invoked later.
func (e *Event) Parameters() map[string]any {
	return e.parameters
}

func (e *Event) Get(key string) (any, bool) {
	v, ok := e.parameters[key]
	return v, ok
}

func (e *Event) Set(key string, value any) {
	e.parameters[key] = value
}

func (e *Event) Delete(key string) {
	delete(e.parameters, key)
}

func (e *Event) Processed() bool {
	return e.processed
}

// MarkProcessed flags the event as handled. It cannot be undone.
func (e *Event) MarkProcessed() bool {
	e.processed = true
	return e.processed
}

func (e *Event) ReturnValue() any {
	return e.returnValue
}

func (e *Event) SetReturnValue(value any) {
	e.returnValue = value
}

func (e *Event) String() string {
	return fmt.Sprintf("Event(%s, %s)", e.signal, e.id)
}
