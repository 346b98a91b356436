package observer

import (
	"github.com/krew-solutions/observatory-go/observatory/event"
)

// The adapters below return a fresh pointer on every call, so each call
// produces a distinct identity that can later be disconnected.

type funcObserver struct {
	fn func(*event.Event)
}

func (o *funcObserver) Observe(e *event.Event, _ any) (any, error) {
	o.fn(e)
	return nil, nil
}

// Func adapts a fire-and-forget callback.
func Func(fn func(*event.Event)) Observer {
	if fn == nil {
		return nil
	}
	return &funcObserver{fn: fn}
}

type funcEObserver struct {
	fn func(*event.Event) error
}

func (o *funcEObserver) Observe(e *event.Event, _ any) (any, error) {
	return nil, o.fn(e)
}

// FuncE adapts a fire-and-forget callback that may fail.
func FuncE(fn func(*event.Event) error) Observer {
	if fn == nil {
		return nil
	}
	return &funcEObserver{fn: fn}
}

type responderObserver struct {
	fn func(*event.Event) bool
}

func (o *responderObserver) Observe(e *event.Event, _ any) (any, error) {
	return o.fn(e), nil
}

// Responder adapts a callback that answers NotifyUntil by returning true.
func Responder(fn func(*event.Event) bool) Observer {
	if fn == nil {
		return nil
	}
	return &responderObserver{fn: fn}
}

type responderEObserver struct {
	fn func(*event.Event) (any, error)
}

func (o *responderEObserver) Observe(e *event.Event, _ any) (any, error) {
	return o.fn(e)
}

// ResponderE adapts a callback whose result is judged with Truthy.
func ResponderE(fn func(*event.Event) (any, error)) Observer {
	if fn == nil {
		return nil
	}
	return &responderEObserver{fn: fn}
}

type filterObserver struct {
	fn func(*event.Event, any) any
}

func (o *filterObserver) Observe(e *event.Event, value any) (any, error) {
	return o.fn(e, value), nil
}

// Filter adapts a value transformer.
func Filter(fn func(e *event.Event, value any) any) Observer {
	if fn == nil {
		return nil
	}
	return &filterObserver{fn: fn}
}

type filterEObserver struct {
	fn func(*event.Event, any) (any, error)
}

func (o *filterEObserver) Observe(e *event.Event, value any) (any, error) {
	return o.fn(e, value)
}

// FilterE adapts a value transformer that may fail.
func FilterE(fn func(e *event.Event, value any) (any, error)) Observer {
	if fn == nil {
		return nil
	}
	return &filterEObserver{fn: fn}
}
