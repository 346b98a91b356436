package observable

import (
	"github.com/krew-solutions/observatory-go/observatory/dispatcher"
	"github.com/krew-solutions/observatory-go/observatory/event"
)

// Observable raises events naming its subject. Embed it in the type that
// produces events and call Bind with the outer value once it is built:
//
//	type Post struct {
//		observable.Observable
//		title string
//	}
//
//	func NewPost(title string, d *dispatcher.Dispatcher) *Post {
//		p := &Post{title: title}
//		p.Observable = observable.New(d, nil)
//		p.Bind(p)
//		return p
//	}
type Observable struct {
	dispatcher *dispatcher.Dispatcher
	subject    any
}

// New returns an Observable raising events through d. A nil subject makes the
// Observable its own subject until Bind is called.
func New(d *dispatcher.Dispatcher, subject any) Observable {
	return Observable{dispatcher: d, subject: subject}
}

func (o *Observable) Bind(subject any) {
	o.subject = subject
}

func (o *Observable) Dispatcher() *dispatcher.Dispatcher {
	return o.dispatcher
}

func (o *Observable) Subject() any {
	if o.subject == nil {
		return o
	}
	return o.subject
}

// Notify raises signal and calls every observer.
func (o *Observable) Notify(signal any, parameters ...map[string]any) (*event.Event, error) {
	e, err := o.event(signal, parameters)
	if err != nil {
		return nil, err
	}
	return o.dispatcher.Notify(e)
}

// NotifyUntil raises signal until an observer handles it. Check Processed on
// the returned event.
func (o *Observable) NotifyUntil(signal any, parameters ...map[string]any) (*event.Event, error) {
	e, err := o.event(signal, parameters)
	if err != nil {
		return nil, err
	}
	return o.dispatcher.NotifyUntil(e)
}

// Filter raises signal to let observers transform value. The result is the
// returned event's ReturnValue.
func (o *Observable) Filter(signal any, value any, parameters ...map[string]any) (*event.Event, error) {
	e, err := o.event(signal, parameters)
	if err != nil {
		return nil, err
	}
	return o.dispatcher.Filter(e, value)
}

func (o *Observable) event(signal any, parameters []map[string]any) (*event.Event, error) {
	if o.dispatcher == nil {
		return nil, ErrNoDispatcher
	}
	return event.New(o.Subject(), signal, parameters...)
}
