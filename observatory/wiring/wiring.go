package wiring

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/krew-solutions/observatory-go/observatory/dispatcher"
	"github.com/krew-solutions/observatory-go/observatory/disposable"
	"github.com/krew-solutions/observatory-go/observatory/event"
	"github.com/krew-solutions/observatory-go/observatory/observer"
	"github.com/krew-solutions/observatory-go/observatory/option"
)

var _ disposable.Disposable = (*Wiring)(nil)

type connection struct {
	signal       string
	observer     observer.Observer
	subscription disposable.Disposable
}

// Wiring records the registrations made for one target so they can be
// undone. Only those registrations are removed: connections of the same
// observers made elsewhere stay in place.
type Wiring struct {
	subscriptions *disposable.CompositeDisposableImp
	connections   []connection
}

// Bind is a shorthand for a Binding with the default priority.
func Bind(signal string, o observer.Observer) Binding {
	return Binding{Signal: signal, Observer: o}
}

// BindWithPriority is a shorthand for a Binding with an explicit priority.
func BindWithPriority(signal string, o observer.Observer, priority int) Binding {
	return Binding{Signal: signal, Observer: o, Priority: option.Some(priority)}
}

// On binds a fire-and-forget method value.
func On(signal string, fn func(*event.Event)) Binding {
	return Bind(signal, observer.Func(fn))
}

// Wire connects every binding declared by target, in declaration order.
// Either all bindings get connected or none: every failure is reported and
// the registrations already made are rolled back.
func Wire(d *dispatcher.Dispatcher, target Bindable) (*Wiring, error) {
	if d == nil {
		return nil, ErrNoDispatcher
	}
	w := &Wiring{subscriptions: disposable.NewCompositeDisposable()}
	var result error
	for i, b := range target.Bindings() {
		priority := option.Map(b.Priority, func(p int) []int { return []int{p} }).UnwrapOrZero()
		subscription, err := d.Subscribe(b.Signal, b.Observer, priority...)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "binding #%d", i))
			continue
		}
		w.subscriptions.Add(subscription)
		w.connections = append(w.connections, connection{
			signal:       b.Signal,
			observer:     b.Observer,
			subscription: subscription,
		})
	}
	if result != nil {
		w.Dispose()
		return nil, result
	}
	return w, nil
}

// Build constructs a target and then wires it. Registration happens exactly
// once, after construct has returned.
func Build[T Bindable](d *dispatcher.Dispatcher, construct func() T) (T, *Wiring, error) {
	target := construct()
	w, err := Wire(d, target)
	if err != nil {
		var zero T
		return zero, nil, err
	}
	return target, w, nil
}

// Observers returns the connected observers for signal, in declaration order.
func (w *Wiring) Observers(signal string) []observer.Observer {
	var result []observer.Observer
	for _, c := range w.connections {
		if c.signal == signal {
			result = append(result, c.observer)
		}
	}
	return result
}

func (w *Wiring) Len() int {
	return len(w.connections)
}

// Disconnect undoes the registrations made for signal only and returns how
// many there were.
func (w *Wiring) Disconnect(signal string) int {
	removed := 0
	kept := w.connections[:0]
	for _, c := range w.connections {
		if c.signal != signal {
			kept = append(kept, c)
			continue
		}
		c.subscription.Dispose()
		removed++
	}
	w.connections = kept
	return removed
}

// Dispose undoes everything that was wired.
func (w *Wiring) Dispose() {
	w.subscriptions.Dispose()
	w.connections = nil
}
