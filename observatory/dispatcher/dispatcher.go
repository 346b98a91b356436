package dispatcher

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/krew-solutions/observatory-go/observatory/disposable"
	"github.com/krew-solutions/observatory-go/observatory/event"
	"github.com/krew-solutions/observatory-go/observatory/observer"
	"github.com/krew-solutions/observatory-go/observatory/option"
	"github.com/krew-solutions/observatory-go/observatory/stack"
)

const (
	modeNotify      = "notify"
	modeNotifyUntil = "notify_until"
	modeFilter      = "filter"
)

// Dispatcher routes events to the observers connected to their signal.
//
// Observers run synchronously on the caller's goroutine, in ascending
// priority order. Each notification walks a snapshot of the observers taken
// when it starts, so observers may connect or disconnect (themselves
// included) without affecting the notification in progress.
//
// The registry is guarded by a lock that is never held while observers run,
// so a Dispatcher may be shared between goroutines. Dispatchers are
// independent of each other.
type Dispatcher struct {
	mu        sync.RWMutex
	id        uuid.UUID
	observers map[string]*stack.Stack
	log       zerolog.Logger
}

func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		id:        uuid.New(),
		observers: make(map[string]*stack.Stack),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.With().Str("dispatcher", d.id.String()).Logger()
	return d
}

func (d *Dispatcher) ID() uuid.UUID {
	return d.id
}

// Connect registers o for signal and returns o as the handle for Disconnect.
// Without a priority, observers run in the order they were connected.
func (d *Dispatcher) Connect(signal string, o observer.Observer, priority ...int) (observer.Observer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.observers[signal]
	if !ok {
		s = d.newStack(signal)
	}
	connected, err := s.Push(o, priority...)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to connect observer to %q", signal)
	}
	if !ok {
		d.observers[signal] = s
	}
	d.log.Debug().Str("signal", signal).Int("observers", s.Size()).Msg("observer connected")
	return connected, nil
}

// Subscribe connects o and returns a Disposable that removes this one
// registration. Other registrations of o, made before or after, are kept.
func (d *Dispatcher) Subscribe(signal string, o observer.Observer, priority ...int) (disposable.Disposable, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.observers[signal]
	if !ok {
		s = d.newStack(signal)
	}
	h, err := s.Add(o, priority...)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to subscribe observer to %q", signal)
	}
	if !ok {
		d.observers[signal] = s
	}
	d.log.Debug().Str("signal", signal).Int("observers", s.Size()).Msg("observer subscribed")
	return disposable.NewDisposable(func() {
		d.unsubscribe(signal, h)
	}), nil
}

func (d *Dispatcher) unsubscribe(signal string, h stack.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.observers[signal]
	if !ok {
		return
	}
	if s.Remove(h) {
		d.log.Debug().Str("signal", signal).Int("observers", s.Size()).Msg("observer unsubscribed")
	}
}

// Disconnect removes every registration of o for signal. It returns Nothing
// when o was not connected.
func (d *Dispatcher) Disconnect(signal string, o observer.Observer) option.Option[observer.Observer] {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.observers[signal]
	if !ok {
		return option.Nothing[observer.Observer]()
	}
	removed := s.Delete(o)
	if removed.IsSome() {
		d.log.Debug().Str("signal", signal).Int("observers", s.Size()).Msg("observer disconnected")
	}
	return removed
}

// Notify calls every observer of the event's signal. Results are ignored.
// The first observer error stops the notification and is returned.
func (d *Dispatcher) Notify(e *event.Event) (*event.Event, error) {
	if e == nil {
		return nil, ErrNilEvent
	}
	observers := d.snapshot(e.Signal())
	d.traceStart(modeNotify, e, len(observers))
	for i, o := range observers {
		if _, err := o.Observe(e, nil); err != nil {
			return e, d.observerFailed(modeNotify, e, i, err)
		}
	}
	d.traceEnd(modeNotify, e)
	return e, nil
}

// NotifyUntil calls the observers of the event's signal until one of them
// returns a truthy result. That observer marks the event processed and no
// further observer is called.
func (d *Dispatcher) NotifyUntil(e *event.Event) (*event.Event, error) {
	if e == nil {
		return nil, ErrNilEvent
	}
	observers := d.snapshot(e.Signal())
	d.traceStart(modeNotifyUntil, e, len(observers))
	for i, o := range observers {
		result, err := o.Observe(e, nil)
		if err != nil {
			return e, d.observerFailed(modeNotifyUntil, e, i, err)
		}
		if observer.Truthy(result) {
			e.MarkProcessed()
			d.log.Debug().
				Str("signal", e.Signal()).
				Stringer("event", e.ID()).
				Int("position", i).
				Msg("event processed")
			break
		}
	}
	d.traceEnd(modeNotifyUntil, e)
	return e, nil
}

// Filter passes value through the observers of the event's signal, each
// receiving the result of the previous one, and stores the final value as
// the event's return value. Without observers the value is returned as is.
func (d *Dispatcher) Filter(e *event.Event, value any) (*event.Event, error) {
	if e == nil {
		return nil, ErrNilEvent
	}
	observers := d.snapshot(e.Signal())
	d.traceStart(modeFilter, e, len(observers))
	for i, o := range observers {
		result, err := o.Observe(e, value)
		if err != nil {
			return e, d.observerFailed(modeFilter, e, i, err)
		}
		value = result
	}
	e.SetReturnValue(value)
	d.traceEnd(modeFilter, e)
	return e, nil
}

// Observers returns the observers of signal in the order they would be
// called.
func (d *Dispatcher) Observers(signal string) []observer.Observer {
	return d.snapshot(signal)
}

// Signals returns the signals that have ever had an observer, sorted.
func (d *Dispatcher) Signals() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]string, 0, len(d.observers))
	for signal := range d.observers {
		result = append(result, signal)
	}
	slices.Sort(result)
	return result
}

func (d *Dispatcher) Len(signal string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s, ok := d.observers[signal]
	if !ok {
		return 0
	}
	return s.Size()
}

func (d *Dispatcher) HasObservers(signal string) bool {
	return d.Len(signal) > 0
}

func (d *Dispatcher) newStack(signal string) *stack.Stack {
	return stack.New(stack.WithLogger(d.log.With().Str("signal", signal).Logger()))
}

func (d *Dispatcher) snapshot(signal string) []observer.Observer {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s, ok := d.observers[signal]
	if !ok {
		return nil
	}
	return s.Snapshot()
}

func (d *Dispatcher) traceStart(mode string, e *event.Event, count int) {
	d.log.Debug().
		Str("mode", mode).
		Str("signal", e.Signal()).
		Stringer("event", e.ID()).
		Int("observers", count).
		Msg("notification started")
}

func (d *Dispatcher) traceEnd(mode string, e *event.Event) {
	d.log.Debug().
		Str("mode", mode).
		Str("signal", e.Signal()).
		Stringer("event", e.ID()).
		Bool("processed", e.Processed()).
		Msg("notification finished")
}

func (d *Dispatcher) observerFailed(mode string, e *event.Event, position int, err error) error {
	d.log.Debug().
		Err(err).
		Str("mode", mode).
		Str("signal", e.Signal()).
		Stringer("event", e.ID()).
		Int("position", position).
		Msg("observer failed")
	return errors.Wrapf(err, "observer #%d of %q failed", position, e.Signal())
}
