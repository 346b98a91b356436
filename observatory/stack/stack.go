package stack

import (
	"iter"
	"slices"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/krew-solutions/observatory-go/observatory/observer"
	"github.com/krew-solutions/observatory-go/observatory/option"
)

// Handle identifies one entry of a Stack, as opposed to every entry
// registered for the same observer.
type Handle uint64

type entry struct {
	handle   Handle
	observer observer.Observer
	priority int
}

// Stack keeps the observers of one signal sorted by ascending priority.
//
// Observers pushed without a priority get 1, 2, 3... from an internal
// counter, so they keep their registration order among themselves. The order
// of entries sharing a priority is unspecified.
//
// Stack is not safe for concurrent use.
type Stack struct {
	entries         []entry
	defaultPriority int
	lastHandle      Handle
	log             zerolog.Logger
}

type Option func(*Stack)

func WithLogger(log zerolog.Logger) Option {
	return func(s *Stack) {
		s.log = log
	}
}

func New(opts ...Option) *Stack {
	s := &Stack{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push adds o with the given priority, or the next default priority when none
// is given, and returns o so it can be used later with Delete.
func (s *Stack) Push(o observer.Observer, priority ...int) (observer.Observer, error) {
	if _, err := s.Add(o, priority...); err != nil {
		return nil, err
	}
	return o, nil
}

// Add is Push returning the handle of the new entry, for use with Remove.
func (s *Stack) Add(o observer.Observer, priority ...int) (Handle, error) {
	if err := observer.Validate(o); err != nil {
		return 0, err
	}
	if len(priority) > 1 {
		return 0, errors.Wrapf(ErrInvalidPriority, "expected a single priority, got %v", priority)
	}
	var p int
	if len(priority) == 1 {
		p = priority[0]
	} else {
		p = s.nextDefaultPriority()
	}
	s.lastHandle++
	s.entries = append(s.entries, entry{handle: s.lastHandle, observer: o, priority: p})
	s.sortByPriority()
	s.log.Debug().Int("priority", p).Int("size", len(s.entries)).Msg("observer pushed")
	return s.lastHandle, nil
}

// Remove deletes the single entry created under h. Other entries of the same
// observer stay in place.
func (s *Stack) Remove(h Handle) bool {
	i := slices.IndexFunc(s.entries, func(e entry) bool {
		return e.handle == h
	})
	if i < 0 {
		return false
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	s.log.Debug().Int("size", len(s.entries)).Msg("entry removed")
	return true
}

// Delete removes every entry registered for o. It returns Some(o) when
// anything was removed and Nothing otherwise.
func (s *Stack) Delete(o observer.Observer) option.Option[observer.Observer] {
	oldSize := len(s.entries)
	s.entries = slices.DeleteFunc(s.entries, func(e entry) bool {
		return observer.Same(e.observer, o)
	})
	if len(s.entries) == oldSize {
		return option.Nothing[observer.Observer]()
	}
	s.log.Debug().Int("removed", oldSize-len(s.entries)).Int("size", len(s.entries)).Msg("observer deleted")
	return option.Some(o)
}

func (s *Stack) Size() int {
	return len(s.entries)
}

func (s *Stack) Contains(o observer.Observer) bool {
	return slices.ContainsFunc(s.entries, func(e entry) bool {
		return observer.Same(e.observer, o)
	})
}

// All yields the observers in priority order. Each traversal walks the order
// as it was when the traversal started; pushes and deletes made meanwhile
// show up in the next traversal only.
func (s *Stack) All() iter.Seq[observer.Observer] {
	return func(yield func(observer.Observer) bool) {
		for _, o := range s.Snapshot() {
			if !yield(o) {
				return
			}
		}
	}
}

// Snapshot returns the observers in priority order.
func (s *Stack) Snapshot() []observer.Observer {
	result := make([]observer.Observer, len(s.entries))
	for i, e := range s.entries {
		result[i] = e.observer
	}
	return result
}

// Priorities returns the priorities in traversal order.
func (s *Stack) Priorities() []int {
	result := make([]int, len(s.entries))
	for i, e := range s.entries {
		result[i] = e.priority
	}
	return result
}

func (s *Stack) nextDefaultPriority() int {
	s.defaultPriority++
	return s.defaultPriority
}

func (s *Stack) sortByPriority() {
	sort.Slice(s.entries, func(i, j int) bool {
		return s.entries[i].priority < s.entries[j].priority
	})
}
