package wiring

import (
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krew-solutions/observatory-go/observatory/dispatcher"
	"github.com/krew-solutions/observatory-go/observatory/event"
	"github.com/krew-solutions/observatory-go/observatory/observer"
)

type spy struct {
	log []string
}

func (s *spy) onPublish(e *event.Event) {
	s.log = append(s.log, "publish")
}

func (s *spy) onTitle(_ *event.Event, value any) any {
	return strings.ToUpper(value.(string))
}

func (s *spy) onSave(e *event.Event) bool {
	s.log = append(s.log, "save")
	return true
}

func (s *spy) Bindings() []Binding {
	return []Binding{
		On("post.publish", s.onPublish),
		Bind("post.title", observer.Filter(s.onTitle)),
		BindWithPriority("post.save", observer.Responder(s.onSave), -1),
	}
}

type brokenSpy struct {
	bindings []Binding
}

func (s *brokenSpy) Bindings() []Binding {
	return s.bindings
}

func TestWire_ConnectsEveryBinding(t *testing.T) {
	d := dispatcher.New()
	s := &spy{}
	w, err := Wire(d, s)
	require.NoError(t, err)
	assert.Equal(t, 3, w.Len())
	assert.Equal(t, []string{"post.publish", "post.save", "post.title"}, d.Signals())

	_, err = d.Notify(event.MustNew("post", "post.publish"))
	require.NoError(t, err)
	assert.Equal(t, []string{"publish"}, s.log)

	e, err := d.Filter(event.MustNew("post", "post.title"), "title")
	require.NoError(t, err)
	assert.Equal(t, "TITLE", e.ReturnValue())

	e, err = d.NotifyUntil(event.MustNew("post", "post.save"))
	require.NoError(t, err)
	assert.True(t, e.Processed())
}

func TestWire_UsesBindingPriority(t *testing.T) {
	d := dispatcher.New()
	first := observer.Responder(func(*event.Event) bool { return false })
	_, _ = d.Connect("post.save", first)
	s := &spy{}
	w, err := Wire(d, s)
	require.NoError(t, err)
	observers := d.Observers("post.save")
	require.Len(t, observers, 2)
	assert.Equal(t, w.Observers("post.save")[0], observers[0])
	assert.Equal(t, first, observers[1])
}

func TestWire_ReportsEveryInvalidBinding(t *testing.T) {
	d := dispatcher.New()
	valid := observer.Func(func(*event.Event) {})
	target := &brokenSpy{bindings: []Binding{
		Bind("a", nil),
		Bind("b", valid),
		On("c", nil),
	}}
	w, err := Wire(d, target)
	assert.Nil(t, w)
	require.Error(t, err)
	assert.True(t, errors.Is(err, observer.ErrInvalidObserver))

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 2)
	assert.Contains(t, err.Error(), "binding #0")
	assert.Contains(t, err.Error(), "binding #2")

	assert.False(t, d.HasObservers("b"))
}

func TestWire_RollbackKeepsEarlierRegistrations(t *testing.T) {
	d := dispatcher.New()
	shared := observer.Func(func(*event.Event) {})
	_, err := d.Connect("a", shared)
	require.NoError(t, err)

	target := &brokenSpy{bindings: []Binding{
		Bind("a", shared),
		Bind("b", nil),
	}}
	w, err := Wire(d, target)
	assert.Nil(t, w)
	assert.True(t, errors.Is(err, observer.ErrInvalidObserver))
	assert.Equal(t, 1, d.Len("a"))
	assert.Equal(t, []observer.Observer{shared}, d.Observers("a"))
}

func TestWiring_DisposeKeepsEarlierRegistrations(t *testing.T) {
	d := dispatcher.New()
	shared := observer.Func(func(*event.Event) {})
	_, err := d.Connect("a", shared)
	require.NoError(t, err)

	w, err := Wire(d, &brokenSpy{bindings: []Binding{BindWithPriority("a", shared, -1)}})
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len("a"))

	w.Dispose()
	assert.Equal(t, 1, d.Len("a"))
	assert.Equal(t, 0, w.Len())
}

func TestWire_RequiresDispatcher(t *testing.T) {
	w, err := Wire(nil, &spy{})
	assert.Nil(t, w)
	assert.True(t, errors.Is(err, ErrNoDispatcher))
}

func TestBuild_WiresAfterConstruction(t *testing.T) {
	d := dispatcher.New()
	constructed := false
	s, w, err := Build(d, func() *spy {
		assert.False(t, d.HasObservers("post.publish"))
		constructed = true
		return &spy{}
	})
	require.NoError(t, err)
	assert.True(t, constructed)
	assert.NotNil(t, s)
	assert.Equal(t, 3, w.Len())
	assert.True(t, d.HasObservers("post.publish"))
}

func TestBuild_ReturnsErrorOnInvalidBinding(t *testing.T) {
	d := dispatcher.New()
	s, w, err := Build(d, func() *brokenSpy {
		return &brokenSpy{bindings: []Binding{Bind("a", nil)}}
	})
	assert.Nil(t, s)
	assert.Nil(t, w)
	assert.True(t, errors.Is(err, observer.ErrInvalidObserver))
}

func TestWiring_Dispose(t *testing.T) {
	d := dispatcher.New()
	s := &spy{}
	w, err := Wire(d, s)
	require.NoError(t, err)
	w.Dispose()
	w.Dispose()
	assert.Equal(t, 0, w.Len())
	_, _ = d.Notify(event.MustNew("post", "post.publish"))
	assert.Empty(t, s.log)
	assert.False(t, d.HasObservers("post.title"))
}

func TestWiring_DisconnectSignal(t *testing.T) {
	d := dispatcher.New()
	s := &spy{}
	w, err := Wire(d, s)
	require.NoError(t, err)
	assert.Equal(t, 1, w.Disconnect("post.title"))
	assert.Equal(t, 0, w.Disconnect("post.title"))
	assert.Equal(t, 2, w.Len())
	assert.Empty(t, w.Observers("post.title"))

	e, _ := d.Filter(event.MustNew("post", "post.title"), "title")
	assert.Equal(t, "title", e.ReturnValue())
	assert.True(t, d.HasObservers("post.publish"))
}
