package event

import (
	"errors"
	"testing"

	"github.com/icrowley/fake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleSubject struct {
	name string
}

type signalName int

func (s signalName) String() string {
	return "signal." + string(rune('a'+int(s)))
}

func TestNew_KeepsSubjectAndSignal(t *testing.T) {
	subject := &sampleSubject{name: "post"}
	e, err := New(subject, "post.publish")
	require.NoError(t, err)
	assert.Same(t, subject, e.Subject())
	assert.Equal(t, "post.publish", e.Signal())
}

func TestNew_RequiresSubjectAndSignal(t *testing.T) {
	_, err := New(nil, "signal")
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = New("observable", nil)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = New("observable", "")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestNew_RejectsSeveralParameterMaps(t *testing.T) {
	_, err := New("observable", "signal", map[string]any{}, map[string]any{})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestNew_DoesNotRequireParameters(t *testing.T) {
	e, err := New("foo", "bar")
	require.NoError(t, err)
	assert.NotNil(t, e.Parameters())
	assert.Empty(t, e.Parameters())
}

func TestNew_UsesSignalAsString(t *testing.T) {
	e := MustNew("foo", 123)
	assert.Equal(t, "123", e.Signal())

	e = MustNew("foo", signalName(1))
	assert.Equal(t, "signal.b", e.Signal())
}

func TestNew_CopiesParameters(t *testing.T) {
	params := map[string]any{"foo": "bar"}
	e := MustNew("observable", "signal", params)
	e.Set("foo", "baz")
	assert.Equal(t, "bar", params["foo"])
	v, ok := e.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, "baz", v)
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNew(nil, "signal")
	})
}

func TestEvent_WorksLikeAMap(t *testing.T) {
	title := fake.Sentence()
	e := MustNew("observable", "signal", map[string]any{"title": title})

	v, ok := e.Get("title")
	assert.True(t, ok)
	assert.Equal(t, title, v)

	e.Parameters()["extra"] = 1
	v, ok = e.Get("extra")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	e.Delete("extra")
	_, ok = e.Get("extra")
	assert.False(t, ok)
}

func TestEvent_IsNotProcessedByDefault(t *testing.T) {
	e := MustNew("observable", "signal")
	assert.False(t, e.Processed())
}

func TestEvent_MarkProcessed(t *testing.T) {
	e := MustNew("observable", "signal")
	assert.True(t, e.MarkProcessed())
	assert.True(t, e.Processed())
	assert.True(t, e.MarkProcessed())
	assert.True(t, e.Processed())
}

func TestEvent_ReturnValue(t *testing.T) {
	e := MustNew("observable", "signal")
	assert.Nil(t, e.ReturnValue())
	e.SetReturnValue("foo")
	assert.Equal(t, "foo", e.ReturnValue())
}

func TestEvent_HasDistinctIDs(t *testing.T) {
	e1 := MustNew("observable", "signal")
	e2 := MustNew("observable", "signal")
	assert.NotEqual(t, e1.ID(), e2.ID())
	assert.Contains(t, e1.String(), "signal")
	assert.Contains(t, e1.String(), e1.ID().String())
}
