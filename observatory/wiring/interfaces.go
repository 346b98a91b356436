package wiring

import (
	"github.com/krew-solutions/observatory-go/observatory/observer"
	"github.com/krew-solutions/observatory-go/observatory/option"
)

// Binding declares that Observer reacts to Signal.
type Binding struct {
	Signal   string
	Observer observer.Observer
	Priority option.Option[int]
}

// Bindable is implemented by types that declare the observers they want
// connected once they are constructed.
type Bindable interface {
	Bindings() []Binding
}
