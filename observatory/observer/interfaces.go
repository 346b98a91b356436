package observer

import (
	"github.com/krew-solutions/observatory-go/observatory/event"
)

// Observer reacts to events of the signals it is connected to.
//
// Every notification protocol calls the same method. Notify and NotifyUntil
// pass a nil value; Filter passes the running value and expects the new one
// back. Notify ignores the result, NotifyUntil stops at the first truthy one.
//
// Observers are removed by identity, so the dynamic type must be comparable.
// Pointer implementations are the norm.
type Observer interface {
	Observe(e *event.Event, value any) (any, error)
}
