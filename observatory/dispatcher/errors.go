package dispatcher

import (
	"errors"

	"github.com/krew-solutions/observatory-go/observatory/observer"
	"github.com/krew-solutions/observatory-go/observatory/stack"
)

var (
	ErrInvalidObserver = observer.ErrInvalidObserver
	ErrInvalidPriority = stack.ErrInvalidPriority
	ErrNilEvent        = errors.New("dispatcher: event is nil")
)
