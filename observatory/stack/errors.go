package stack

import (
	"errors"

	"github.com/krew-solutions/observatory-go/observatory/observer"
)

var (
	ErrInvalidObserver = observer.ErrInvalidObserver
	ErrInvalidPriority = errors.New("stack: invalid priority")
)
