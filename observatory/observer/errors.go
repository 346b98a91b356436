package observer

import "errors"

var ErrInvalidObserver = errors.New("observer: invalid observer")
