package wiring

import "errors"

var ErrNoDispatcher = errors.New("wiring: no dispatcher")
