package event

import "errors"

var ErrInvalidArgument = errors.New("event: invalid argument")
