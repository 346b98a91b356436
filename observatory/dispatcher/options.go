package dispatcher

import (
	"github.com/rs/zerolog"
)

type Option func(*Dispatcher)

// WithLogger makes the dispatcher trace registrations and notifications at
// debug level.
func WithLogger(log zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.log = log
	}
}
