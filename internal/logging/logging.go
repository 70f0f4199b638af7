// Package logging constructs the zerolog logger shared across the service.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a JSON logger writing to stdout with a service label and
// timestamps on every entry.
func New(service string) zerolog.Logger {
	return zerolog.New(os.Stdout).With().
		Str("service", service).
		Timestamp().
		Logger()
}
