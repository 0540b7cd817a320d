// Package logging supplies the one structured logger every observable
// component in the node (storage, CLI) writes through, instead
// of ad hoc fmt.Printf/log.Printf calls. The validated core packages
// never import this — they are pure and silent by design.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger tagged with component, writing human-readable
// output to stderr during development.
func New(component string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}
