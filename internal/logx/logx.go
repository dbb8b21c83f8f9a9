// Package logx builds the process-wide zerolog logger. Grounded on
// freeeve-chessgraph's internal/logx package: a console writer when
// attached to a terminal, structured JSON otherwise, both to stderr so
// stdout stays reserved for protocol output (info/bestmove lines).
package logx

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New returns a logger configured for the engine's dual audience:
// humans watching a terminal and the protocol loop's own stdout,
// which must never be polluted by log lines.
func New() zerolog.Logger {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
