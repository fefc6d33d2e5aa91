// Package logger exposes the package-level structured logger shared by the
// constraint, domain, msm and groth16 packages.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the process-wide structured logger. Components should not build
// their own zerolog.Logger; they should derive a sub-logger from this one
// with .With().Str(...) so a single GROTH16_LOG_LEVEL controls all of them.
var Logger zerolog.Logger

func init() {
	lvl := zerolog.InfoLevel
	if s := os.Getenv("GROTH16_LOG_LEVEL"); s != "" {
		if parsed, err := zerolog.ParseLevel(s); err == nil {
			lvl = parsed
		}
	}
	Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// SetLevel overrides the active log level, mainly used by tests that want
// quiet output regardless of the environment.
func SetLevel(lvl zerolog.Level) {
	Logger = Logger.Level(lvl)
}
