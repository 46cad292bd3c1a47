// SPDX-License-Identifier: MIT

// Package logger provides the configurable logger shared by the decomp
// components.
//
// The root logger uses github.com/rs/zerolog with a console writer on
// stderr. It is silenced automatically under `go test` so solver traces do
// not pollute test output; call Set or SetOutput to override.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	logger = zerolog.New(output).With().Timestamp().Logger().Level(zerolog.InfoLevel)

	if strings.HasSuffix(os.Args[0], ".test") {
		logger = zerolog.Nop()
	}
}

// SetOutput changes the output of the global logger.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// Set replaces the global logger.
func Set(l zerolog.Logger) {
	logger = l
}

// Disable disables logging.
func Disable() {
	logger = zerolog.Nop()
}

// Logger returns the global logger; components derive sub-loggers from it.
func Logger() zerolog.Logger {
	return logger
}
