//==============================================================================
// logger: configurable package logger
//==============================================================================

// The package logger is a single zerolog.Logger shared by the solver, the
// MPS reader, and the batch runner. The default writes human-readable output
// to stderr; tests and embedding applications may replace or disable it.

package mip

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var pkgLogger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	pkgLogger = zerolog.New(output).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// Logger returns the package logger.
func Logger() zerolog.Logger {
	return pkgLogger
}

// SetLogger replaces the package logger, for callers who want to route
// solver output into their own logging setup.
func SetLogger(l zerolog.Logger) {
	pkgLogger = l
}

// SetLogOutput changes the output writer of the package logger.
func SetLogOutput(w io.Writer) {
	pkgLogger = pkgLogger.Output(w)
}

// DisableLogger silences all package logging, including MPS reader warnings.
func DisableLogger() {
	pkgLogger = zerolog.Nop()
}
