// Package logging builds the zerolog logger shared by the command line tools.
package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// Level maps a verbosity count to a log level. Quiet disables logging.
//
//	quiet  -> disabled
//	0      -> warn
//	1      -> info
//	2+     -> debug
func Level(verbosity int, quiet bool) zerolog.Level {
	switch {
	case quiet:
		return zerolog.Disabled
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// New returns a human readable logger writing to w.
func New(w io.Writer, verbosity int, quiet bool) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return zerolog.New(console).Level(Level(verbosity, quiet))
}
