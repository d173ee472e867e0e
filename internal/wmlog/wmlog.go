// Package wmlog provides the process-wide structured logger, grounded on
// _examples/other_examples' cortile files, the pack's only window manager
// that logs through a structured library rather than fmt.Println.
package wmlog

import "github.com/sirupsen/logrus"

// Log is the package-level logger every component threads through. Logging
// setup is the one process-wide initialization the reactor allows (spec §9:
// "there is no global singleton" for window state — the logger is the
// explicitly carved-out exception).
var Log = logrus.New()

// SetLevel adjusts verbosity, typically from a -v CLI flag.
func SetLevel(level logrus.Level) {
	Log.SetLevel(level)
}
