package logger

import corelogger "github.com/kilianp07/hems/core/logger"

// Logger mirrors the core logger interface for convenience.
type Logger = corelogger.Logger

// New returns a Logger for the given component. The environment is
// detected via the HEMS_ENV variable.
func New(component string) Logger {
	return NewZerologLogger(component)
}
