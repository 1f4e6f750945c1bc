package core

import "errors"

// ErrNotRunning is returned by Send when called before Start or after Stop.
var ErrNotRunning = errors.New("core: interpreter is not running")

// ErrAlreadyRunning is returned by Start when called on a running interpreter.
var ErrAlreadyRunning = errors.New("core: interpreter already running")

// ErrQuiescenceViolation is surfaced on the error channel (and as the data
// of an internally-raised error.execution event) when a macrostep exceeds
// its configured step cap without reaching quiescence.
var ErrQuiescenceViolation = errors.New("core: macrostep exceeded maximum microsteps without quiescing")

// EventErrorExecution is the SCXML platform event name raised when
// executable content fails.
const EventErrorExecution = "error.execution"
