package extensibility

import (
	"fmt"
	"log/slog"
	"time"

	"statechartx/internal/core"
	"statechartx/internal/elements"
)

// ClosureContentExecutor runs content payloads that are Go closures over a
// shared Context, generalized from the teacher's DefaultActionRunner
// (internal/extensibility/actionrunner.go), which switched on
// func(*primitives.Context, primitives.Event) closures or bare strings.
// Strings are left to a caller-supplied registry; an unregistered one is a
// ContentError, exactly like the teacher's "action ID not registered".
type ClosureContentExecutor struct {
	Ctx      *Context
	Registry map[string]func(*Context, core.Event) error
}

// NewClosureContentExecutor builds an executor reading/writing ctx and
// dispatching registered string actions.
func NewClosureContentExecutor(ctx *Context) *ClosureContentExecutor {
	return &ClosureContentExecutor{Ctx: ctx, Registry: map[string]func(*Context, core.Event) error{}}
}

// Register names a closure so transitions/states can refer to it by string.
func (r *ClosureContentExecutor) Register(name string, fn func(*Context, core.Event) error) {
	r.Registry[name] = fn
}

// Execute implements core.ContentExecutor.
func (r *ClosureContentExecutor) Execute(content elements.ActionRef, event core.Event) error {
	switch a := content.(type) {
	case nil:
		return nil
	case func(*Context, core.Event) error:
		return a(r.Ctx, event)
	case func(*Context, core.Event):
		a(r.Ctx, event)
		return nil
	case string:
		fn, ok := r.Registry[a]
		if !ok {
			return fmt.Errorf("extensibility: action %q not registered", a)
		}
		return fn(r.Ctx, event)
	default:
		return core.NoopContentExecutor{}.Execute(content, event)
	}
}

// LoggingContentExecutor wraps a ContentExecutor with structured logging
// around each call, generalized from the teacher's LoggingActionRunner
// (which used log.Printf; this uses log/slog per the ambient logging
// stack's "structured diagnostics" rule).
type LoggingContentExecutor struct {
	Inner  core.ContentExecutor
	Logger *slog.Logger
}

func NewLoggingContentExecutor(inner core.ContentExecutor, logger *slog.Logger) *LoggingContentExecutor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingContentExecutor{Inner: inner, Logger: logger}
}

func (r *LoggingContentExecutor) Execute(content elements.ActionRef, event core.Event) error {
	start := time.Now()
	err := r.Inner.Execute(content, event)
	r.Logger.Debug("statechartx: content executed",
		"content", content, "event", event.Name, "duration", time.Since(start), "error", err)
	return err
}
