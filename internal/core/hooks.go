package core

import "statechartx/internal/elements"

// GuardEvaluator decides whether a transition's opaque guard payload allows
// the transition to fire. It is one of the two host hooks named in
// spec.md §6; internal/core never interprets guard payloads itself.
type GuardEvaluator interface {
	Eval(guard elements.GuardRef, event Event) (bool, error)
}

// ContentExecutor runs a state's entry/exit content or a transition's
// content. A non-nil error is a ContentError: the interpreter enqueues
// error.execution on the internal queue and continues (spec.md §7).
type ContentExecutor interface {
	Execute(content elements.ActionRef, event Event) error
}

// DefaultGuardEvaluator implements the "absent hosts supply identity
// guards" rule from spec.md §6: a nil guard always passes; a func(Event)
// bool is called directly; anything else also passes, since internal/core
// has no opinion on what a guard payload should look like.
type DefaultGuardEvaluator struct{}

func (DefaultGuardEvaluator) Eval(guard elements.GuardRef, event Event) (bool, error) {
	switch g := guard.(type) {
	case nil:
		return true, nil
	case func(Event) bool:
		return g(event), nil
	case func() bool:
		return g(), nil
	default:
		return true, nil
	}
}

// NoopContentExecutor implements the "absent hosts supply ... no-op
// content" rule from spec.md §6: Go closures (func(Event) error,
// func() error, func()) are called; every other payload is a no-op.
type NoopContentExecutor struct{}

func (NoopContentExecutor) Execute(content elements.ActionRef, event Event) error {
	switch c := content.(type) {
	case nil:
		return nil
	case func(Event) error:
		return c(event)
	case func() error:
		return c()
	case func():
		c()
		return nil
	default:
		return nil
	}
}
