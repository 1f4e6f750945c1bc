package core

import (
	"log/slog"
	"sync"

	"statechartx/internal/elements"
)

// Interpreter runs the SCXML-style microstep/macrostep algorithm over an
// elements.Tree. It is single-threaded and cooperative (spec.md §5):
// Send is the only operation safe to call concurrently from other
// goroutines; everything else — including host GuardEvaluator/
// ContentExecutor callbacks — runs on whichever goroutine is currently
// "driving" the interpreter, which may be the caller of Start or the
// caller of Send, depending on who claims the role first.
type Interpreter struct {
	tree *elements.Tree

	guardEval GuardEvaluator
	content   ContentExecutor
	logger    *slog.Logger

	maxMicrosteps int
	errCh         chan error

	mu            sync.Mutex
	running       bool
	driving       bool
	externalQueue []Event

	// The following fields are only ever touched by the driving goroutine.
	configuration elemSet
	internalQueue []Event
	history       *HistoryManager
}

// Option configures an Interpreter at construction time, mirroring the
// teacher's functional-options pattern (internal/core/options.go).
type Option func(*Interpreter)

// WithGuardEvaluator overrides the default identity GuardEvaluator.
func WithGuardEvaluator(g GuardEvaluator) Option {
	return func(ip *Interpreter) { ip.guardEval = g }
}

// WithContentExecutor overrides the default no-op ContentExecutor.
func WithContentExecutor(c ContentExecutor) Option {
	return func(ip *Interpreter) { ip.content = c }
}

// WithMaxMicrosteps overrides the per-macrostep step cap that guards
// against a QuiescenceViolation (spec.md §7). The default is 1000.
func WithMaxMicrosteps(n int) Option {
	return func(ip *Interpreter) { ip.maxMicrosteps = n }
}

// WithErrorBuffer sets the buffer size of the channel returned by Errors.
// The default is 16; Errors are dropped, never blocking the run loop, once
// the buffer is full.
func WithErrorBuffer(n int) Option {
	return func(ip *Interpreter) { ip.errCh = make(chan error, n) }
}

// WithLogger overrides the default slog.Default() logger used for
// diagnostics at error-channel drain points.
func WithLogger(l *slog.Logger) Option {
	return func(ip *Interpreter) { ip.logger = l }
}

// NewInterpreter builds an Interpreter over tree. tree must have been
// produced by elements.Builder.Build or elements.Config.Build, so it is
// already validated and immutable.
func NewInterpreter(tree *elements.Tree, opts ...Option) *Interpreter {
	ip := &Interpreter{
		tree:           tree,
		guardEval:      DefaultGuardEvaluator{},
		content:        NoopContentExecutor{},
		logger:         slog.Default(),
		maxMicrosteps:  1000,
		errCh:          make(chan error, 16),
		configuration: newElemSet(),
		history:       NewHistoryManager(),
	}
	for _, opt := range opts {
		opt(ip)
	}
	return ip
}

// Errors returns the channel the host may drain for GuardError/
// ContentError/QuiescenceViolation notifications (spec.md §7). Draining is
// optional; the channel is buffered and errors are dropped once full so a
// host that never reads it cannot stall the interpreter.
func (ip *Interpreter) Errors() <-chan error {
	return ip.errCh
}

// IsRunning reports whether the interpreter has been started and has not
// reached a top-level done state or been Stopped.
func (ip *Interpreter) IsRunning() bool {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	return ip.running
}

// Configuration returns the ids of every currently active state, in
// ascending document order.
func (ip *Interpreter) Configuration() []string {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	idxs := ip.configuration.Ascending(ip.tree)
	out := make([]string, len(idxs))
	for i, idx := range idxs {
		out[i] = ip.tree.Node(idx).ID
	}
	return out
}

// Start enters the tree's default initial configuration and stabilizes
// (draining eventless and internal events) before returning.
func (ip *Interpreter) Start() error {
	ip.mu.Lock()
	if ip.running {
		ip.mu.Unlock()
		return ErrAlreadyRunning
	}
	ip.running = true
	ip.driving = true
	ip.mu.Unlock()

	ip.enterInitial()
	ip.drive()
	return nil
}

// Stop halts the interpreter. IsRunning reports false afterward; any
// in-flight macrostep still completes its current microstep first, since
// Stop only takes the run-loop's own mutex between macrosteps.
func (ip *Interpreter) Stop() {
	ip.mu.Lock()
	ip.running = false
	ip.mu.Unlock()
}

// Send enqueues an external event and, if no goroutine is currently
// driving the interpreter, drives it to quiescence before returning. This
// is the one thread-safe ingress point described in spec.md §5.
func (ip *Interpreter) Send(name string, data any) error {
	ip.mu.Lock()
	if !ip.running {
		ip.mu.Unlock()
		return ErrNotRunning
	}
	ip.externalQueue = append(ip.externalQueue, NewExternalEvent(name, data))
	if ip.driving {
		ip.mu.Unlock()
		return nil
	}
	ip.driving = true
	ip.mu.Unlock()

	ip.drive()
	return nil
}

// SendInternal raises an event onto the internal queue. It must only be
// called from within a GuardEvaluator/ContentExecutor callback running on
// the driving goroutine (spec.md §5) — calling it from any other goroutine
// is a data race, exactly as SCXML's host-executable-content model assumes
// a single run-loop thread.
func (ip *Interpreter) SendInternal(name string, data any) {
	ip.internalQueue = append(ip.internalQueue, NewInternalEvent(name, data))
}

// drive runs macrosteps until both queues are empty or the interpreter
// stops, then releases the "driving" role so the next Send call (from any
// goroutine) picks it back up.
func (ip *Interpreter) drive() {
	for {
		ip.stabilize()

		ip.mu.Lock()
		if !ip.running || len(ip.externalQueue) == 0 {
			ip.driving = false
			ip.mu.Unlock()
			return
		}
		event := ip.externalQueue[0]
		ip.externalQueue = ip.externalQueue[1:]
		ip.mu.Unlock()

		if !ip.running {
			return
		}
		enabled := ip.resolveConflicts(ip.selectTransitions(event))
		if len(enabled) > 0 {
			ip.microstep(event, enabled)
		}
	}
}

// enterInitial synthesizes the initial transition into the root's default
// configuration, per spec.md §4.6's "starts at boot" macrostep.
func (ip *Interpreter) enterInitial() {
	root := ip.tree.Node(ip.tree.Root)
	initial := ip.tree.Node(root.InitialIndex)
	trans := initial.Transitions[0]
	ip.microstep(Event{}, []elements.Index{trans})
}

// stabilize drains eventless transitions, then internal events, repeating
// until neither produces an enabled transition set or the step cap is hit,
// per spec.md §4.6's priority order (eventless > internal > external).
func (ip *Interpreter) stabilize() {
	steps := 0
	for ip.running {
		if steps >= ip.maxMicrosteps {
			ip.reportError(ErrQuiescenceViolation)
			ip.internalQueue = append(ip.internalQueue, NewInternalEvent(EventErrorExecution, ErrQuiescenceViolation))
			return
		}

		if enabled := ip.resolveConflicts(ip.selectEventlessTransitions()); len(enabled) > 0 {
			ip.microstep(Event{}, enabled)
			steps++
			continue
		}

		if len(ip.internalQueue) > 0 {
			event := ip.internalQueue[0]
			ip.internalQueue = ip.internalQueue[1:]
			if enabled := ip.resolveConflicts(ip.selectTransitions(event)); len(enabled) > 0 {
				ip.microstep(event, enabled)
			}
			steps++
			continue
		}

		return
	}
}

func (ip *Interpreter) reportError(err error) {
	select {
	case ip.errCh <- err:
	default:
		ip.logger.Warn("statechartx: dropping error, error channel full", "error", err)
	}
}

// raiseContentError implements spec.md §7's ContentError policy: report on
// the error channel and enqueue error.execution on the internal queue, then
// continue the microstep rather than aborting it.
func (ip *Interpreter) raiseContentError(err error) {
	ip.reportError(err)
	ip.internalQueue = append(ip.internalQueue, NewInternalEvent(EventErrorExecution, err))
}
