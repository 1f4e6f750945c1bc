// Package extensibility holds the swappable host hooks named in spec.md §6:
// GuardEvaluator and ContentExecutor implementations, and the EventSource
// pattern for pumping external events into a core.Interpreter. None of this
// is imported by internal/core; every type here plugs into it from outside
// through the two small interfaces core.GuardEvaluator and
// core.ContentExecutor (internal/core/hooks.go).
package extensibility

import "sync"

// Context is the thread-safe extended-state store guard/content adapters
// read and write: sync.Map-backed for the same lock-free-read reason the
// teacher's internal/primitives.Context was, but carrying typed accessors
// its callers actually need, since ExpressionGuardEvaluator would otherwise
// repeat its own "load, assert, fall back on mismatch" dance against the raw
// any-typed Get/Set. GojaGuardEvaluator/GojaContentExecutor (goja.go) bind
// the generic Get/Set to their scripts instead. internal/core has no notion of a shared mutable store
// itself — this is purely an adapter-side convenience for hosts that want
// one, matching spec.md §12's "no <data> datamodel" non-goal (the
// datamodel lives outside internal/core, not in it).
type Context struct {
	data sync.Map
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{}
}

func (c *Context) Get(key string) (any, bool) {
	return c.data.Load(key)
}

func (c *Context) Set(key string, val any) {
	c.data.Store(key, val)
}

func (c *Context) Delete(key string) {
	c.data.Delete(key)
}

// GetFloat64 reads key as a float64, reporting false if it is absent or
// holds some other type. Numeric guard comparisons (ExpressionGuardEvaluator's
// ">"/"<") go through this instead of asserting
// v.(float64) inline at every call site.
func (c *Context) GetFloat64(key string) (float64, bool) {
	v, ok := c.data.Load(key)
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// GetString reads key as a string, reporting false if it is absent or
// holds some other type.
func (c *Context) GetString(key string) (string, bool) {
	v, ok := c.data.Load(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetBool reads key as a bool, reporting false if it is absent or holds
// some other type.
func (c *Context) GetBool(key string) (bool, bool) {
	v, ok := c.data.Load(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Snapshot returns a serializable copy of the store, for a Persister.
func (c *Context) Snapshot() map[string]any {
	snap := map[string]any{}
	c.data.Range(func(k, v any) bool {
		snap[k.(string)] = v
		return true
	})
	return snap
}

// Restore replaces the store's contents from a snapshot.
func (c *Context) Restore(snap map[string]any) {
	c.data.Range(func(k, v any) bool {
		c.data.Delete(k)
		return true
	})
	for k, v := range snap {
		c.data.Store(k, v)
	}
}
