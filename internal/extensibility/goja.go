package extensibility

import (
	"fmt"

	"github.com/dop251/goja"

	"statechartx/internal/core"
	"statechartx/internal/elements"
)

// GojaGuardEvaluator evaluates a string guard payload as a JavaScript
// expression, giving hosts a real expression language instead of
// ExpressionGuardEvaluator's "key op value" grammar when they need one.
// "event" and "ctx" (this evaluator's Context, read/write) are bound as
// globals before each evaluation; a fresh goja.Runtime is used per call so
// guards cannot leak state into one another outside of ctx.
type GojaGuardEvaluator struct {
	Ctx *Context
}

// NewGojaGuardEvaluator builds an evaluator reading/writing ctx.
func NewGojaGuardEvaluator(ctx *Context) *GojaGuardEvaluator {
	return &GojaGuardEvaluator{Ctx: ctx}
}

// Eval implements core.GuardEvaluator. A non-string guard payload defers to
// core.DefaultGuardEvaluator, the same "don't fail closed on a handwritten
// guard" rule ExpressionGuardEvaluator follows.
func (e *GojaGuardEvaluator) Eval(guard elements.GuardRef, event core.Event) (bool, error) {
	expr, ok := guard.(string)
	if !ok {
		return core.DefaultGuardEvaluator{}.Eval(guard, event)
	}

	vm := goja.New()
	bindRuntime(vm, e.Ctx, event)

	v, err := vm.RunString(expr)
	if err != nil {
		return false, fmt.Errorf("extensibility: goja guard %q: %w", expr, err)
	}
	return v.ToBoolean(), nil
}

// GojaContentExecutor runs a string content payload as a JavaScript
// statement block, generalized the same way GojaGuardEvaluator generalizes
// ExpressionGuardEvaluator: a richer alternative to ClosureContentExecutor's
// registry lookup for hosts that want to author content as script rather
// than compiled Go closures.
type GojaContentExecutor struct {
	Ctx *Context
}

// NewGojaContentExecutor builds an executor reading/writing ctx.
func NewGojaContentExecutor(ctx *Context) *GojaContentExecutor {
	return &GojaContentExecutor{Ctx: ctx}
}

// Execute implements core.ContentExecutor. A non-string payload defers to
// core.NoopContentExecutor, so a GojaContentExecutor can be the sole
// executor on an interpreter mixing scripted and plain-Go-closure content.
func (e *GojaContentExecutor) Execute(content elements.ActionRef, event core.Event) error {
	script, ok := content.(string)
	if !ok {
		return core.NoopContentExecutor{}.Execute(content, event)
	}

	vm := goja.New()
	bindRuntime(vm, e.Ctx, event)

	if _, err := vm.RunString(script); err != nil {
		return fmt.Errorf("extensibility: goja content %q: %w", script, err)
	}
	return nil
}

// bindRuntime exposes the firing event and a get/set view of ctx to a
// goja.Runtime as the "event" and "ctx" globals.
func bindRuntime(vm *goja.Runtime, ctx *Context, event core.Event) {
	_ = vm.Set("event", map[string]any{"name": event.Name, "data": event.Data})
	_ = vm.Set("ctx", map[string]any{
		"get": func(key string) any {
			v, _ := ctx.Get(key)
			return v
		},
		"set": func(key string, val any) {
			// goja exports integral JS numbers as int64; store every JS
			// number as float64 so Context.GetFloat64 reads it.
			if i, ok := val.(int64); ok {
				val = float64(i)
			}
			ctx.Set(key, val)
		},
	})
}
