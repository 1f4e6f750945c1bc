package extensibility

import (
	"strconv"
	"strings"

	"statechartx/internal/core"
	"statechartx/internal/elements"
)

// ExpressionGuardEvaluator evaluates simple "key op value" string guards
// against a shared Context, generalized from the teacher's
// internal/extensibility/guardevaluator.go of the same name (itself
// unchanged in approach, only retargeted from primitives.Context/Event to
// this package's Context and core.Event).
type ExpressionGuardEvaluator struct {
	Ctx *Context
}

// NewExpressionGuardEvaluator builds an evaluator reading from ctx.
func NewExpressionGuardEvaluator(ctx *Context) *ExpressionGuardEvaluator {
	return &ExpressionGuardEvaluator{Ctx: ctx}
}

// Eval implements core.GuardEvaluator. A guard payload that isn't a string
// (e.g. a Go closure) is handed to core.DefaultGuardEvaluator, which calls
// closures and passes any other payload, instead of failing closed, so this
// evaluator can be layered without surprising handwritten guards.
func (e *ExpressionGuardEvaluator) Eval(guard elements.GuardRef, event core.Event) (bool, error) {
	if guard == nil {
		return true, nil
	}
	str, ok := guard.(string)
	if !ok {
		return core.DefaultGuardEvaluator{}.Eval(guard, event)
	}
	return e.evalExpr(str, event), nil
}

func (e *ExpressionGuardEvaluator) evalExpr(str string, event core.Event) bool {
	parts := strings.Fields(str)
	if len(parts) != 3 {
		return false
	}
	key, op, valStr := parts[0], parts[1], parts[2]

	v, hasKey := e.Ctx.Get(key)
	if !hasKey {
		return false
	}

	switch op {
	case "==":
		switch valStr {
		case "true":
			return v == true
		case "false":
			return v == false
		case "nil":
			return v == nil
		default:
			if fVal, err := strconv.ParseFloat(valStr, 64); err == nil {
				if f, ok := e.Ctx.GetFloat64(key); ok {
					return f == fVal
				}
			}
			if s, ok := e.Ctx.GetString(key); ok {
				return s == valStr
			}
			return false
		}
	case "!=":
		return !e.evalExpr(key+" == "+valStr, event)
	case ">":
		return e.compareFloat(key, valStr, func(a, b float64) bool { return a > b })
	case "<":
		return e.compareFloat(key, valStr, func(a, b float64) bool { return a < b })
	default:
		return false
	}
}

func (e *ExpressionGuardEvaluator) compareFloat(key, valStr string, cmp func(a, b float64) bool) bool {
	fVal, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return false
	}
	f, ok := e.Ctx.GetFloat64(key)
	if !ok {
		return false
	}
	return cmp(f, fVal)
}
