package extensibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"statechartx/internal/core"
)

func TestGojaGuardEvaluator_Expression(t *testing.T) {
	ctx := NewContext()
	ctx.Set("temp", 35.0)
	e := NewGojaGuardEvaluator(ctx)

	ok, err := e.Eval("ctx.get('temp') > 30", core.NewExternalEvent("test", nil))
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.Eval("ctx.get('temp') < 30", core.NewExternalEvent("test", nil))
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestGojaGuardEvaluator_EventAccess(t *testing.T) {
	ctx := NewContext()
	e := NewGojaGuardEvaluator(ctx)

	ok, err := e.Eval(`event.name === "go"`, core.NewExternalEvent("go", nil))
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestGojaGuardEvaluator_NonStringDelegatesToDefault(t *testing.T) {
	ctx := NewContext()
	e := NewGojaGuardEvaluator(ctx)
	called := false
	guard := func(core.Event) bool {
		called = true
		return true
	}
	ok, err := e.Eval(guard, core.NewExternalEvent("test", nil))
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, called, "guard func not called")
}

func TestGojaGuardEvaluator_SyntaxError(t *testing.T) {
	ctx := NewContext()
	e := NewGojaGuardEvaluator(ctx)
	_, err := e.Eval("((", core.NewExternalEvent("test", nil))
	assert.Error(t, err)
}

func TestGojaContentExecutor_MutatesContext(t *testing.T) {
	ctx := NewContext()
	ctx.Set("count", 1.0)
	e := NewGojaContentExecutor(ctx)

	err := e.Execute(`ctx.set("count", ctx.get("count") + 1)`, core.NewExternalEvent("tick", nil))
	assert.NoError(t, err)

	v, ok := ctx.Get("count")
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
}

func TestGojaContentExecutor_NonStringDelegatesToNoop(t *testing.T) {
	ctx := NewContext()
	e := NewGojaContentExecutor(ctx)
	called := false
	err := e.Execute(func() { called = true }, core.NewExternalEvent("test", nil))
	assert.NoError(t, err)
	assert.True(t, called, "func content not called")
}

func TestGojaContentExecutor_RuntimeError(t *testing.T) {
	ctx := NewContext()
	e := NewGojaContentExecutor(ctx)
	err := e.Execute(`throw new Error("boom")`, core.NewExternalEvent("test", nil))
	assert.Error(t, err)
}
