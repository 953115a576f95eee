package calc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlecalc/littlecalc/pkg/types"
)

func newTestEngine() *Engine {
	return NewWithRegistry(newTestRegistry())
}

func TestEngineSubmitLiteral(t *testing.T) {
	e := newTestEngine()

	out := e.Submit("41")
	require.True(t, out.OK, "unexpected error: %v", out.Err)
	assert.Equal(t, []types.Value{numVal(41)}, out.Stack)
}

func TestEngineSubmitOperation(t *testing.T) {
	e := newTestEngine()
	e.Submit("1")
	e.Submit("2")

	out := e.Submit("add")
	require.True(t, out.OK, "unexpected error: %v", out.Err)
	assert.Equal(t, []types.Value{numVal(3)}, out.Stack)
}

func TestEngineUnknownTokenEmptyStack(t *testing.T) {
	e := newTestEngine()

	out := e.Submit("frobnicate")
	require.False(t, out.OK)
	assert.Equal(t, "UnknownOperationError", out.ErrorKind())
	assert.Empty(t, out.Stack, "stack must stay empty")
}

func TestEngineFailureLeavesStackUnchanged(t *testing.T) {
	e := newTestEngine()
	e.Submit("1")
	before := e.Stack().Snapshot()

	for _, token := range []string{"add", "frobnicate", "nope?"} {
		out := e.Submit(token)
		require.False(t, out.OK, "token %q should fail", token)
		assert.Equal(t, before, e.Stack().Snapshot(), "token %q mutated the stack", token)
	}

	// The engine stays usable after failures.
	e.Submit("2")
	out := e.Submit("add")
	require.True(t, out.OK)
	assert.Equal(t, []types.Value{numVal(3)}, out.Stack)
}

func TestEngineFailingEvalRestoresOperands(t *testing.T) {
	e := newTestEngine()
	e.Registry().Register(&Operation{
		Name:      "boom",
		Arity:     2,
		Results:   1,
		Signature: []types.Kind{numKind, numKind},
		Eval: func(_ *Context, _ []types.Value) ([]types.Value, error) {
			return nil, DomainError{Op: "boom", Reason: "always fails"}
		},
	})
	e.Submit("1")
	e.Submit("2")

	out := e.Submit("boom")
	require.False(t, out.OK)
	assert.Equal(t, "DomainError", out.ErrorKind())
	assert.Equal(t, []types.Value{numVal(1), numVal(2)}, e.Stack().Snapshot(),
		"both operands must remain on the stack")
}

func TestEngineConstantFallback(t *testing.T) {
	e := newTestEngine()
	e.Registry().RegisterConstant("answer", func() (types.Value, error) {
		return numVal(42), nil
	})

	out := e.Submit("answer")
	require.True(t, out.OK, "unexpected error: %v", out.Err)
	assert.Equal(t, []types.Value{numVal(42)}, out.Stack)

	// Constant push then pop restores the prior depth.
	before := e.Stack().Size()
	e.Submit("answer")
	_, err := e.Stack().Pop()
	require.NoError(t, err)
	assert.Equal(t, before, e.Stack().Size())
}

func TestEngineOperationShadowsConstant(t *testing.T) {
	e := newTestEngine()
	e.Registry().RegisterConstant("x", func() (types.Value, error) {
		return numVal(1), nil
	})
	e.Registry().Register(&Operation{
		Name: "x",
		Fn: func(ctx *Context) error {
			ctx.Stack.Push(numVal(99))
			return nil
		},
	})

	out := e.Submit("x")
	require.True(t, out.OK)
	assert.Equal(t, []types.Value{numVal(99)}, out.Stack)
}

func TestEngineRunStopsAtFirstError(t *testing.T) {
	e := newTestEngine()

	out := e.Run([]string{"1", "2", "add", "frobnicate", "5"})
	require.False(t, out.OK)
	assert.Equal(t, "UnknownOperationError", out.ErrorKind())
	assert.Equal(t, []types.Value{numVal(3)}, e.Stack().Snapshot(),
		"tokens before the failure commit, tokens after are discarded")
}

func TestEngineRunStreamArguments(t *testing.T) {
	e := newTestEngine()
	e.Registry().Register(&Operation{
		Name: "tag",
		Fn: func(ctx *Context) error {
			word, err := ctx.NextWord("tag")
			if err != nil {
				return err
			}
			ctx.Storage.Store(word, numVal(1))
			return nil
		},
	})

	out := e.Run([]string{"tag", "alpha"})
	require.True(t, out.OK, "unexpected error: %v", out.Err)
	_, ok := e.Storage().Recall("alpha")
	assert.True(t, ok, "stream argument should have been consumed and stored")

	// Submit has no stream, so the same operation fails there.
	out = e.Submit("tag")
	require.False(t, out.OK)
	assert.Equal(t, "MissingArgumentError", out.ErrorKind())

	var missing MissingArgumentError
	require.True(t, errors.As(out.Err, &missing))
	assert.Equal(t, "tag", missing.Op)
}

func TestEngineSharedRegistry(t *testing.T) {
	reg := newTestRegistry()
	e1 := NewWithRegistry(reg)
	e2 := NewWithRegistry(reg)

	e1.Submit("1")
	out := e2.Submit("2")
	require.True(t, out.OK)
	assert.Equal(t, 1, e1.Stack().Size())
	assert.Equal(t, 1, e2.Stack().Size(), "engines must not share stacks")
}

func TestErrorKindNames(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ParseError{Token: "x"}, "ParseError"},
		{IncompatibleKindError{From: numKind, To: wideKind}, "IncompatibleKindError"},
		{StackUnderflowError{Size: 0, Need: 1}, "StackUnderflowError"},
		{ArityError{Op: "add", Need: 2, Have: 0}, "ArityError"},
		{KindMismatchError{Op: "add"}, "KindMismatchError"},
		{DomainError{Op: "div", Reason: "division by zero"}, "DomainError"},
		{UnknownOperationError{Name: "f"}, "UnknownOperationError"},
		{NoMatchingOverloadError{Name: "f"}, "NoMatchingOverloadError"},
		{UnknownConstantError{Name: "f"}, "UnknownConstantError"},
		{DuplicateRegistrationError{Name: "f"}, "DuplicateRegistrationError"},
		{MissingDependencyError{Module: "a", Requires: "b"}, "MissingDependencyError"},
		{MissingArgumentError{Op: "sto"}, "MissingArgumentError"},
		{UnknownVariableError{Name: "x"}, "UnknownVariableError"},
		{errors.New("weird"), "CalculatorError"},
	} {
		assert.Equal(t, tc.want, ErrorKind(tc.err), "for %v", tc.err)
	}
}
