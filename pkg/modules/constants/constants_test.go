package constants_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlecalc/littlecalc/pkg/calc"
	"github.com/littlecalc/littlecalc/pkg/modules/constants"
	"github.com/littlecalc/littlecalc/pkg/modules/decimal"
	"github.com/littlecalc/littlecalc/pkg/modules/integer"
)

func newEngine(t *testing.T) *calc.Engine {
	t.Helper()
	dec := decimal.New()
	e, err := calc.New(integer.New(), dec, constants.WithContext(dec.Context()))
	require.NoError(t, err)
	return e
}

func top(t *testing.T, e *calc.Engine) string {
	t.Helper()
	v, err := e.Stack().Peek(0)
	require.NoError(t, err)
	return v.String()
}

func TestPi(t *testing.T) {
	e := newEngine(t)
	out := e.Submit("pi")
	require.True(t, out.OK, "unexpected error: %v", out.Err)
	assert.True(t, strings.HasPrefix(top(t, e), "3.14159265358979323846"),
		"pi to working precision, got %s", top(t, e))
	assert.Equal(t, decimal.Kind, out.Stack[0].Kind())
}

func TestE(t *testing.T) {
	e := newEngine(t)
	out := e.Submit("e")
	require.True(t, out.OK, "unexpected error: %v", out.Err)
	assert.True(t, strings.HasPrefix(top(t, e), "2.71828182845904523536"),
		"e to working precision, got %s", top(t, e))
}

func TestFixedConstants(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"c0", "299792458"},
		{"g", "9.80665"},
		{"atm", "101325"},
		{"N_A", "6.022140857E+23"},
		{"k_B", "1.38064852E-23"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			e := newEngine(t)
			out := e.Submit(tt.id)
			require.True(t, out.OK, "unexpected error: %v", out.Err)

			want, err := decimal.Parse(tt.want)
			require.NoError(t, err)
			got, perr := e.Stack().Peek(0)
			require.NoError(t, perr)
			assert.True(t, got.Equal(want), "constant %s: got %s, want %s", tt.id, got, want)
		})
	}
}

func TestConstantPushPopRestoresDepth(t *testing.T) {
	e := newEngine(t)
	e.Submit("2")
	depth := e.Stack().Size()

	out := e.Submit("pi")
	require.True(t, out.OK)
	assert.Equal(t, depth+1, e.Stack().Size(), "a constant pushes exactly one value")

	_, err := e.Stack().Pop()
	require.NoError(t, err)
	assert.Equal(t, depth, e.Stack().Size())
}

func TestConstOperation(t *testing.T) {
	e := newEngine(t)
	out := e.Run([]string{"const", "pi"})
	require.True(t, out.OK, "unexpected error: %v", out.Err)
	assert.True(t, strings.HasPrefix(top(t, e), "3.14159"))

	out = e.Run([]string{"const", "nonsense"})
	require.False(t, out.OK)
	assert.Equal(t, "UnknownConstantError", out.ErrorKind())

	out = e.Run([]string{"const"})
	require.False(t, out.OK)
	assert.Equal(t, "MissingArgumentError", out.ErrorKind())
}

func TestDerivedConstants(t *testing.T) {
	// mu0 = 4*pi*1e-7, Z0 = mu0*c0: both derived from pi.
	e := newEngine(t)
	out := e.Submit("mu0")
	require.True(t, out.OK, "unexpected error: %v", out.Err)
	assert.True(t, strings.HasPrefix(top(t, e), "0.0000012566370614"),
		"mu0, got %s", top(t, e))

	e = newEngine(t)
	out = e.Submit("Z0")
	require.True(t, out.OK)
	assert.True(t, strings.HasPrefix(top(t, e), "376.730313"), "Z0, got %s", top(t, e))
}

func TestConstantsRequireDecimal(t *testing.T) {
	_, err := calc.New(constants.New())

	var missing calc.MissingDependencyError
	require.True(t, errors.As(err, &missing), "got %v", err)
	assert.Equal(t, "constants", missing.Module)
	assert.Equal(t, "decimal", missing.Requires)
}

func TestConstantsLoadIdempotent(t *testing.T) {
	reg := calc.NewRegistry()
	dec := decimal.New()
	mod := constants.WithContext(dec.Context())
	require.NoError(t, calc.LoadModules(reg, dec, mod))
	before := reg.ConstantNames()

	require.NoError(t, calc.LoadModules(reg, mod))
	assert.Equal(t, before, reg.ConstantNames(),
		"loading the module twice must not change the resolvable set")

	v, err := reg.ResolveConstant("pi")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(v.String(), "3.14159"))
}

func TestUsingConstantsInArithmetic(t *testing.T) {
	// 2 pi * r with r stored: circumference of r=3 circle.
	dec := decimal.New()
	e, err := calc.New(integer.New(), dec, constants.WithContext(dec.Context()))
	require.NoError(t, err)

	out := e.Run([]string{"pi", "2", "*", "3", "*"})
	require.True(t, out.OK, "unexpected error: %v", out.Err)
	assert.True(t, strings.HasPrefix(top(t, e), "18.849555921"), "2*pi*3, got %s", top(t, e))
}

func TestDescriptions(t *testing.T) {
	m := constants.New()
	desc, ok := m.Describe("c0")
	require.True(t, ok)
	assert.Contains(t, desc, "speed of light")
	assert.NotEmpty(t, m.IDs())

	_, ok = m.Describe("nonsense")
	assert.False(t, ok)
}
