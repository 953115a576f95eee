package integer_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlecalc/littlecalc/pkg/calc"
	"github.com/littlecalc/littlecalc/pkg/modules/integer"
)

func newEngine(t *testing.T) *calc.Engine {
	t.Helper()
	e, err := calc.New(integer.New())
	require.NoError(t, err)
	return e
}

// run feeds tokens and requires every one to succeed.
func run(t *testing.T, e *calc.Engine, tokens ...string) calc.Outcome {
	t.Helper()
	out := e.Run(tokens)
	require.True(t, out.OK, "tokens %v failed: %v", tokens, out.Err)
	return out
}

func top(t *testing.T, e *calc.Engine) string {
	t.Helper()
	v, err := e.Stack().Peek(0)
	require.NoError(t, err)
	return v.String()
}

func TestIntegerArithmetic(t *testing.T) {
	tests := []struct {
		tokens []string
		want   string
	}{
		{[]string{"2", "3", "add"}, "5"},
		{[]string{"2", "3", "+"}, "5"},
		{[]string{"10", "4", "sub"}, "6"},
		{[]string{"10", "4", "-"}, "6"},
		{[]string{"6", "7", "*"}, "42"},
		{[]string{"20", "4", "/"}, "5"},
		{[]string{"7", "2", "div"}, "3"},
		{[]string{"-7", "2", "div"}, "-3"},
		{[]string{"17", "5", "mod"}, "2"},
		{[]string{"5", "neg"}, "-5"},
		{[]string{"-3", "abs"}, "3"},
		{[]string{"12", "sqr"}, "144"},
		{[]string{"12", "^2"}, "144"},
		{[]string{"12", "18", "gcd"}, "6"},
		{[]string{"-12", "18", "gcd"}, "6"},
	}
	for _, tt := range tests {
		t.Run(tt.tokens[len(tt.tokens)-1], func(t *testing.T) {
			e := newEngine(t)
			run(t, e, tt.tokens...)
			assert.Equal(t, tt.want, top(t, e))
			assert.Equal(t, 1, e.Stack().Size())
		})
	}
}

func TestIntegerArbitraryPrecision(t *testing.T) {
	e := newEngine(t)
	run(t, e, "18446744073709551616", "18446744073709551616", "*")

	want := new(big.Int)
	want.SetString("18446744073709551616", 10)
	want.Mul(want, want)
	assert.Equal(t, want.String(), top(t, e))
}

func TestIntegerDivisionByZero(t *testing.T) {
	for _, op := range []string{"div", "mod"} {
		t.Run(op, func(t *testing.T) {
			e := newEngine(t)
			run(t, e, "5", "0")

			out := e.Submit(op)
			require.False(t, out.OK)
			assert.Equal(t, "DomainError", out.ErrorKind())
			assert.Equal(t, 2, e.Stack().Size(), "operands stay on the stack")
		})
	}
}

func TestIntegerGCDOfZeros(t *testing.T) {
	e := newEngine(t)
	run(t, e, "0", "0")
	out := e.Submit("gcd")
	require.False(t, out.OK)
	assert.Equal(t, "DomainError", out.ErrorKind())
}

func TestIntegerParse(t *testing.T) {
	for _, text := range []string{"0", "42", "-7", "+13"} {
		v, err := integer.Parse(text)
		require.NoError(t, err, "parsing %q", text)
		assert.Equal(t, integer.Kind, v.Kind())
	}
	for _, text := range []string{"", "3.5", "1e3", "abc", "0x10"} {
		_, err := integer.Parse(text)
		assert.Error(t, err, "parsing %q should fail", text)
	}
}

func TestIntegerRoundTrip(t *testing.T) {
	for _, text := range []string{"0", "42", "-7", "18446744073709551616"} {
		v, err := integer.Parse(text)
		require.NoError(t, err)
		again, err := integer.Parse(v.String())
		require.NoError(t, err)
		assert.True(t, v.Equal(again), "round-trip of %q", text)
	}
}

func TestIntegerEquality(t *testing.T) {
	a := integer.NewInt64(42)
	b := integer.NewInt64(42)
	c := integer.NewInt64(7)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestIntegerValueIsImmutable(t *testing.T) {
	n := big.NewInt(5)
	v := integer.NewValue(n)
	n.SetInt64(99)
	assert.Equal(t, "5", v.String(), "NewValue must copy its argument")

	out := v.Int()
	out.SetInt64(3)
	assert.Equal(t, "5", v.String(), "Int must return a copy")
}

func TestIntegerArityError(t *testing.T) {
	e := newEngine(t)
	run(t, e, "1")
	out := e.Submit("add")
	require.False(t, out.OK)
	assert.Equal(t, "ArityError", out.ErrorKind())
	assert.Equal(t, 1, e.Stack().Size())
}
