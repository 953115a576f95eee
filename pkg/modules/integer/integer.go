// Package integer contributes an arbitrary-precision integer kind and
// its arithmetic operations. Integer literals are plain digit runs; a
// separate conversion registered by the decimal module lets integer
// operands flow into decimal operations.
package integer

import (
	"fmt"
	"math/big"

	"github.com/littlecalc/littlecalc/pkg/calc"
	"github.com/littlecalc/littlecalc/pkg/types"
)

// Kind is the integer kind tag.
const Kind types.Kind = "integer"

// Value is an immutable arbitrary-precision integer operand.
type Value struct {
	n *big.Int
}

// NewValue wraps n in a Value. The argument is copied, so callers may
// keep mutating their own big.Int.
func NewValue(n *big.Int) Value {
	return Value{n: new(big.Int).Set(n)}
}

// NewInt64 returns the Value for a small integer.
func NewInt64(n int64) Value {
	return Value{n: big.NewInt(n)}
}

// Int returns a copy of the underlying integer.
func (v Value) Int() *big.Int { return new(big.Int).Set(v.n) }

func (v Value) String() string { return v.n.String() }

func (v Value) Kind() types.Kind { return Kind }

func (v Value) Equal(other types.Value) bool {
	o, ok := other.(Value)
	return ok && v.n.Cmp(o.n) == 0
}

// Parse reads a base-10 integer literal with optional sign.
func Parse(text string) (types.Value, error) {
	n, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, calc.ParseError{Token: text}
	}
	return Value{n: n}, nil
}

// Module registers the integer kind and operations.
type Module struct{}

// New returns the integer module.
func New() *Module { return &Module{} }

func (m *Module) Name() string { return "integer" }

func (m *Module) Requires() []string { return nil }

func (m *Module) Load(reg *calc.Registry) error {
	reg.RegisterKind(calc.KindSpec{Kind: Kind, Parse: Parse})

	reg.Register(binaryOp("add", []string{"+"}, "y x -- y+x", func(y, x *big.Int) (*big.Int, error) {
		return new(big.Int).Add(y, x), nil
	}))
	reg.Register(binaryOp("sub", []string{"-"}, "y x -- y-x", func(y, x *big.Int) (*big.Int, error) {
		return new(big.Int).Sub(y, x), nil
	}))
	reg.Register(binaryOp("mul", []string{"*"}, "y x -- y*x", func(y, x *big.Int) (*big.Int, error) {
		return new(big.Int).Mul(y, x), nil
	}))
	reg.Register(binaryOp("div", []string{"/"}, "y x -- y/x (truncated)", func(y, x *big.Int) (*big.Int, error) {
		if x.Sign() == 0 {
			return nil, calc.DomainError{Op: "div", Reason: "division by zero"}
		}
		return new(big.Int).Quo(y, x), nil
	}))
	reg.Register(binaryOp("mod", []string{"%"}, "y x -- y mod x", func(y, x *big.Int) (*big.Int, error) {
		if x.Sign() == 0 {
			return nil, calc.DomainError{Op: "mod", Reason: "division by zero"}
		}
		return new(big.Int).Rem(y, x), nil
	}))
	reg.Register(binaryOp("gcd", nil, "y x -- gcd(y,x)", func(y, x *big.Int) (*big.Int, error) {
		if y.Sign() == 0 && x.Sign() == 0 {
			return nil, calc.DomainError{Op: "gcd", Reason: "gcd(0, 0) is undefined"}
		}
		a := new(big.Int).Abs(y)
		b := new(big.Int).Abs(x)
		return new(big.Int).GCD(nil, nil, a, b), nil
	}))

	reg.Register(unaryOp("neg", nil, "x -- -x", func(x *big.Int) (*big.Int, error) {
		return new(big.Int).Neg(x), nil
	}))
	reg.Register(unaryOp("abs", nil, "x -- |x|", func(x *big.Int) (*big.Int, error) {
		return new(big.Int).Abs(x), nil
	}))
	reg.Register(unaryOp("sqr", []string{"^2"}, "x -- x*x", func(x *big.Int) (*big.Int, error) {
		return new(big.Int).Mul(x, x), nil
	}))
	return nil
}

// binaryOp builds an integer operation consuming two operands, passed
// in push order (y below x).
func binaryOp(name string, aliases []string, doc string, fn func(y, x *big.Int) (*big.Int, error)) *calc.Operation {
	return &calc.Operation{
		Name:      name,
		Aliases:   aliases,
		Arity:     2,
		Results:   1,
		Signature: []types.Kind{Kind, Kind},
		Doc:       doc,
		Eval: func(_ *calc.Context, args []types.Value) ([]types.Value, error) {
			y, err := operand(args[0])
			if err != nil {
				return nil, err
			}
			x, err := operand(args[1])
			if err != nil {
				return nil, err
			}
			n, err := fn(y, x)
			if err != nil {
				return nil, err
			}
			return []types.Value{Value{n: n}}, nil
		},
	}
}

func unaryOp(name string, aliases []string, doc string, fn func(x *big.Int) (*big.Int, error)) *calc.Operation {
	return &calc.Operation{
		Name:      name,
		Aliases:   aliases,
		Arity:     1,
		Results:   1,
		Signature: []types.Kind{Kind},
		Doc:       doc,
		Eval: func(_ *calc.Context, args []types.Value) ([]types.Value, error) {
			x, err := operand(args[0])
			if err != nil {
				return nil, err
			}
			n, err := fn(x)
			if err != nil {
				return nil, err
			}
			return []types.Value{Value{n: n}}, nil
		},
	}
}

func operand(v types.Value) (*big.Int, error) {
	iv, ok := v.(Value)
	if !ok {
		return nil, fmt.Errorf("integer operation applied to %s value", v.Kind())
	}
	return iv.n, nil
}
