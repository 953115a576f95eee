// Package decimal contributes an arbitrary-precision decimal kind
// backed by cockroachdb/apd, which implements the General Decimal
// Arithmetic specification. It carries the calculator's main
// arithmetic and transcendental operations, and registers the
// integer→decimal conversion so integer operands can flow into
// decimal operations.
package decimal

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/littlecalc/littlecalc/pkg/calc"
	"github.com/littlecalc/littlecalc/pkg/modules/integer"
	"github.com/littlecalc/littlecalc/pkg/types"
)

// Kind is the decimal kind tag.
const Kind types.Kind = "decimal"

// DefaultPrecision is the working precision in decimal digits, the
// same default the original host decimal libraries use.
const DefaultPrecision = 28

// Value is an immutable arbitrary-precision decimal operand.
type Value struct {
	d *apd.Decimal
}

// NewValue wraps d in a Value, copying it.
func NewValue(d *apd.Decimal) Value {
	return Value{d: new(apd.Decimal).Set(d)}
}

// Decimal returns a copy of the underlying decimal.
func (v Value) Decimal() *apd.Decimal { return new(apd.Decimal).Set(v.d) }

func (v Value) String() string { return v.d.String() }

func (v Value) Kind() types.Kind { return Kind }

func (v Value) Equal(other types.Value) bool {
	o, ok := other.(Value)
	return ok && v.d.Cmp(o.d) == 0
}

// Parse reads a decimal literal: any coefficient/exponent form the
// General Decimal Arithmetic grammar accepts ("3.5", "1e-7", ".25").
func Parse(text string) (types.Value, error) {
	d, _, err := apd.NewFromString(text)
	if err != nil {
		return nil, calc.ParseError{Token: text}
	}
	return Value{d: d}, nil
}

// FromInteger converts an integer-kind value to decimal, exactly.
func FromInteger(v types.Value) (types.Value, error) {
	iv, ok := v.(integer.Value)
	if !ok {
		return nil, calc.IncompatibleKindError{From: v.Kind(), To: Kind}
	}
	d, _, err := apd.NewFromString(iv.String())
	if err != nil {
		return nil, err
	}
	return Value{d: d}, nil
}

// Module registers the decimal kind, conversion and operations.
type Module struct {
	ctx *apd.Context
}

// New returns a decimal module at the default precision.
func New() *Module { return WithPrecision(DefaultPrecision) }

// WithPrecision returns a decimal module computing to prec digits.
func WithPrecision(prec uint32) *Module {
	return &Module{ctx: apd.BaseContext.WithPrecision(prec)}
}

// Context exposes the module's arithmetic context, shared with the
// constants module so computed constants match the working precision.
func (m *Module) Context() *apd.Context { return m.ctx }

func (m *Module) Name() string { return "decimal" }

func (m *Module) Requires() []string { return nil }

func (m *Module) Load(reg *calc.Registry) error {
	reg.RegisterKind(calc.KindSpec{Kind: Kind, Parse: Parse})
	if reg.HasKind(integer.Kind) {
		reg.RegisterConversion(integer.Kind, Kind, FromInteger)
	}

	reg.Register(m.binaryOp("add", []string{"+"}, "y x -- y+x", func(res, y, x *apd.Decimal) error {
		_, err := m.ctx.Add(res, y, x)
		return err
	}))
	reg.Register(m.binaryOp("sub", []string{"-"}, "y x -- y-x", func(res, y, x *apd.Decimal) error {
		_, err := m.ctx.Sub(res, y, x)
		return err
	}))
	reg.Register(m.binaryOp("mul", []string{"*"}, "y x -- y*x", func(res, y, x *apd.Decimal) error {
		_, err := m.ctx.Mul(res, y, x)
		return err
	}))
	reg.Register(m.binaryOp("div", []string{"/"}, "y x -- y/x", func(res, y, x *apd.Decimal) error {
		if x.IsZero() {
			return calc.DomainError{Op: "div", Reason: "division by zero"}
		}
		_, err := m.ctx.Quo(res, y, x)
		return err
	}))
	reg.Register(m.binaryOp("pow", []string{"**", "^"}, "y x -- y^x", func(res, y, x *apd.Decimal) error {
		_, err := m.ctx.Pow(res, y, x)
		return err
	}))
	reg.Register(m.binaryOp("log", nil, "y x -- log_x(y)", m.logBase))

	reg.Register(m.unaryOp("inv", nil, "x -- 1/x", func(res, x *apd.Decimal) error {
		if x.IsZero() {
			return calc.DomainError{Op: "inv", Reason: "division by zero"}
		}
		one := apd.New(1, 0)
		_, err := m.ctx.Quo(res, one, x)
		return err
	}))
	reg.Register(m.unaryOp("sqrt", nil, "x -- √x", func(res, x *apd.Decimal) error {
		if x.Sign() < 0 {
			return calc.DomainError{Op: "sqrt", Reason: "square root of a negative number"}
		}
		_, err := m.ctx.Sqrt(res, x)
		return err
	}))
	reg.Register(m.unaryOp("sqr", []string{"^2"}, "x -- x*x", func(res, x *apd.Decimal) error {
		_, err := m.ctx.Mul(res, x, x)
		return err
	}))
	reg.Register(m.unaryOp("exp", nil, "x -- e^x", func(res, x *apd.Decimal) error {
		_, err := m.ctx.Exp(res, x)
		return err
	}))
	reg.Register(m.unaryOp("ln", nil, "x -- ln(x)", func(res, x *apd.Decimal) error {
		if x.Sign() <= 0 {
			return calc.DomainError{Op: "ln", Reason: "logarithm of a non-positive number"}
		}
		_, err := m.ctx.Ln(res, x)
		return err
	}))
	reg.Register(m.unaryOp("log10", []string{"lg"}, "x -- log10(x)", func(res, x *apd.Decimal) error {
		if x.Sign() <= 0 {
			return calc.DomainError{Op: "log10", Reason: "logarithm of a non-positive number"}
		}
		_, err := m.ctx.Log10(res, x)
		return err
	}))
	reg.Register(m.unaryOp("neg", nil, "x -- -x", func(res, x *apd.Decimal) error {
		res.Neg(x)
		return nil
	}))
	reg.Register(m.unaryOp("abs", nil, "x -- |x|", func(res, x *apd.Decimal) error {
		res.Abs(x)
		return nil
	}))
	return nil
}

// logBase computes log_x(y) as log10(y)/log10(x) at boosted precision,
// then rounds back to the working precision.
func (m *Module) logBase(res, y, x *apd.Decimal) error {
	if y.Sign() <= 0 {
		return calc.DomainError{Op: "log", Reason: "logarithm of a non-positive number"}
	}
	if x.Sign() <= 0 {
		return calc.DomainError{Op: "log", Reason: "logarithm base must be positive"}
	}
	one := apd.New(1, 0)
	if x.Cmp(one) == 0 {
		return calc.DomainError{Op: "log", Reason: "logarithm base must not be 1"}
	}
	boosted := m.ctx.WithPrecision(m.ctx.Precision + 5)
	var ly, lx apd.Decimal
	if _, err := boosted.Log10(&ly, y); err != nil {
		return calc.DomainError{Op: "log", Reason: err.Error()}
	}
	if _, err := boosted.Log10(&lx, x); err != nil {
		return calc.DomainError{Op: "log", Reason: err.Error()}
	}
	if _, err := boosted.Quo(res, &ly, &lx); err != nil {
		return calc.DomainError{Op: "log", Reason: err.Error()}
	}
	_, err := m.ctx.Round(res, res)
	return err
}

func (m *Module) binaryOp(name string, aliases []string, doc string, fn func(res, y, x *apd.Decimal) error) *calc.Operation {
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
			var res apd.Decimal
			if err := fn(&res, y, x); err != nil {
				return nil, domainWrap(name, err)
			}
			return []types.Value{Value{d: &res}}, nil
		},
	}
}

func (m *Module) unaryOp(name string, aliases []string, doc string, fn func(res, x *apd.Decimal) error) *calc.Operation {
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
			var res apd.Decimal
			if err := fn(&res, x); err != nil {
				return nil, domainWrap(name, err)
			}
			return []types.Value{Value{d: &res}}, nil
		},
	}
}

func operand(v types.Value) (*apd.Decimal, error) {
	dv, ok := v.(Value)
	if !ok {
		return nil, fmt.Errorf("decimal operation applied to %s value", v.Kind())
	}
	return dv.d, nil
}

// domainWrap maps raw arithmetic errors (apd condition errors such as
// invalid operation or overflow) onto the calculator taxonomy, leaving
// already-typed errors alone.
func domainWrap(op string, err error) error {
	switch err.(type) {
	case calc.DomainError, calc.IncompatibleKindError:
		return err
	}
	return calc.DomainError{Op: op, Reason: err.Error()}
}
