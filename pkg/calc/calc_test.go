package calc

import (
	"strconv"

	"github.com/littlecalc/littlecalc/pkg/types"
)

// The core tests run against two toy kinds so they need no real
// numeric module: "num" (int payload) and "wide" (same payload, used
// as a coercion target).

const (
	numKind  types.Kind = "num"
	wideKind types.Kind = "wide"
)

type numVal int

func (v numVal) String() string   { return strconv.Itoa(int(v)) }
func (v numVal) Kind() types.Kind { return numKind }
func (v numVal) Equal(o types.Value) bool {
	other, ok := o.(numVal)
	return ok && v == other
}

type wideVal int

func (v wideVal) String() string   { return strconv.Itoa(int(v)) + "w" }
func (v wideVal) Kind() types.Kind { return wideKind }
func (v wideVal) Equal(o types.Value) bool {
	other, ok := o.(wideVal)
	return ok && v == other
}

func parseNum(text string) (types.Value, error) {
	n, err := strconv.Atoi(text)
	if err != nil {
		return nil, ParseError{Token: text}
	}
	return numVal(n), nil
}

// newTestRegistry returns a registry with the num kind, a num→wide
// conversion, and a num "add" operation.
func newTestRegistry() *Registry {
	reg := NewRegistry()
	reg.RegisterKind(KindSpec{Kind: numKind, Parse: parseNum})
	reg.RegisterConversion(numKind, wideKind, func(v types.Value) (types.Value, error) {
		return wideVal(v.(numVal)), nil
	})
	reg.Register(addOp("add", 0))
	return reg
}

// addOp builds a num,num -> num addition with the given priority.
func addOp(name string, priority int) *Operation {
	return &Operation{
		Name:      name,
		Arity:     2,
		Results:   1,
		Signature: []types.Kind{numKind, numKind},
		Priority:  priority,
		Eval: func(_ *Context, args []types.Value) ([]types.Value, error) {
			return []types.Value{args[0].(numVal) + args[1].(numVal)}, nil
		},
	}
}

// wideAddOp builds a wide,wide -> wide addition.
func wideAddOp(name string) *Operation {
	return &Operation{
		Name:      name,
		Arity:     2,
		Results:   1,
		Signature: []types.Kind{wideKind, wideKind},
		Eval: func(_ *Context, args []types.Value) ([]types.Value, error) {
			return []types.Value{args[0].(wideVal) + args[1].(wideVal)}, nil
		},
	}
}
