// Package builtins contributes the kind-independent stack and storage
// operations: duplication, exchange, roll, clear, the sto/rcl variable
// store and the last-X register. It registers no numeric kind and so
// works with whatever kinds other modules provide.
package builtins

import (
	"github.com/littlecalc/littlecalc/pkg/calc"
)

// Module registers the builtin operations.
type Module struct{}

// New returns the builtins module.
func New() *Module { return &Module{} }

func (m *Module) Name() string { return "builtins" }

func (m *Module) Requires() []string { return nil }

func (m *Module) Load(reg *calc.Registry) error {
	reg.Register(fnOp("dup", []string{"push"}, "x -- x x", opDup))
	reg.Register(fnOp("drop", []string{"pop"}, "x --", opDrop))
	reg.Register(fnOp("swap", []string{"xchy"}, "y x -- x y", opSwap))
	reg.Register(fnOp("over", nil, "y x -- y x y", opOver))
	reg.Register(fnOp("rolup", []string{"rlu"}, "roll the stack up", opRollUp))
	reg.Register(fnOp("roldown", []string{"rld"}, "roll the stack down", opRollDown))
	reg.Register(fnOp("clear", []string{"clr"}, "empty the stack", opClear))
	reg.Register(fnOp("clearall", nil, "empty the stack and variable store", opClearAll))
	reg.Register(fnOp("sto", []string{"store"}, "sto <name>: store X under name", opStore))
	reg.Register(fnOp("rcl", []string{"recall"}, "rcl <name>: push the stored value", opRecall))
	reg.Register(fnOp("lastx", nil, "push the last consumed X value", opLastX))
	return nil
}

func fnOp(name string, aliases []string, doc string, fn func(*calc.Context) error) *calc.Operation {
	return &calc.Operation{Name: name, Aliases: aliases, Doc: doc, Fn: fn}
}

func opDup(ctx *calc.Context) error {
	v, err := ctx.Stack.Peek(0)
	if err != nil {
		return err
	}
	ctx.Stack.Push(v)
	return nil
}

func opDrop(ctx *calc.Context) error {
	_, err := ctx.Stack.Pop()
	return err
}

func opSwap(ctx *calc.Context) error {
	vals, err := ctx.Stack.PopN(2)
	if err != nil {
		return err
	}
	ctx.Stack.Push(vals[1])
	ctx.Stack.Push(vals[0])
	return nil
}

func opOver(ctx *calc.Context) error {
	v, err := ctx.Stack.Peek(1)
	if err != nil {
		return err
	}
	ctx.Stack.Push(v)
	return nil
}

func opRollUp(ctx *calc.Context) error {
	ctx.Stack.Rotate(-1)
	return nil
}

func opRollDown(ctx *calc.Context) error {
	ctx.Stack.Rotate(1)
	return nil
}

func opClear(ctx *calc.Context) error {
	ctx.Stack.Clear()
	return nil
}

func opClearAll(ctx *calc.Context) error {
	ctx.Stack.Clear()
	ctx.Storage.Clear()
	return nil
}

func opStore(ctx *calc.Context) error {
	name, err := ctx.NextWord("sto")
	if err != nil {
		return err
	}
	v, err := ctx.Stack.Pop()
	if err != nil {
		return err
	}
	ctx.Storage.Store(name, v)
	return nil
}

func opRecall(ctx *calc.Context) error {
	name, err := ctx.NextWord("rcl")
	if err != nil {
		return err
	}
	v, ok := ctx.Storage.Recall(name)
	if !ok {
		return calc.UnknownVariableError{Name: name}
	}
	ctx.Stack.Push(v)
	return nil
}

// opLastX pushes the value most recently consumed from the top of the
// stack. Before any operation has consumed anything it is a no-op,
// matching the classic RPN LASTx key.
func opLastX(ctx *calc.Context) error {
	if v := ctx.Stack.LastX(); v != nil {
		ctx.Stack.Push(v)
	}
	return nil
}
