package calc

import (
	"github.com/littlecalc/littlecalc/pkg/types"
)

// Context is the view of the engine handed to an operation while it
// runs: the operand stack, the registry it was resolved from, the
// variable storage, and the remaining token stream of the current line.
type Context struct {
	Stack    *Stack
	Registry *Registry
	Storage  *Storage
	Stream   *TokenStream
}

// NextWord pulls the next trailing word from the token stream, for
// operations of the "sto x" shape. It fails with MissingArgumentError
// when the stream is exhausted or absent.
func (c *Context) NextWord(op string) (string, error) {
	if c.Stream == nil || !c.Stream.HasNext() {
		return "", MissingArgumentError{Op: op}
	}
	return c.Stream.Next(), nil
}

// Operation is a named unit of computation over the stack. Exactly one
// of Eval and Fn is set.
//
// Eval operations declare their arity up front and receive their
// operands in push order (args[len(args)-1] is the old top of stack).
// The engine peeks and validates the operands, runs Eval, and commits
// the pop/push only on success, so a failing Eval can never leave a
// partially mutated stack.
//
// Fn operations get raw Context access for effects Eval cannot express
// (stack rotation, storage, stream arguments). They are themselves
// responsible for validating before mutating.
type Operation struct {
	Name    string
	Aliases []string

	// Arity is the number of operands consumed; Results the number
	// produced. Both are zero for Fn operations, which declare their
	// demands implicitly.
	Arity   int
	Results int

	// Signature optionally restricts the accepted operand kinds, in
	// push order. A nil signature accepts any kinds. len(Signature)
	// must equal Arity when set.
	Signature []types.Kind

	// Priority breaks ties between overloads sharing a name: higher
	// wins, then most recent registration.
	Priority int

	Doc string

	Eval func(ctx *Context, args []types.Value) ([]types.Value, error)
	Fn   func(ctx *Context) error
}

// matches reports whether the top of stack satisfies this operation's
// signature, and whether it does so without any kind conversion. A
// stack shallower than the arity matches vacuously (applying will fail
// with ArityError, which is more useful than an overload error).
func (op *Operation) matches(st *Stack, reg *Registry) (ok, exact bool) {
	if op.Signature == nil || st.Size() < op.Arity {
		return true, true
	}
	args, err := st.PeekN(op.Arity)
	if err != nil {
		return true, true
	}
	exact = true
	for i, want := range op.Signature {
		got := args[i].Kind()
		if got == want {
			continue
		}
		exact = false
		if !reg.CanCoerce(got, want) {
			return false, false
		}
	}
	return true, exact
}

// Apply runs the operation against ctx. On success the stack holds
// exactly (depth - arity + results) values; on any failure the stack is
// exactly as it was before the call.
func (op *Operation) Apply(ctx *Context) error {
	if op.Fn != nil {
		return op.Fn(ctx)
	}

	st := ctx.Stack
	if st.Size() < op.Arity {
		return ArityError{Op: op.Name, Need: op.Arity, Have: st.Size()}
	}
	args, err := st.PeekN(op.Arity)
	if err != nil {
		return err
	}
	if op.Signature != nil {
		for i, want := range op.Signature {
			if args[i].Kind() == want {
				continue
			}
			coerced, cerr := ctx.Registry.Coerce(args[i], want)
			if cerr != nil {
				return KindMismatchError{
					Op:   op.Name,
					Want: op.Signature,
					Got:  types.KindsOf(args),
				}
			}
			args[i] = coerced
		}
	}

	results, err := op.Eval(ctx, args)
	if err != nil {
		return err
	}

	// Commit. PopN cannot fail here: the size was checked above and
	// Eval has no access to the popped region.
	if _, err := st.PopN(op.Arity); err != nil {
		return err
	}
	for _, v := range results {
		st.Push(v)
	}
	return nil
}

// names returns the operation's primary name followed by its aliases.
func (op *Operation) names() []string {
	return append([]string{op.Name}, op.Aliases...)
}
