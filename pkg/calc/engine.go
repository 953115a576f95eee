// Package calc provides the littlecalc evaluation engine: the operand
// stack, the operation registry with overload-by-kind resolution, the
// module loader, and the token evaluator itself. Modules plug new
// numeric kinds, operations and constants into a Registry; the Engine
// only ever speaks to values through the types.Value interface.
package calc

import (
	"errors"

	"github.com/littlecalc/littlecalc/pkg/types"
)

// Engine evaluates tokens against an operand stack and a registry.
// Construction takes the module list explicitly; there is no implicit
// default module set. An Engine is single-threaded: it owns its stack
// and storage, while the registry may be shared read-only with other
// engines once loading has finished.
type Engine struct {
	reg     *Registry
	stack   *Stack
	storage *Storage
}

// New builds a registry, loads mods into it in dependency order, and
// returns an engine bound to it.
func New(mods ...Module) (*Engine, error) {
	reg := NewRegistry()
	if err := LoadModules(reg, mods...); err != nil {
		return nil, err
	}
	return NewWithRegistry(reg), nil
}

// NewWithRegistry returns an engine with a fresh stack and storage on
// top of an already-populated registry.
func NewWithRegistry(reg *Registry) *Engine {
	return &Engine{
		reg:     reg,
		stack:   NewStack(),
		storage: NewStorage(),
	}
}

// Stack returns the engine's operand stack.
func (e *Engine) Stack() *Stack { return e.stack }

// Registry returns the registry the engine resolves against.
func (e *Engine) Registry() *Registry { return e.reg }

// Storage returns the engine's variable store.
func (e *Engine) Storage() *Storage { return e.storage }

// Outcome is the result of evaluating one token (or one token run).
// On success Stack holds a snapshot of the stack, bottom first. On
// failure Err carries the typed error and the engine's stack is
// exactly as it was before the failing token.
type Outcome struct {
	OK    bool
	Stack []types.Value
	Err   error
}

// ErrorKind names the taxonomy entry of Err ("DomainError",
// "UnknownOperationError", ...), or "" for a successful outcome.
func (o Outcome) ErrorKind() string { return ErrorKind(o.Err) }

// Submit evaluates a single token: a literal of a registered kind is
// pushed; otherwise the token is resolved as an operation or constant
// name and applied. Any failure leaves the stack unchanged and the
// engine usable for the next token. No token stream is available, so
// operations taking trailing word arguments fail under Submit; use Run
// for those.
func (e *Engine) Submit(token string) Outcome {
	return e.step(token, nil)
}

// Run evaluates tokens left to right, sharing one consumable stream so
// operations may pull trailing word arguments ("sto x"). It stops at
// the first failure, discarding the rest of the line; the stack keeps
// the state reached by the tokens before the failing one.
func (e *Engine) Run(tokens []string) Outcome {
	stream := NewTokenStream(tokens)
	out := e.ok()
	for stream.HasNext() {
		out = e.step(stream.Next(), stream)
		if !out.OK {
			break
		}
	}
	return out
}

func (e *Engine) step(token string, stream *TokenStream) Outcome {
	if v, err := e.reg.Parse(token); err == nil {
		e.stack.Push(v)
		return e.ok()
	}

	op, err := e.reg.Resolve(token, e.stack)
	if err != nil {
		// Operations shadow constants; an unbound operation name may
		// still resolve as a constant.
		var unknown UnknownOperationError
		if errors.As(err, &unknown) {
			if v, cerr := e.reg.ResolveConstant(token); cerr == nil {
				e.stack.Push(v)
				return e.ok()
			}
		}
		return e.fail(err)
	}

	ctx := &Context{Stack: e.stack, Registry: e.reg, Storage: e.storage, Stream: stream}
	if err := op.Apply(ctx); err != nil {
		return e.fail(err)
	}
	return e.ok()
}

func (e *Engine) ok() Outcome {
	return Outcome{OK: true, Stack: e.stack.Snapshot()}
}

func (e *Engine) fail(err error) Outcome {
	return Outcome{Stack: e.stack.Snapshot(), Err: err}
}

// ErrorKind maps a calc error to its taxonomy name, or "" for nil.
// Unrecognized errors report as "CalculatorError".
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	var (
		parseErr     ParseError
		kindErr      IncompatibleKindError
		underflowErr StackUnderflowError
		arityErr     ArityError
		mismatchErr  KindMismatchError
		domainErr    DomainError
		unknownOp    UnknownOperationError
		noOverload   NoMatchingOverloadError
		unknownConst UnknownConstantError
		duplicate    DuplicateRegistrationError
		missingDep   MissingDependencyError
		missingArg   MissingArgumentError
		unknownVar   UnknownVariableError
	)
	switch {
	case errors.As(err, &parseErr):
		return "ParseError"
	case errors.As(err, &kindErr):
		return "IncompatibleKindError"
	case errors.As(err, &underflowErr):
		return "StackUnderflowError"
	case errors.As(err, &arityErr):
		return "ArityError"
	case errors.As(err, &mismatchErr):
		return "KindMismatchError"
	case errors.As(err, &domainErr):
		return "DomainError"
	case errors.As(err, &unknownOp):
		return "UnknownOperationError"
	case errors.As(err, &noOverload):
		return "NoMatchingOverloadError"
	case errors.As(err, &unknownConst):
		return "UnknownConstantError"
	case errors.As(err, &duplicate):
		return "DuplicateRegistrationError"
	case errors.As(err, &missingDep):
		return "MissingDependencyError"
	case errors.As(err, &missingArg):
		return "MissingArgumentError"
	case errors.As(err, &unknownVar):
		return "UnknownVariableError"
	default:
		return "CalculatorError"
	}
}
