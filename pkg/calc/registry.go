package calc

import (
	"sort"

	"github.com/littlecalc/littlecalc/pkg/types"
)

// KindSpec describes a numeric kind contributed by a module: its tag
// and a parser for literal text. Parse returns an error when the text
// is not a literal of this kind; the registry then tries the next kind.
// Formatting needs no registration, every Value formats itself.
type KindSpec struct {
	Kind  types.Kind
	Parse func(text string) (types.Value, error)
}

// ConstantFunc produces the value of a named constant on demand, so
// constants can be computed to the working precision of their module.
type ConstantFunc func() (types.Value, error)

type binding struct {
	op  *Operation
	seq int
}

// Registry maps operation names to candidate implementations and owns
// the numeric-kind and conversion tables. Mutation happens at module
// load time; afterwards a Registry may be shared read-only between
// engines.
//
// Registering an operation whose (name, signature) pair is already
// bound replaces the old binding: last registered wins. Overloads that
// differ in signature coexist; Resolve picks among them by exact kind
// match first, then declared priority, then registration recency.
type Registry struct {
	ops         map[string][]binding
	constants   map[string]ConstantFunc
	kinds       []KindSpec
	conversions map[[2]types.Kind]func(types.Value) (types.Value, error)
	loaded      map[string]bool
	seq         int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ops:         make(map[string][]binding),
		constants:   make(map[string]ConstantFunc),
		conversions: make(map[[2]types.Kind]func(types.Value) (types.Value, error)),
		loaded:      make(map[string]bool),
	}
}

func (r *Registry) markLoaded(module string) { r.loaded[module] = true }

func (r *Registry) moduleLoaded(module string) bool { return r.loaded[module] }

// Register binds op under its name and all aliases, replacing any
// existing binding with the same (name, signature) pair.
func (r *Registry) Register(op *Operation) {
	r.seq++
	for _, name := range op.names() {
		list := r.ops[name]
		kept := list[:0]
		for _, b := range list {
			if !sameSignature(b.op, op) {
				kept = append(kept, b)
			}
		}
		r.ops[name] = append(kept, binding{op: op, seq: r.seq})
	}
}

// RegisterStrict is Register for callers that want re-registration of
// an identical (name, signature) pair rejected instead of replaced.
func (r *Registry) RegisterStrict(op *Operation) error {
	for _, name := range op.names() {
		for _, b := range r.ops[name] {
			if sameSignature(b.op, op) {
				return DuplicateRegistrationError{Name: name, Signature: op.Signature}
			}
		}
	}
	r.Register(op)
	return nil
}

func sameSignature(a, b *Operation) bool {
	if (a.Signature == nil) != (b.Signature == nil) {
		return false
	}
	if len(a.Signature) != len(b.Signature) {
		return false
	}
	for i := range a.Signature {
		if a.Signature[i] != b.Signature[i] {
			return false
		}
	}
	return true
}

// Resolve selects the operation bound to name that best matches the
// kinds currently on top of st. It fails with UnknownOperationError if
// the name is unbound, or NoMatchingOverloadError if the name exists
// but no candidate accepts the present kinds.
func (r *Registry) Resolve(name string, st *Stack) (*Operation, error) {
	candidates := r.ops[name]
	if len(candidates) == 0 {
		return nil, UnknownOperationError{Name: name}
	}

	var best *Operation
	var bestExact bool
	var bestPrio, bestSeq int
	maxArity := 0
	for _, b := range candidates {
		if b.op.Arity > maxArity {
			maxArity = b.op.Arity
		}
		ok, exact := b.op.matches(st, r)
		if !ok {
			continue
		}
		if best != nil {
			if bestExact && !exact {
				continue
			}
			if exact == bestExact && b.op.Priority < bestPrio {
				continue
			}
			if exact == bestExact && b.op.Priority == bestPrio && b.seq < bestSeq {
				continue
			}
		}
		best, bestExact, bestPrio, bestSeq = b.op, exact, b.op.Priority, b.seq
	}
	if best == nil {
		n := maxArity
		if st.Size() < n {
			n = st.Size()
		}
		top, _ := st.PeekN(n)
		return nil, NoMatchingOverloadError{Name: name, Got: types.KindsOf(top)}
	}
	return best, nil
}

// RegisterConstant binds name to a value producer, resolved like a
// zero-arity operation. Re-registration replaces.
func (r *Registry) RegisterConstant(name string, fn ConstantFunc) {
	r.constants[name] = fn
}

// ResolveConstant returns the value of the named constant.
func (r *Registry) ResolveConstant(name string) (types.Value, error) {
	fn, ok := r.constants[name]
	if !ok {
		return nil, UnknownConstantError{Name: name}
	}
	return fn()
}

// HasConstant reports whether name is bound as a constant.
func (r *Registry) HasConstant(name string) bool {
	_, ok := r.constants[name]
	return ok
}

// RegisterKind adds a numeric kind to the literal-parser table. Kinds
// are tried in registration order; re-registering a kind replaces its
// parser in place, keeping the original position.
func (r *Registry) RegisterKind(spec KindSpec) {
	for i, k := range r.kinds {
		if k.Kind == spec.Kind {
			r.kinds[i] = spec
			return
		}
	}
	r.kinds = append(r.kinds, spec)
}

// HasKind reports whether the kind tag is registered.
func (r *Registry) HasKind(kind types.Kind) bool {
	for _, k := range r.kinds {
		if k.Kind == kind {
			return true
		}
	}
	return false
}

// Parse converts literal text to a value using the first registered
// kind whose parser accepts it.
func (r *Registry) Parse(text string) (types.Value, error) {
	for _, k := range r.kinds {
		if v, err := k.Parse(text); err == nil {
			return v, nil
		}
	}
	return nil, ParseError{Token: text}
}

// RegisterConversion adds a coercion path between two kinds.
func (r *Registry) RegisterConversion(from, to types.Kind, fn func(types.Value) (types.Value, error)) {
	r.conversions[[2]types.Kind{from, to}] = fn
}

// CanCoerce reports whether a value of kind from can become kind to.
func (r *Registry) CanCoerce(from, to types.Kind) bool {
	if from == to {
		return true
	}
	_, ok := r.conversions[[2]types.Kind{from, to}]
	return ok
}

// Coerce converts v to the target kind. It fails with
// IncompatibleKindError when no conversion path exists.
func (r *Registry) Coerce(v types.Value, target types.Kind) (types.Value, error) {
	if v.Kind() == target {
		return v, nil
	}
	fn, ok := r.conversions[[2]types.Kind{v.Kind(), target}]
	if !ok {
		return nil, IncompatibleKindError{From: v.Kind(), To: target}
	}
	return fn(v)
}

// Describe returns the doc strings of the operations bound to name,
// in registration order. The result is empty for unbound names.
func (r *Registry) Describe(name string) []string {
	var docs []string
	for _, b := range r.ops[name] {
		if b.op.Doc != "" {
			docs = append(docs, b.op.Doc)
		}
	}
	return docs
}

// OperationNames returns all bound operation names, sorted.
func (r *Registry) OperationNames() []string {
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConstantNames returns all bound constant names, sorted.
func (r *Registry) ConstantNames() []string {
	names := make([]string, 0, len(r.constants))
	for name := range r.constants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
