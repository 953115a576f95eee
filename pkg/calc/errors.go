package calc

import (
	"fmt"
	"strings"

	"github.com/littlecalc/littlecalc/pkg/types"
)

// ParseError reports a token that no registered numeric kind accepts.
type ParseError struct {
	Token string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q as a number of any registered kind", e.Token)
}

// IncompatibleKindError reports a missing conversion path between kinds.
type IncompatibleKindError struct {
	From, To types.Kind
}

func (e IncompatibleKindError) Error() string {
	return fmt.Sprintf("no conversion from kind %q to kind %q", e.From, e.To)
}

// StackUnderflowError reports an access past the bottom of the stack.
type StackUnderflowError struct {
	Size, Need int
}

func (e StackUnderflowError) Error() string {
	return fmt.Sprintf("stack underflow: have %d value(s), need %d", e.Size, e.Need)
}

// ArityError reports an operation applied to fewer operands than it consumes.
type ArityError struct {
	Op         string
	Need, Have int
}

func (e ArityError) Error() string {
	return fmt.Sprintf("operation %q needs %d operand(s), stack has %d", e.Op, e.Need, e.Have)
}

// KindMismatchError reports operand kinds an operation does not accept.
type KindMismatchError struct {
	Op   string
	Want []types.Kind
	Got  []types.Kind
}

func (e KindMismatchError) Error() string {
	return fmt.Sprintf("operation %q accepts kinds %s, stack has %s",
		e.Op, joinKinds(e.Want), joinKinds(e.Got))
}

// DomainError reports an argument outside an operation's mathematical
// domain, e.g. division by zero or the logarithm of a negative number.
type DomainError struct {
	Op     string
	Reason string
}

func (e DomainError) Error() string {
	return fmt.Sprintf("operation %q: %s", e.Op, e.Reason)
}

// UnknownOperationError reports a token that is neither a literal nor a
// registered operation or constant name.
type UnknownOperationError struct {
	Name string
}

func (e UnknownOperationError) Error() string {
	return fmt.Sprintf("no such operation: %q", e.Name)
}

// NoMatchingOverloadError reports a known operation name none of whose
// candidates accept the kinds currently on the stack.
type NoMatchingOverloadError struct {
	Name string
	Got  []types.Kind
}

func (e NoMatchingOverloadError) Error() string {
	return fmt.Sprintf("operation %q has no overload for kinds %s", e.Name, joinKinds(e.Got))
}

// UnknownConstantError reports a constant lookup for an unbound name.
type UnknownConstantError struct {
	Name string
}

func (e UnknownConstantError) Error() string {
	return fmt.Sprintf("no such constant: %q", e.Name)
}

// DuplicateRegistrationError is returned by RegisterStrict when a
// (name, signature) pair is already bound.
type DuplicateRegistrationError struct {
	Name      string
	Signature []types.Kind
}

func (e DuplicateRegistrationError) Error() string {
	if len(e.Signature) == 0 {
		return fmt.Sprintf("operation %q is already registered", e.Name)
	}
	return fmt.Sprintf("operation %q is already registered for kinds %s",
		e.Name, joinKinds(e.Signature))
}

// MissingDependencyError reports a module whose declared requirement is
// not satisfied by the module list passed to the loader.
type MissingDependencyError struct {
	Module   string
	Requires string
}

func (e MissingDependencyError) Error() string {
	return fmt.Sprintf("module %q requires module %q, which is not available", e.Module, e.Requires)
}

// UnknownVariableError reports a recall of a name nothing was stored
// under.
type UnknownVariableError struct {
	Name string
}

func (e UnknownVariableError) Error() string {
	return fmt.Sprintf("no value stored under %q", e.Name)
}

// MissingArgumentError reports an operation that pulls a trailing word
// from the token stream (like "sto x") invoked without one.
type MissingArgumentError struct {
	Op string
}

func (e MissingArgumentError) Error() string {
	return fmt.Sprintf("operation %q: trailing word argument missing", e.Op)
}

func joinKinds(kinds []types.Kind) string {
	if len(kinds) == 0 {
		return "(any)"
	}
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return "(" + strings.Join(parts, " ") + ")"
}
