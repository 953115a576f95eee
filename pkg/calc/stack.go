package calc

import (
	"strings"

	"github.com/littlecalc/littlecalc/pkg/types"
)

// Stack is the operand stack: an ordered sequence of values with the
// most recently pushed value on top. It is owned by a single Engine and
// is not safe for concurrent use.
type Stack struct {
	values []types.Value

	// lastX remembers the topmost value consumed by the most recent
	// committed operation, for the "lastx" builtin.
	lastX types.Value
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{values: make([]types.Value, 0, 16)}
}

// Size returns the number of values on the stack.
func (s *Stack) Size() int { return len(s.values) }

// Push places v on top of the stack. It always succeeds.
func (s *Stack) Push(v types.Value) {
	s.values = append(s.values, v)
}

// Pop removes and returns the top value.
func (s *Stack) Pop() (types.Value, error) {
	if len(s.values) == 0 {
		return nil, StackUnderflowError{Size: 0, Need: 1}
	}
	v := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	s.lastX = v
	return v, nil
}

// PopN removes the top n values and returns them in push order: the
// first element of the result is the deepest of the n, the last is the
// previous top of stack. If fewer than n values are present the stack
// is left untouched.
func (s *Stack) PopN(n int) ([]types.Value, error) {
	if len(s.values) < n {
		return nil, StackUnderflowError{Size: len(s.values), Need: n}
	}
	split := len(s.values) - n
	popped := make([]types.Value, n)
	copy(popped, s.values[split:])
	s.values = s.values[:split]
	if n > 0 {
		s.lastX = popped[n-1]
	}
	return popped, nil
}

// Peek returns the value depth entries below the top without removing
// it; depth 0 is the top of the stack.
func (s *Stack) Peek(depth int) (types.Value, error) {
	if depth < 0 || depth >= len(s.values) {
		return nil, StackUnderflowError{Size: len(s.values), Need: depth + 1}
	}
	return s.values[len(s.values)-1-depth], nil
}

// PeekN returns the top n values in push order without removing them.
func (s *Stack) PeekN(n int) ([]types.Value, error) {
	if len(s.values) < n {
		return nil, StackUnderflowError{Size: len(s.values), Need: n}
	}
	top := make([]types.Value, n)
	copy(top, s.values[len(s.values)-n:])
	return top, nil
}

// Clear empties the stack.
func (s *Stack) Clear() {
	s.values = s.values[:0]
}

// Rotate cyclically shifts the stack by n positions: Rotate(1) moves
// the top value to the bottom (roll down), Rotate(-1) moves the bottom
// value to the top (roll up). Rotating an empty stack is a no-op.
func (s *Stack) Rotate(n int) {
	size := len(s.values)
	if size < 2 {
		return
	}
	n = ((n % size) + size) % size
	if n == 0 {
		return
	}
	rotated := make([]types.Value, 0, size)
	rotated = append(rotated, s.values[size-n:]...)
	rotated = append(rotated, s.values[:size-n]...)
	copy(s.values, rotated)
}

// LastX returns the X-register value consumed by the most recent
// committed operation, or nil if none has run yet.
func (s *Stack) LastX() types.Value { return s.lastX }

// Snapshot returns a copy of the stack contents in push order (bottom
// first). Values are immutable, so sharing them is safe.
func (s *Stack) Snapshot() []types.Value {
	snap := make([]types.Value, len(s.values))
	copy(snap, s.values)
	return snap
}

// String renders the stack bottom-to-top for diagnostics.
func (s *Stack) String() string {
	if len(s.values) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteString("[ ")
	for _, v := range s.values {
		b.WriteString(v.String())
		b.WriteByte(' ')
	}
	b.WriteString("]")
	return b.String()
}
