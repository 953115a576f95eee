package calc

import "github.com/littlecalc/littlecalc/pkg/types"

// Storage is the engine's named variable store, used by the sto/rcl
// operations. Like the stack it belongs to one engine.
type Storage struct {
	vars map[string]types.Value
}

// NewStorage returns an empty variable store.
func NewStorage() *Storage {
	return &Storage{vars: make(map[string]types.Value)}
}

// Store binds name to v, replacing any previous binding.
func (s *Storage) Store(name string, v types.Value) {
	s.vars[name] = v
}

// Recall returns the value bound to name.
func (s *Storage) Recall(name string) (types.Value, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Clear removes all bindings.
func (s *Storage) Clear() {
	s.vars = make(map[string]types.Value)
}

// Len returns the number of bindings.
func (s *Storage) Len() int { return len(s.vars) }
