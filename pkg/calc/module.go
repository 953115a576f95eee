package calc

// Module is a self-contained bundle of operations, numeric kinds and
// constants. Load is called once per activation and must register
// everything the module contributes; because registration replaces
// identical bindings, loading the same module again is harmless.
type Module interface {
	// Name identifies the module, and is what other modules name in
	// their Requires list.
	Name() string
	// Requires lists the module names that must be loaded first.
	Requires() []string
	// Load registers the module's contributions.
	Load(reg *Registry) error
}

// LoadModules loads mods into reg in an order satisfying their declared
// requirements. Requirements already present in reg from an earlier
// load count as satisfied. It fails with MissingDependencyError when a
// module's requirement is neither in mods nor previously loaded, or
// when requirements form a cycle.
func LoadModules(reg *Registry, mods ...Module) error {
	loaded := make(map[string]bool)
	pending := make([]Module, 0, len(mods))
	for _, m := range mods {
		pending = append(pending, m)
	}

	for len(pending) > 0 {
		progress := false
		remaining := pending[:0]
		for _, m := range pending {
			if !requirementsMet(m, loaded, reg) {
				remaining = append(remaining, m)
				continue
			}
			if err := m.Load(reg); err != nil {
				return err
			}
			loaded[m.Name()] = true
			reg.markLoaded(m.Name())
			progress = true
		}
		pending = remaining
		if !progress {
			// Every remaining module is blocked (missing requirement
			// or a requirement cycle); report the first unmet one.
			m := pending[0]
			for _, req := range m.Requires() {
				if !loaded[req] && !reg.moduleLoaded(req) {
					return MissingDependencyError{Module: m.Name(), Requires: req}
				}
			}
		}
	}
	return nil
}

func requirementsMet(m Module, loaded map[string]bool, reg *Registry) bool {
	for _, req := range m.Requires() {
		if !loaded[req] && !reg.moduleLoaded(req) {
			return false
		}
	}
	return true
}

