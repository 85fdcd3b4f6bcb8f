package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/vk/scriptdefs/internal/definition"
	"github.com/vk/scriptdefs/internal/fileid"
)

// ErrEmptyDefinitions is returned by ReplaceAll for an empty list.
var ErrEmptyDefinitions = errors.New("registry: definition list must not be empty")

// Registry is the session-scoped definition registry. It is safe for
// concurrent use. The definitions slice is never modified in place: writers
// install a new slice, so a reader holding a snapshot keeps a consistent view.
type Registry struct {
	mu          sync.RWMutex
	definitions []definition.Definition
}

// New creates a registry containing only the standard definition.
func New() *Registry {
	return &Registry{
		definitions: []definition.Definition{definition.Standard()},
	}
}

func (r *Registry) snapshot() []definition.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.definitions
}

// FindDefinition returns the first definition in registry order that matches
// file, or nil. Matches runs outside the lock.
func (r *Registry) FindDefinition(file fileid.Identity) definition.Definition {
	for _, d := range r.snapshot() {
		if d.Matches(file) {
			return d
		}
	}
	return nil
}

// IsScript reports whether any definition matches file.
func (r *Registry) IsScript(file fileid.Identity) bool {
	return r.FindDefinition(file) != nil
}

// MatchingDefinitions returns every definition that matches file, in
// registry order. Only the first one is ever used for analysis; the rest
// are shadowed.
func (r *Registry) MatchingDefinitions(file fileid.Identity) []definition.Definition {
	var out []definition.Definition
	for _, d := range r.snapshot() {
		if d.Matches(file) {
			out = append(out, d)
		}
	}
	return out
}

// Definitions returns a copy of the current ordered list.
func (r *Registry) Definitions() []definition.Definition {
	return slices.Clone(r.snapshot())
}

// ReplaceAll swaps the entire ordered list in one step. Production code
// changes the registry only through this method.
func (r *Registry) ReplaceAll(defs []definition.Definition) error {
	if len(defs) == 0 {
		return ErrEmptyDefinitions
	}
	for i, d := range defs {
		if d == nil {
			return fmt.Errorf("registry: definition %d is nil", i)
		}
	}
	next := slices.Clone(defs)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions = next
	return nil
}

// RegisterPriority puts def in front of every other definition. It is
// reserved for tests and bootstrap code.
func (r *Registry) RegisterPriority(def definition.Definition) {
	if def == nil {
		panic("registry: RegisterPriority called with nil definition")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]definition.Definition, 0, len(r.definitions)+1)
	next = append(next, def)
	next = append(next, r.definitions...)
	r.definitions = next
}
