package scriptscope

import (
	"slices"

	"github.com/vk/scriptdefs/internal/definition"
	"github.com/vk/scriptdefs/internal/types"
)

// Scope is the top-level lexical scope of a file. For scripts it also
// carries the shape of the synthesized wrapper class.
type Scope struct {
	owner          string
	names          []string
	bindingsByName map[string]types.Type

	definition definition.Definition
	supertypes []types.Type
	bindings   []definition.Parameter
}

func newScope(owner string) *Scope {
	return &Scope{owner: owner, bindingsByName: make(map[string]types.Type)}
}

func (s *Scope) declare(name string, ty types.Type) bool {
	if _, exists := s.bindingsByName[name]; exists {
		return false
	}
	s.bindingsByName[name] = ty
	s.names = append(s.names, name)
	return true
}

// Owner returns the wrapper class name for scripts and the file name
// otherwise.
func (s *Scope) Owner() string { return s.owner }

// Lookup returns the type of a script parameter.
func (s *Scope) Lookup(name string) (types.Type, bool) {
	ty, ok := s.bindingsByName[name]
	return ty, ok
}

// Names returns the script parameters in declaration order.
func (s *Scope) Names() []string { return slices.Clone(s.names) }

// Definition returns the script definition the scope was built from, or nil
// for plain files.
func (s *Scope) Definition() definition.Definition { return s.definition }

// Supertypes returns the supertypes of the wrapper class.
func (s *Scope) Supertypes() []types.Type { return slices.Clone(s.supertypes) }

// ConstructorBindings returns the superclass constructor bindings of the
// wrapper class.
func (s *Scope) ConstructorBindings() []definition.Parameter { return slices.Clone(s.bindings) }

// Imports is the import resolver of a file: the definition's classpath and
// the session type context.
type Imports struct {
	types     types.Context
	classpath []string
}

// Classpath returns the extra classpath entries of the file's definition.
func (i *Imports) Classpath() []string { return slices.Clone(i.classpath) }

// ResolveImport resolves an imported type name in the session type context.
func (i *Imports) ResolveImport(name string) (types.Type, error) {
	return i.types.ResolveType(name)
}
