// Package scriptscope is the default file scope factory of a session. For a
// file that the registry classifies as a script it builds the top-level scope
// of the implicit wrapper class: the definition's parameters as bindings,
// plus the supertypes and superclass constructor bindings the class is
// synthesized with. Other files get an empty file scope.
package scriptscope

import (
	"context"
	"fmt"

	"github.com/vk/scriptdefs/internal/ctxlog"
	"github.com/vk/scriptdefs/internal/definition"
	"github.com/vk/scriptdefs/internal/fileid"
	"github.com/vk/scriptdefs/internal/filescope"
	"github.com/vk/scriptdefs/internal/registry"
	"github.com/vk/scriptdefs/internal/types"
)

// Factory implements filescope.Factory on top of a definition registry.
type Factory struct {
	registry *registry.Registry
	types    types.Context
}

// NewFactory creates a factory resolving definitions in reg and type names
// in tc.
func NewFactory(reg *registry.Registry, tc types.Context) *Factory {
	return &Factory{registry: reg, types: tc}
}

// CreateScopesFor implements filescope.Factory. Unknown type names in the
// script's definition fail the construction with an error wrapping
// types.ErrUnresolvedTypeReference.
func (f *Factory) CreateScopesFor(ctx context.Context, file fileid.Identity) (filescope.Scopes, error) {
	logger := ctxlog.FromContext(ctx).With("file", fileid.Key(file))

	def := f.registry.FindDefinition(file)
	if def == nil {
		logger.Debug("File is not a script, building plain file scope.")
		return filescope.Scopes{
			Lexical: newScope(file.ShortName()),
			Imports: &Imports{types: f.types},
		}, nil
	}
	logger = logger.With("definition", def.Name())

	params, err := def.Parameters(f.types)
	if err != nil {
		return filescope.Scopes{}, err
	}
	supertypes, err := def.Supertypes(f.types)
	if err != nil {
		return filescope.Scopes{}, err
	}
	bindings, err := def.ConstructorBindings(f.types)
	if err != nil {
		return filescope.Scopes{}, err
	}

	s := newScope(definition.ScriptClassName(file))
	s.definition = def
	s.supertypes = supertypes
	s.bindings = bindings
	for _, p := range params {
		if !s.declare(p.Name, p.Type) {
			return filescope.Scopes{}, fmt.Errorf("script definition %q declares parameter %q more than once", def.Name(), p.Name)
		}
	}
	for _, b := range bindings {
		if _, ok := s.bindingsByName[b.Name]; !ok {
			return filescope.Scopes{}, fmt.Errorf("script definition %q binds superclass parameter to unknown script parameter %q", def.Name(), b.Name)
		}
	}

	logger.Debug("Built script scope.", "parameters", len(params), "supertypes", len(supertypes), "bindings", len(bindings))
	return filescope.Scopes{
		Lexical: s,
		Imports: &Imports{types: f.types, classpath: def.DependencyClasspath()},
	}, nil
}
