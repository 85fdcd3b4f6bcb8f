package definition

import (
	"strings"

	"github.com/vk/scriptdefs/internal/fileid"
	"github.com/vk/scriptdefs/internal/types"
)

// ScriptExtension is the extension of standard script files.
const ScriptExtension = ".kts"

// Definition is the capability shared by every script kind.
//
// Name is informational only; lookups always go through Matches.
// Parameters, Supertypes and ConstructorBindings resolve type names against
// tc at call time and return an error wrapping
// types.ErrUnresolvedTypeReference for unknown names.
type Definition interface {
	Name() string
	Matches(file fileid.Identity) bool
	Parameters(tc types.Context) ([]Parameter, error)
	Supertypes(tc types.Context) ([]types.Type, error)
	ConstructorBindings(tc types.Context) ([]Parameter, error)
	DependencyClasspath() []string
}

// Parameter is an identifier bound to a resolved type.
type Parameter struct {
	Name string
	Type types.Type
}

// ScriptClassName returns the name of the wrapper class synthesized for a
// script file: the short name without its script extension.
func ScriptClassName(file fileid.Identity) string {
	name := file.ShortName()
	if trimmed := strings.TrimSuffix(name, ScriptExtension); trimmed != "" {
		return trimmed
	}
	return name
}
