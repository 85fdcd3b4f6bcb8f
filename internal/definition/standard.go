package definition

import (
	"strings"

	"github.com/vk/scriptdefs/internal/config"
	"github.com/vk/scriptdefs/internal/fileid"
	"github.com/vk/scriptdefs/internal/types"
)

type standard struct{}

var std Definition = standard{}

// Standard returns the built-in definition: every file ending in ".kts", no
// implicit parameters, no supertypes, no extra classpath. It is the same
// value on every call so registries can recognize it.
func Standard() Definition {
	return std
}

// IsStandard reports whether d is the built-in definition.
func IsStandard(d Definition) bool {
	return d == std
}

func (standard) Name() string { return config.DefaultName }

func (standard) Matches(file fileid.Identity) bool {
	return strings.HasSuffix(file.ShortName(), ScriptExtension)
}

func (standard) Parameters(types.Context) ([]Parameter, error) { return nil, nil }
func (standard) Supertypes(types.Context) ([]types.Type, error) { return nil, nil }
func (standard) ConstructorBindings(types.Context) ([]Parameter, error) { return nil, nil }
func (standard) DependencyClasspath() []string { return nil }
