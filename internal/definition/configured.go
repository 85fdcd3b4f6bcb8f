package definition

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/vk/scriptdefs/internal/config"
	"github.com/vk/scriptdefs/internal/fileid"
	"github.com/vk/scriptdefs/internal/types"
)

// Configured is a Definition backed by a loaded configuration record.
type Configured struct {
	cfg     config.ScriptDefinition
	pattern *regexp.Regexp
}

// FromConfig builds a Definition from cfg. The files pattern must match the
// whole short name of a file. cfg is copied; later changes to it are not
// observed.
func FromConfig(cfg *config.ScriptDefinition) (*Configured, error) {
	c := *cfg
	c.ApplyDefaults()

	pattern, err := regexp.Compile(`^(?:` + c.Files + `)$`)
	if err != nil {
		return nil, fmt.Errorf("script definition %q: invalid files pattern %q: %w", c.Name, c.Files, err)
	}

	c.Classpath = slices.Clone(c.Classpath)
	c.Parameters = slices.Clone(c.Parameters)
	c.Supertypes = slices.Clone(c.Supertypes)
	c.SuperclassParameters = slices.Clone(c.SuperclassParameters)
	return &Configured{cfg: c, pattern: pattern}, nil
}

// Config returns a copy of the record the definition was built from.
func (d *Configured) Config() *config.ScriptDefinition {
	c := d.cfg
	c.Classpath = slices.Clone(c.Classpath)
	c.Parameters = slices.Clone(c.Parameters)
	c.Supertypes = slices.Clone(c.Supertypes)
	c.SuperclassParameters = slices.Clone(c.SuperclassParameters)
	return &c
}

func (d *Configured) Name() string { return d.cfg.Name }

func (d *Configured) Matches(file fileid.Identity) bool {
	return d.pattern.MatchString(file.ShortName())
}

func (d *Configured) Parameters(tc types.Context) ([]Parameter, error) {
	out := make([]Parameter, 0, len(d.cfg.Parameters))
	for _, p := range d.cfg.Parameters {
		ty, err := tc.ResolveType(p.Type)
		if err != nil {
			return nil, fmt.Errorf("script definition %q, parameter %q: %w", d.cfg.Name, p.Name, err)
		}
		out = append(out, Parameter{Name: p.Name, Type: ty})
	}
	return out, nil
}

func (d *Configured) Supertypes(tc types.Context) ([]types.Type, error) {
	out := make([]types.Type, 0, len(d.cfg.Supertypes))
	for _, name := range d.cfg.Supertypes {
		ty, err := tc.ResolveType(name)
		if err != nil {
			return nil, fmt.Errorf("script definition %q, supertype: %w", d.cfg.Name, err)
		}
		out = append(out, ty)
	}
	return out, nil
}

func (d *Configured) ConstructorBindings(tc types.Context) ([]Parameter, error) {
	out := make([]Parameter, 0, len(d.cfg.SuperclassParameters))
	for _, p := range d.cfg.SuperclassParameters {
		ty, err := tc.ResolveType(p.SuperclassParamType)
		if err != nil {
			return nil, fmt.Errorf("script definition %q, superclass parameter %q: %w", d.cfg.Name, p.ScriptParamName, err)
		}
		out = append(out, Parameter{Name: p.ScriptParamName, Type: ty})
	}
	return out, nil
}

func (d *Configured) DependencyClasspath() []string {
	return slices.Clone(d.cfg.Classpath)
}
