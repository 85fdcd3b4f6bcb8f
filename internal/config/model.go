package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// DefaultName is used when a configuration element omits its name.
	DefaultName = "KotlinScript"
	// DefaultFilesPattern matches every file whose short name ends in ".kts".
	DefaultFilesPattern = `.*\.kts`
)

// ScriptDefinition is the serializable form of one script kind. All list
// fields keep insertion order; duplicates are preserved.
type ScriptDefinition struct {
	Name                 string
	Files                string
	Classpath            []string
	Parameters           []Parameter
	Supertypes           []string
	SuperclassParameters []SuperclassParameter
}

// Parameter declares an implicit top-level script parameter.
type Parameter struct {
	Name string
	Type string
}

// SuperclassParameter binds a script parameter to a superclass constructor
// parameter of the given type.
type SuperclassParameter struct {
	ScriptParamName     string
	SuperclassParamType string
}

// New returns a definition populated with the defaults.
func New() *ScriptDefinition {
	return &ScriptDefinition{
		Name:  DefaultName,
		Files: DefaultFilesPattern,
	}
}

// ApplyDefaults fills empty name and pattern fields.
func (d *ScriptDefinition) ApplyDefaults() {
	if d.Name == "" {
		d.Name = DefaultName
	}
	if d.Files == "" {
		d.Files = DefaultFilesPattern
	}
}

// Validate checks the shape of the definition: the files pattern must
// compile and every list entry must be complete. Type names are not
// resolved here.
func (d *ScriptDefinition) Validate() error {
	var errs []error

	if _, err := regexp.Compile(d.Files); err != nil {
		errs = append(errs, fmt.Errorf("files: invalid pattern %q: %w", d.Files, err))
	}
	for i, p := range d.Classpath {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Errorf("classpath[%d]: path must not be empty", i))
		}
	}
	for i, p := range d.Parameters {
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Errorf("parameters[%d]: name must not be empty", i))
		}
		if strings.TrimSpace(p.Type) == "" {
			errs = append(errs, fmt.Errorf("parameters[%d]: type must not be empty", i))
		}
	}
	for i, s := range d.Supertypes {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, fmt.Errorf("supertypes[%d]: type must not be empty", i))
		}
	}
	for i, s := range d.SuperclassParameters {
		if strings.TrimSpace(s.ScriptParamName) == "" {
			errs = append(errs, fmt.Errorf("superclassParameters[%d]: scriptParamName must not be empty", i))
		}
		if strings.TrimSpace(s.SuperclassParamType) == "" {
			errs = append(errs, fmt.Errorf("superclassParameters[%d]: superclassParamType must not be empty", i))
		}
	}

	return errors.Join(errs...)
}
