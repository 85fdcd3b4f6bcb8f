// Package yamlconfig reads and writes script definition configuration files
// in YAML (suffix ".ktscfg.yaml" or ".ktscfg.yml"). The document root is
// either a sequence of definitions or a mapping with a `scripts` sequence:
//
//	scripts:
//	  - name: Gradle
//	    files: '.*\.gradle\.kts'
//	    classpath: [lib/gradle-api.jar]
//	    parameters:
//	      - {name: project, type: org.gradle.Project}
//	    supertypes: [org.gradle.Script]
//	    superclassParameters:
//	      - {scriptParamName: project, superclassParamType: org.gradle.Project}
package yamlconfig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/scriptdefs/internal/config"
	"github.com/vk/scriptdefs/internal/ctxlog"
	"github.com/vk/scriptdefs/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Suffixes are the file name suffixes of YAML script definition files.
var Suffixes = []string{".ktscfg.yaml", ".ktscfg.yml"}

type document struct {
	Scripts []*script `yaml:"scripts"`
}

type script struct {
	Name                 string                `yaml:"name,omitempty"`
	Files                string                `yaml:"files,omitempty"`
	Classpath            []string              `yaml:"classpath,omitempty"`
	Parameters           []parameter           `yaml:"parameters,omitempty"`
	Supertypes           []string              `yaml:"supertypes,omitempty"`
	SuperclassParameters []superclassParameter `yaml:"superclassParameters,omitempty"`
}

type parameter struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type superclassParameter struct {
	ScriptParamName     string `yaml:"scriptParamName"`
	SuperclassParamType string `yaml:"superclassParamType"`
}

var knownKeys = map[string]struct{}{
	"name": {}, "files": {}, "classpath": {}, "parameters": {},
	"supertypes": {}, "superclassParameters": {},
}

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load finds every YAML definition file directly inside root and decodes its
// elements, skipping and reporting malformed files and elements.
func (l *Loader) Load(ctx context.Context, root string) (*config.Result, error) {
	logger := ctxlog.FromContext(ctx).With("format", "yaml")
	logger.Debug("YAML definition loader started.", "root", root)

	files, err := fsutil.FindFilesBySuffix(root, Suffixes...)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s for YAML definition files: %w", root, err)
	}
	logger.Debug("Discovered YAML definition files.", "count", len(files))

	result := &config.Result{}
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Skipping unreadable definition file.", "file", path, "error", err)
			result.Diagnostics = append(result.Diagnostics, fileDiag(path, "Unreadable definition file", err))
			continue
		}
		result.Merge(DecodeBytes(ctx, src, path))
	}

	logger.Debug("YAML definition loading complete.", "definitions", len(result.Definitions), "diagnostics", len(result.Diagnostics))
	return result, nil
}

// DecodeBytes decodes a YAML definition document named filename.
func DecodeBytes(ctx context.Context, src []byte, filename string) *config.Result {
	logger := ctxlog.FromContext(ctx).With("file", filename)
	result := &config.Result{}

	var root yaml.Node
	if err := yaml.Unmarshal(src, &root); err != nil {
		logger.Warn("Skipping unparsable definition file.", "error", err)
		result.Diagnostics = append(result.Diagnostics, fileDiag(filename, "Unparsable definition file", err))
		return result
	}
	if root.Kind == 0 {
		// Empty document.
		return result
	}

	elements, err := scriptElements(&root)
	if err != nil {
		logger.Warn("Skipping malformed definition file.", "error", err)
		result.Diagnostics = append(result.Diagnostics, fileDiag(filename, "Malformed definition file", err))
		return result
	}

	for i, node := range elements {
		rng := nodeRange(filename, node)
		def, err := decodeElement(node)
		if err != nil {
			logger.Warn("Skipping malformed script definition.", "element", i, "range", rng.String(), "error", err)
			result.Diagnostics = append(result.Diagnostics, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Skipped malformed script definition",
				Detail:   fmt.Sprintf("Element %d of %s was skipped: %s", i, filename, err),
				Subject:  rng.Ptr(),
			})
			continue
		}
		result.Definitions = append(result.Definitions, &config.Sourced{
			Definition: def,
			Source:     config.Source{File: filename, Element: i, Range: rng},
		})
		logger.Debug("Decoded script definition.", "element", i, "name", def.Name)
	}
	return result
}

// scriptElements returns the definition nodes of a document whose root is a
// sequence or a mapping with a `scripts` key.
func scriptElements(doc *yaml.Node) ([]*yaml.Node, error) {
	n := doc
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, nil
		}
		n = n.Content[0]
	}
	switch n.Kind {
	case yaml.SequenceNode:
		return n.Content, nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value == "scripts" {
				seq := n.Content[i+1]
				if seq.Kind != yaml.SequenceNode {
					return nil, fmt.Errorf("line %d: `scripts` must be a sequence", seq.Line)
				}
				return seq.Content, nil
			}
		}
		return nil, errors.New("root mapping has no `scripts` key")
	default:
		return nil, fmt.Errorf("line %d: root must be a sequence or a mapping", n.Line)
	}
}

func decodeElement(node *yaml.Node) (*config.ScriptDefinition, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: definition must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if _, ok := knownKeys[key.Value]; !ok {
			return nil, fmt.Errorf("line %d: unknown field %q", key.Line, key.Value)
		}
	}

	var raw script
	if err := node.Decode(&raw); err != nil {
		return nil, err
	}

	def := &config.ScriptDefinition{
		Name:       raw.Name,
		Files:      raw.Files,
		Classpath:  raw.Classpath,
		Supertypes: raw.Supertypes,
	}
	for _, p := range raw.Parameters {
		def.Parameters = append(def.Parameters, config.Parameter{Name: p.Name, Type: p.Type})
	}
	for _, p := range raw.SuperclassParameters {
		def.SuperclassParameters = append(def.SuperclassParameters, config.SuperclassParameter{
			ScriptParamName:     p.ScriptParamName,
			SuperclassParamType: p.SuperclassParamType,
		})
	}
	def.ApplyDefaults()

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// Encode renders defs as a YAML definition document.
func Encode(defs []*config.ScriptDefinition) ([]byte, error) {
	doc := document{Scripts: make([]*script, 0, len(defs))}
	for _, d := range defs {
		s := &script{
			Name:       d.Name,
			Files:      d.Files,
			Classpath:  d.Classpath,
			Supertypes: d.Supertypes,
		}
		for _, p := range d.Parameters {
			s.Parameters = append(s.Parameters, parameter{Name: p.Name, Type: p.Type})
		}
		for _, p := range d.SuperclassParameters {
			s.SuperclassParameters = append(s.SuperclassParameters, superclassParameter{
				ScriptParamName:     p.ScriptParamName,
				SuperclassParamType: p.SuperclassParamType,
			})
		}
		doc.Scripts = append(doc.Scripts, s)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func nodeRange(filename string, n *yaml.Node) hcl.Range {
	pos := hcl.Pos{Line: n.Line, Column: n.Column}
	return hcl.Range{Filename: filename, Start: pos, End: pos}
}

func fileDiag(filename, summary string, err error) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf("%s: %s", filename, err),
		Subject:  &hcl.Range{Filename: filename, Start: hcl.InitialPos, End: hcl.InitialPos},
	}
}
