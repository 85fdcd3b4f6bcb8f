package hclconfig

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/scriptdefs/internal/config"
	"github.com/vk/scriptdefs/internal/ctxlog"
	"github.com/vk/scriptdefs/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load finds every HCL definition file directly inside root and decodes its
// script blocks. Files that fail to parse and blocks that fail to decode or
// validate are reported as diagnostics and skipped.
func (l *Loader) Load(ctx context.Context, root string) (*config.Result, error) {
	logger := ctxlog.FromContext(ctx).With("format", "hcl")
	logger.Debug("HCL definition loader started.", "root", root)

	files, err := fsutil.FindFilesBySuffix(root, Suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s for %s files: %w", root, Suffix, err)
	}
	logger.Debug("Discovered HCL definition files.", "count", len(files))

	parser := hclparse.NewParser()
	result := &config.Result{}

	for _, path := range files {
		hclFile, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			logger.Warn("Skipping unparsable definition file.", "file", path, "error", diags.Error())
			result.Diagnostics = append(result.Diagnostics, diags...)
			continue
		}
		result.Merge(decodeFile(ctx, hclFile, path))
	}

	logger.Debug("HCL definition loading complete.", "definitions", len(result.Definitions), "diagnostics", len(result.Diagnostics))
	return result, nil
}

// DecodeBytes parses src as a definition file named filename. It is the
// in-memory counterpart of Load.
func DecodeBytes(ctx context.Context, src []byte, filename string) *config.Result {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return &config.Result{Diagnostics: diags}
	}
	return decodeFile(ctx, hclFile, filename)
}

func decodeFile(ctx context.Context, file *hcl.File, path string) *config.Result {
	logger := ctxlog.FromContext(ctx).With("file", path)
	result := &config.Result{}

	content, _, diags := file.Body.PartialContent(rootSchema)
	// Header errors (for example a labelled script block) are per block; the
	// well-formed blocks are still in content.
	for _, d := range diags {
		if d.Severity == hcl.DiagError {
			logger.Warn("Skipping malformed script block.", "error", d.Error())
		}
	}
	result.Diagnostics = append(result.Diagnostics, diags...)
	if content == nil {
		return result
	}

	elements := elementIndexes(file)
	for i, block := range content.Blocks {
		if e, ok := elements[block.DefRange.Start.Byte]; ok {
			i = e
		}
		def, diags := decodeScriptBlock(block)
		if diags.HasErrors() {
			logger.Warn("Skipping malformed script definition.", "element", i, "range", block.DefRange.String(), "error", diags.Error())
			result.Diagnostics = append(result.Diagnostics, skipped(path, i, block.DefRange, diags))
			continue
		}
		result.Definitions = append(result.Definitions, &config.Sourced{
			Definition: def,
			Source:     config.Source{File: path, Element: i, Range: block.DefRange},
		})
		logger.Debug("Decoded script definition.", "element", i, "name", def.Name)
	}
	return result
}

func decodeScriptBlock(block *hcl.Block) (*config.ScriptDefinition, hcl.Diagnostics) {
	var raw scriptBlock
	if diags := gohcl.DecodeBody(block.Body, nil, &raw); diags.HasErrors() {
		return nil, diags
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
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid script definition",
			Detail:   err.Error(),
			Subject:  block.DefRange.Ptr(),
		}}
	}
	return def, nil
}

// elementIndexes maps the start offset of every script block in file to its
// position among the file's script blocks. Blocks that PartialContent drops
// for a bad header still take a position.
func elementIndexes(file *hcl.File) map[int]int {
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil
	}
	out := make(map[int]int)
	n := 0
	for _, b := range body.Blocks {
		if b.Type != scriptBlockType {
			continue
		}
		out[b.DefRange().Start.Byte] = n
		n++
	}
	return out
}

// skipped folds the decode diagnostics of one element into a single
// diagnostic naming the file and element.
func skipped(path string, element int, rng hcl.Range, diags hcl.Diagnostics) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Skipped malformed script definition",
		Detail:   fmt.Sprintf("Element %d of %s was skipped: %s", element, path, diags.Error()),
		Subject:  rng.Ptr(),
	}
}
