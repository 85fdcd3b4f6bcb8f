package app

import (
	"context"
	"fmt"

	"github.com/vk/scriptdefs/internal/config"
	"github.com/vk/scriptdefs/internal/ctxlog"
	"github.com/vk/scriptdefs/internal/definition"
	"github.com/vk/scriptdefs/internal/fileid"
	"github.com/vk/scriptdefs/internal/hclconfig"
	"github.com/vk/scriptdefs/internal/types"
	"github.com/vk/scriptdefs/internal/yamlconfig"
	"golang.org/x/sync/errgroup"
)

// DefinitionSummary describes one registered definition, in registry order.
type DefinitionSummary struct {
	Name       string
	Files      string
	Parameters int
	Supertypes int
	Classpath  []string
	Standard   bool
}

// Definitions summarizes the registry.
func (a *App) Definitions() []DefinitionSummary {
	defs := a.session.Registry.Definitions()
	out := make([]DefinitionSummary, 0, len(defs))
	for _, d := range defs {
		sum := DefinitionSummary{
			Name:      d.Name(),
			Files:     config.DefaultFilesPattern,
			Classpath: d.DependencyClasspath(),
			Standard:  definition.IsStandard(d),
		}
		if c, ok := d.(*definition.Configured); ok {
			cfg := c.Config()
			sum.Files = cfg.Files
			sum.Parameters = len(cfg.Parameters)
			sum.Supertypes = len(cfg.Supertypes)
		}
		out = append(out, sum)
	}
	return out
}

// Classification is the script kind of one file.
type Classification struct {
	File       string
	IsScript   bool
	Definition string
	// Shadowed lists later definitions that also match the file.
	Shadowed []string
}

// Classify classifies each path.
func (a *App) Classify(paths []string) []Classification {
	out := make([]Classification, 0, len(paths))
	for _, p := range paths {
		f := fileid.New(p)
		c := Classification{File: f.Path()}
		matches := a.session.Registry.MatchingDefinitions(f)
		if len(matches) > 0 {
			c.IsScript = true
			c.Definition = matches[0].Name()
			for _, m := range matches[1:] {
				c.Shadowed = append(c.Shadowed, m.Name())
			}
		}
		out = append(out, c)
	}
	return out
}

// Description is the wrapper class shape of one script file.
type Description struct {
	File       string
	Definition string
	ClassName  string
	Parameters []definition.Parameter
	Supertypes []types.Type
	Bindings   []definition.Parameter
	Classpath  []string
}

// Describe resolves the metadata of the definition path belongs to.
func (a *App) Describe(path string) (*Description, error) {
	f := fileid.New(path)
	def := a.session.Registry.FindDefinition(f)
	if def == nil {
		return nil, fmt.Errorf("%s is not a script", f.Path())
	}

	params, err := def.Parameters(a.types)
	if err != nil {
		return nil, err
	}
	supertypes, err := def.Supertypes(a.types)
	if err != nil {
		return nil, err
	}
	bindings, err := def.ConstructorBindings(a.types)
	if err != nil {
		return nil, err
	}

	return &Description{
		File:       f.Path(),
		Definition: def.Name(),
		ClassName:  definition.ScriptClassName(f),
		Parameters: params,
		Supertypes: supertypes,
		Bindings:   bindings,
		Classpath:  def.DependencyClasspath(),
	}, nil
}

// ScopeResult is the outcome of scope resolution for one file.
type ScopeResult struct {
	File      string
	Owner     string
	Names     []string
	Classpath []string
	Err       error
}

// ResolveScopes resolves the file scopes of paths in parallel, using at most
// the configured number of workers. Per-file failures are reported in the
// results; the returned error is only set when ctx is cancelled.
func (a *App) ResolveScopes(ctx context.Context, paths []string) ([]ScopeResult, error) {
	ctx = ctxlog.WithLogger(ctx, ctxlog.FromContext(a.ctx))
	logger := ctxlog.FromContext(ctx)

	results := make([]ScopeResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.Workers)

	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f := fileid.New(p)
			res := ScopeResult{File: f.Path()}
			s, err := a.session.FileScopes(gctx, f)
			if err != nil {
				logger.Warn("Scope resolution failed.", "file", f.Path(), "error", err)
				res.Err = err
			} else {
				res.Owner = s.Lexical.Owner()
				res.Names = s.Lexical.Names()
				res.Classpath = s.Imports.Classpath()
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("Scopes resolved.", "files", len(paths), "cached", a.session.Scopes.Len())
	return results, nil
}

// EncodeDefinitions renders the loaded (non-standard) definitions in format
// "hcl" or "yaml".
func (a *App) EncodeDefinitions(format string) ([]byte, error) {
	var cfgs []*config.ScriptDefinition
	for _, d := range a.session.Registry.Definitions() {
		if c, ok := d.(*definition.Configured); ok {
			cfgs = append(cfgs, c.Config())
		}
	}

	switch format {
	case "hcl":
		return hclconfig.Encode(cfgs), nil
	case "yaml":
		return yamlconfig.Encode(cfgs)
	default:
		return nil, fmt.Errorf("unknown format %q: must be 'hcl' or 'yaml'", format)
	}
}
