package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load scans root for configuration files of the loader's format and
	// decodes every element it can. Malformed files and elements are
	// reported in Result.Diagnostics and skipped. An error is returned only
	// when root itself cannot be read.
	Load(ctx context.Context, root string) (*Result, error)
}

// Source locates a decoded definition in its configuration file.
type Source struct {
	File    string
	Element int
	Range   hcl.Range
}

// Sourced is a decoded definition together with where it came from.
type Sourced struct {
	Definition *ScriptDefinition
	Source     Source
}

// Result is the outcome of a configuration scan.
type Result struct {
	Definitions []*Sourced
	Diagnostics hcl.Diagnostics
}

// Merge appends other to r, preserving order.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Definitions = append(r.Definitions, other.Definitions...)
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}
