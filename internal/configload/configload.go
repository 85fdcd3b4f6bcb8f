// Package configload combines the format-specific definition loaders into a
// single config.Loader.
package configload

import (
	"context"

	"github.com/vk/scriptdefs/internal/config"
	"github.com/vk/scriptdefs/internal/ctxlog"
	"github.com/vk/scriptdefs/internal/hclconfig"
	"github.com/vk/scriptdefs/internal/yamlconfig"
)

// Multi runs its loaders in order and concatenates their results.
type Multi struct {
	loaders []config.Loader
}

// New returns a Multi over the given loaders.
func New(loaders ...config.Loader) *Multi {
	return &Multi{loaders: loaders}
}

// Default returns the loader for every supported format: HCL definitions
// first, then YAML.
func Default() *Multi {
	return New(hclconfig.NewLoader(), yamlconfig.NewLoader())
}

// Load implements config.Loader. The first loader error aborts the scan,
// since it means the root itself is unreadable.
func (m *Multi) Load(ctx context.Context, root string) (*config.Result, error) {
	result := &config.Result{}
	for _, l := range m.loaders {
		r, err := l.Load(ctx, root)
		if err != nil {
			return nil, err
		}
		result.Merge(r)
	}
	ctxlog.FromContext(ctx).Info("Script definition files scanned.", "root", root, "definitions", len(result.Definitions), "diagnostics", len(result.Diagnostics))
	return result, nil
}
