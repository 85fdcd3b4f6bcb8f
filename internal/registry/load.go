package registry

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/scriptdefs/internal/config"
	"github.com/vk/scriptdefs/internal/ctxlog"
	"github.com/vk/scriptdefs/internal/definition"
)

// LoadDefinitions builds definitions from a configuration scan and installs
// them. Configs that cannot be turned into a definition are reported and
// skipped. When nothing usable was loaded the registry is left untouched;
// otherwise the loaded definitions, followed by the standard definition,
// replace the whole list. It returns the number of loaded definitions.
func (r *Registry) LoadDefinitions(ctx context.Context, res *config.Result) (int, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)

	var diags hcl.Diagnostics
	defs := make([]definition.Definition, 0, len(res.Definitions)+1)
	for _, s := range res.Definitions {
		d, err := definition.FromConfig(s.Definition)
		if err != nil {
			logger.Warn("Skipping unusable script definition.", "file", s.Source.File, "element", s.Source.Element, "error", err)
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Skipped malformed script definition",
				Detail:   fmt.Sprintf("Element %d of %s was skipped: %s", s.Source.Element, s.Source.File, err),
				Subject:  s.Source.Range.Ptr(),
			})
			continue
		}
		defs = append(defs, d)
	}

	if len(defs) == 0 {
		logger.Info("No script definitions loaded, keeping current definitions.", "current", len(r.snapshot()))
		return 0, diags
	}

	loaded := len(defs)
	defs = append(defs, definition.Standard())
	if err := r.ReplaceAll(defs); err != nil {
		// defs is non-empty and nil-free here.
		panic(err)
	}
	logger.Info("Script definitions installed.", "loaded", loaded)
	return loaded, diags
}
