// Package session wires together the state of one analysis session: the
// definition registry, the type context, the analysis trace and the cached
// file scope provider. Each session is independent; nothing is global.
package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/scriptdefs/internal/config"
	"github.com/vk/scriptdefs/internal/configload"
	"github.com/vk/scriptdefs/internal/ctxlog"
	"github.com/vk/scriptdefs/internal/fileid"
	"github.com/vk/scriptdefs/internal/filescope"
	"github.com/vk/scriptdefs/internal/registry"
	"github.com/vk/scriptdefs/internal/scriptscope"
	"github.com/vk/scriptdefs/internal/trace"
	"github.com/vk/scriptdefs/internal/types"
)

// Options configures a new Session. Zero values select the defaults.
type Options struct {
	// Root is the project root scanned for definition files. Empty skips
	// loading and keeps the standard definition only.
	Root string
	// Loader reads definition files; defaults to every supported format.
	Loader config.Loader
	// Types resolves type names; defaults to an empty types.Table.
	Types types.Context
	// Factory builds file scopes; defaults to scriptscope.Factory.
	Factory filescope.Factory
}

// Session is the state of one analysis session.
type Session struct {
	ID       uuid.UUID
	Registry *registry.Registry
	Types    types.Context
	Trace    *trace.Memory
	Mutators *filescope.Mutators
	Scopes   *filescope.Caching

	root   string
	loader config.Loader
}

// New creates a session and loads the definition files under opts.Root.
// Malformed definition files are reported to the trace, not returned; the
// error is non-nil only when the root cannot be scanned.
func New(ctx context.Context, opts Options) (*Session, error) {
	s := &Session{
		ID:       uuid.New(),
		Registry: registry.New(),
		Types:    opts.Types,
		Trace:    trace.NewMemory(),
		Mutators: filescope.NewMutators(),
		root:     opts.Root,
		loader:   opts.Loader,
	}
	if s.Types == nil {
		s.Types = types.NewTable()
	}
	if s.loader == nil {
		s.loader = configload.Default()
	}
	factory := opts.Factory
	if factory == nil {
		factory = scriptscope.NewFactory(s.Registry, s.Types)
	}
	s.Scopes = filescope.NewCaching(factory, s.Mutators, s.Trace)

	ctx = s.WithLogger(ctx)
	ctxlog.FromContext(ctx).Debug("Session created.", "root", s.root)

	if s.root != "" {
		if err := s.Reload(ctx); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// WithLogger returns ctx with its logger tagged with the session ID.
func (s *Session) WithLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, ctxlog.FromContext(ctx).With("session", s.ID.String()))
}

// Reload scans the project root again and installs what it finds. Cached
// file scopes are kept; they belong to the files, not to the definitions.
func (s *Session) Reload(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	res, err := s.loader.Load(ctx, s.root)
	if err != nil {
		return fmt.Errorf("failed to load script definitions from %s: %w", s.root, err)
	}
	s.Trace.Report(res.Diagnostics...)

	loaded, diags := s.Registry.LoadDefinitions(ctx, res)
	s.Trace.Report(diags...)

	logger.Info("Script definitions loaded.", "root", s.root, "loaded", loaded, "diagnostics", len(res.Diagnostics)+len(diags))
	return nil
}

// IsScript reports whether file belongs to any registered script kind.
func (s *Session) IsScript(file fileid.Identity) bool {
	return s.Registry.IsScript(file)
}

// FileScopes returns the cached scopes of file.
func (s *Session) FileScopes(ctx context.Context, file fileid.Identity) (filescope.Scopes, error) {
	return s.Scopes.FileScopes(ctx, file)
}

// Close ends the session, discarding cached scopes and trace contents.
func (s *Session) Close(ctx context.Context) error {
	ctxlog.FromContext(ctx).Debug("Session closed.", "session", s.ID.String(), "cached_files", s.Scopes.Len())
	s.Scopes.Discard()
	s.Trace.Clear()
	return nil
}
