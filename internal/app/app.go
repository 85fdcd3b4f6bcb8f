package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/scriptdefs/internal/ctxlog"
	"github.com/vk/scriptdefs/internal/session"
	"github.com/vk/scriptdefs/internal/types"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger  *slog.Logger
	ctx     context.Context
	config  *Config
	types   *types.Table
	session *session.Session
}

// NewApp builds the logger, the type context and the analysis session, and
// loads the definition files of cfg.Root. Log records go to logW.
func NewApp(logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	tbl := types.NewTable()
	if err := tbl.DefineAll(cfg.TypeDefs); err != nil {
		return nil, fmt.Errorf("invalid type definitions: %w", err)
	}
	logger.Debug("Type context configured.", "named_types", len(cfg.TypeDefs))

	sess, err := session.New(ctx, session.Options{Root: cfg.Root, Types: tbl})
	if err != nil {
		return nil, err
	}

	return &App{
		logger:  logger,
		ctx:     sess.WithLogger(ctx),
		config:  cfg,
		types:   tbl,
		session: sess,
	}, nil
}

// Session returns the application's analysis session. This is primarily
// for testing.
func (a *App) Session() *session.Session {
	return a.session
}

// Context returns the application's base context, carrying its logger.
func (a *App) Context() context.Context {
	return a.ctx
}

// Diagnostics returns the diagnostics recorded while loading definitions.
func (a *App) Diagnostics() hcl.Diagnostics {
	return a.session.Trace.Diagnostics()
}

// Close ends the session.
func (a *App) Close() error {
	return a.session.Close(a.ctx)
}
