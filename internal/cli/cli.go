package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/scriptdefs/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// flags holds the persistent flag values shared by every command.
type flags struct {
	root      string
	logFormat string
	logLevel  string
	typeDefs  []string
	workers   int
}

// env carries the app built by the root command to its subcommands.
type env struct {
	flags flags
	app   *app.App
}

// NewRootCommand builds the scriptdefs command tree. Command output goes to
// out; logs and diagnostics go to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	e := &env{}

	cmd := &cobra.Command{
		Use:   "scriptdefs",
		Short: "Inspect script definitions of a project",
		Long: `scriptdefs loads the script definition files (*.ktscfg.hcl, *.ktscfg.yaml)
of a project root and answers which script kind a file belongs to, which
implicit parameters and supertypes its wrapper class gets, and what its
resolved top-level scope looks like.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.init(errOut)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if e.app == nil {
				return nil
			}
			return e.app.Close()
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	pf := cmd.PersistentFlags()
	pf.StringVarP(&e.flags.root, "root", "r", ".", "Project root containing script definition files.")
	pf.StringVar(&e.flags.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.StringVar(&e.flags.logLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringArrayVarP(&e.flags.typeDefs, "type", "t", nil, "Named type definition NAME=EXPR, e.g. org.example.Env='map(string)'. Repeatable.")
	pf.IntVarP(&e.flags.workers, "workers", "w", app.DefaultWorkers, "Number of concurrent scope resolution workers.")

	cmd.AddCommand(
		newDefinitionsCommand(e),
		newClassifyCommand(e),
		newDescribeCommand(e),
		newScopesCommand(e),
		newEncodeCommand(e),
		newDiagnosticsCommand(e),
	)
	return cmd
}

func (e *env) init(errOut io.Writer) error {
	cfg, err := app.NewConfig(app.Config{
		Root:      e.flags.root,
		LogFormat: strings.ToLower(e.flags.logFormat),
		LogLevel:  strings.ToLower(e.flags.logLevel),
		TypeDefs:  e.flags.typeDefs,
		Workers:   e.flags.workers,
	})
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	a, err := app.NewApp(errOut, cfg)
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}
	e.app = a
	return nil
}

// Execute runs the command tree with args and maps failures to ExitError.
func Execute(args []string, out, errOut io.Writer) error {
	cmd := NewRootCommand(out, errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: 2, Message: fmt.Sprintf("Error: %v", err)}
}
