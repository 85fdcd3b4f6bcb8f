package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/vk/scriptdefs/internal/definition"
)

func newDefinitionsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "definitions",
		Short: "List registered script definitions in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"#", "Name", "Files", "Parameters", "Supertypes", "Classpath"})
			table.SetBorder(false)
			table.SetAutoWrapText(false)

			for i, d := range e.app.Definitions() {
				name := d.Name
				if d.Standard {
					name += " (standard)"
				}
				table.Append([]string{
					strconv.Itoa(i + 1),
					name,
					d.Files,
					strconv.Itoa(d.Parameters),
					strconv.Itoa(d.Supertypes),
					strings.Join(d.Classpath, ", "),
				})
			}
			table.Render()
			return nil
		},
	}
}

func newClassifyCommand(e *env) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "classify FILE...",
		Short: "Show which script definition each file belongs to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, c := range e.app.Classify(args) {
				if !c.IsScript {
					fmt.Fprintf(out, "%s\t-\n", c.File)
					continue
				}
				if all && len(c.Shadowed) > 0 {
					fmt.Fprintf(out, "%s\t%s\t(shadows %s)\n", c.File, c.Definition, strings.Join(c.Shadowed, ", "))
					continue
				}
				fmt.Fprintf(out, "%s\t%s\n", c.File, c.Definition)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Also list matching definitions shadowed by the first match.")
	return cmd
}

func newDescribeCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "describe FILE",
		Short: "Show the wrapper class a script file is compiled into",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := e.app.Describe(args[0])
			if err != nil {
				return &ExitError{Code: 1, Message: err.Error()}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:        %s\n", d.File)
			fmt.Fprintf(out, "definition:  %s\n", d.Definition)
			fmt.Fprintf(out, "class:       %s\n", d.ClassName)
			fmt.Fprintf(out, "parameters:  %s\n", formatParams(d.Parameters))
			supers := make([]string, len(d.Supertypes))
			for i, s := range d.Supertypes {
				supers[i] = s.Name
			}
			fmt.Fprintf(out, "supertypes:  %s\n", strings.Join(supers, ", "))
			fmt.Fprintf(out, "bindings:    %s\n", formatParams(d.Bindings))
			fmt.Fprintf(out, "classpath:   %s\n", strings.Join(d.Classpath, ", "))
			return nil
		},
	}
}

func formatParams(params []definition.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + ": " + p.Type.Name
	}
	return strings.Join(parts, ", ")
}

func newScopesCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "scopes FILE...",
		Short: "Resolve the top-level scope of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := e.app.ResolveScopes(cmd.Context(), args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Fprintf(out, "%s\terror: %v\n", r.File, r.Err)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\t[%s]\n", r.File, r.Owner, strings.Join(r.Names, ", "))
			}
			if failed > 0 {
				return &ExitError{Code: 1, Message: fmt.Sprintf("%d of %d files failed scope resolution", failed, len(results))}
			}
			return nil
		},
	}
}

func newEncodeCommand(e *env) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the loaded script definitions in a definition file format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := e.app.EncodeDefinitions(strings.ToLower(format))
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			_, err = cmd.OutOrStdout().Write(src)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "hcl", "Output format. Options: 'hcl' or 'yaml'.")
	return cmd
}

func newDiagnosticsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "diagnostics",
		Short: "Print problems found while loading script definition files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			diags := e.app.Diagnostics()
			if len(diags) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No problems found.")
				return nil
			}
			wr := hcl.NewDiagnosticTextWriter(cmd.OutOrStdout(), nil, 100, false)
			if err := wr.WriteDiagnostics(diags); err != nil {
				return err
			}
			if diags.HasErrors() {
				return &ExitError{Code: 1, Message: fmt.Sprintf("%d definition problems found", len(diags))}
			}
			return nil
		},
	}
}
