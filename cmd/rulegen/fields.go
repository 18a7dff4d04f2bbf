package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rulegen/internal/analyze"
)

func newFieldsCmd(a *app) *cobra.Command {
	var (
		typeName string
		paths    bool
	)

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the accessor names of a Go type",
		Long: `Lists the names a Go type exposes to mapping directives: JSON field names
followed by getter names. With --paths, lists every nested field path instead,
marking collections with [].`,
		Example: `  rulegen fields --packages ./hr --type hr.Employee
  rulegen fields --packages ./hr --type hr.Employee --paths --max-depth 3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(a.cfg.Packages) == 0 {
				return errors.New("no packages configured; use --packages")
			}

			graph, err := a.loadGraph()
			if err != nil {
				return err
			}

			t := analyze.ResolveTypeID(typeName, graph)
			if t == nil {
				return fmt.Errorf("type %q not found in %s", typeName, strings.Join(a.cfg.Packages, ", "))
			}

			names := analyze.AccessorNames(t)
			if paths {
				names = analyze.NewTypeStringer().FieldPaths(t, a.cfg.MaxDepth)
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				if _, err := fmt.Fprintln(out, name); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "type to inspect: Name, pkg.Name or full/path.Name")
	cmd.Flags().BoolVar(&paths, "paths", false, "list nested field paths instead of accessor names")
	cmd.Flags().StringSlice("packages", nil, "Go package patterns to load type information from")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}
