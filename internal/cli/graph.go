package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/facet/internal/buildgraph"
	"github.com/leapstack-labs/facet/internal/resolver"
)

// newGraphCommand creates the graph command.
func newGraphCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show the resolved target graph",
		Long: `Resolve the project and print the target graph in topological
order. Unbound facades are listed but do not stop the listing; the command
still exits non-zero so scripts notice.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := resolver.New(cfg, logger).Resolve(cmd.Context())
			var missing *buildgraph.MissingBackendError
			if err != nil && !errors.As(err, &missing) {
				return err
			}

			sorted, sortErr := res.Graph.Sort()
			if sortErr != nil {
				return sortErr
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"Target", "Kind", "Deps", "Sources"})
			for _, t := range sorted {
				tw.AppendRow(table.Row{
					t.Name,
					string(t.Kind),
					strings.Join(t.Deps, "\n"),
					summarizeFiles(t),
				})
			}
			tw.SetStyle(table.StyleLight)
			tw.Render()

			fmt.Fprintf(cmd.OutOrStdout(), "\n%d targets, %d edges\n",
				res.Graph.Len(), res.Graph.EdgeCount())

			return err
		},
	}
	return cmd
}

// summarizeFiles renders a target's file content for the table: public
// surface for interface targets, sources otherwise, the planted action's
// script for unbound facades.
func summarizeFiles(t *buildgraph.Target) string {
	if t.Script != "" {
		return t.Script + " " + strings.Join(t.Args, " ")
	}
	if len(t.Sources) == 0 {
		return strings.Join(t.Public, "\n")
	}
	return strings.Join(t.Sources, "\n")
}
