package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/facet/internal/preproc"
)

// newArgsCommand creates the args command group: the preprocessor argument
// toolkit on the command line, mostly useful for debugging macro payloads.
func newArgsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "args",
		Short: "Inspect variadic argument payloads",
		Long: `Apply the argument toolkit to a payload string: count the
arguments, classify empty versus non-empty, or render the comma-elided
forwarding form. The payload is everything after the subcommand, so quoting
the whole list as one shell argument is not required.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "count [payload]",
		Short: "Count the arguments in a payload (0-64)",
		RunE: func(cmd *cobra.Command, args []string) error {
			list := preproc.Split(strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), preproc.Count(list))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "empty [payload]",
		Short: "Classify a payload as empty or non-empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			list := preproc.Split(strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), preproc.Detect(list))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "comma [payload]",
		Short: "Render the comma-elided forwarding form",
		RunE: func(cmd *cobra.Command, args []string) error {
			list := preproc.Split(strings.Join(args, " "))
			fmt.Fprintf(cmd.OutOrStdout(), "%q\n", preproc.CommaArgs(list))
			return nil
		},
	})

	return cmd
}
