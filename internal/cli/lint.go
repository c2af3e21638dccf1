package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/facet/internal/buildfile"
)

// newLintCommand creates the lint command.
func newLintCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Statically check build files without executing them",
		Long: `Parse every BUILD.star file and list its declarations. Nothing is
executed: syntax errors and non-literal target names are reported from the
AST alone.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader := buildfile.NewLoader(cfg.BuildDir, nil)
			files, err := loader.Discover()
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No build files found under %s\n", cfg.BuildDir)
				return nil
			}

			var failed bool
			for _, path := range files {
				content, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}

				rel, relErr := filepath.Rel(cfg.BuildDir, path)
				if relErr != nil {
					rel = path
				}

				decls, err := buildfile.Inspect(path, content)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", rel, err)
					failed = true
					continue
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d declarations)\n", rel, len(decls))
				for _, d := range decls {
					name := d.Name
					if name == "" {
						name = "<computed>"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "  %4d: %s %s\n", d.Line, d.Kind, name)
				}
			}

			if failed {
				return fmt.Errorf("lint found errors")
			}
			return nil
		},
	}
	return cmd
}
