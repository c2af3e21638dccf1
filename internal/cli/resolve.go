package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/facet/internal/buildgraph"
	"github.com/leapstack-labs/facet/internal/resolver"
)

// newResolveCommand creates the resolve command.
func newResolveCommand() *cobra.Command {
	var allowUnbound bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Evaluate build files and bind facades to backends",
		Long: `Evaluate all BUILD.star files, bind each facade to its configured
backend, and validate the resulting target graph. The command fails when a
facade has no backend bound, naming the facade; --allow-unbound downgrades
that to a warning so the partial graph can be examined.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := resolver.New(cfg, logger).Resolve(cmd.Context())
			if err != nil {
				var missing *buildgraph.MissingBackendError
				if allowUnbound && errors.As(err, &missing) {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
				} else {
					return err
				}
			}

			if cfg.Output == "yaml" {
				return writeGraphYAML(cmd, res.Graph)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Resolved %d build files\n", len(res.Files))
			fmt.Fprintf(cmd.OutOrStdout(), "Targets: %d (%d facades)\n", res.Targets, res.Facades)
			for _, name := range res.Unbound {
				fmt.Fprintf(cmd.OutOrStdout(), "  unbound: %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&allowUnbound, "allow-unbound", false,
		"Report unbound facades as warnings instead of failing")
	return cmd
}

// yamlTarget is the serialized form of a target for --output yaml.
type yamlTarget struct {
	Name    string   `yaml:"name"`
	Kind    string   `yaml:"kind"`
	Sources []string `yaml:"srcs,omitempty"`
	Public  []string `yaml:"public,omitempty"`
	Deps    []string `yaml:"deps,omitempty"`
	Script  string   `yaml:"script,omitempty"`
	Args    []string `yaml:"args,omitempty"`
}

// writeGraphYAML emits the resolved graph in declaration order.
func writeGraphYAML(cmd *cobra.Command, g *buildgraph.Graph) error {
	out := make([]yamlTarget, 0, g.Len())
	for _, t := range g.Targets() {
		out = append(out, yamlTarget{
			Name:    t.Name,
			Kind:    string(t.Kind),
			Sources: t.Sources,
			Public:  t.Public,
			Deps:    t.Deps,
			Script:  t.Script,
			Args:    t.Args,
		})
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(map[string]any{"targets": out})
}
