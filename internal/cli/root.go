// Package cli provides the command-line interface for Facet.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/facet/internal/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "facet",
		Short: "Facet - Build Configuration Resolver",
		Long: `Facet resolves build configuration for embedded projects.

Build files (BUILD.star) declare targets and facades; facet binds each
facade to the backend configured in facet.yaml, validates the target
graph, and reports unbound facades before anything is compiled.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./facet.yaml)")
	rootCmd.PersistentFlags().String("build-dir", "", "Directory searched for BUILD.star files")
	rootCmd.PersistentFlags().String("state", "", "Path to the state database")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (text|yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newResolveCommand())
	rootCmd.AddCommand(newGraphCommand())
	rootCmd.AddCommand(newLintCommand())
	rootCmd.AddCommand(newArgsCommand())
	rootCmd.AddCommand(newRunsCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
