package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
)

// NewRootCmd creates the root command for gqltel
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gqltel",
		Short: "gqltel - telemetry attribute-selector engine for federated GraphQL pipelines",
		Long: `gqltel compiles declarative attribute selectors and evaluates them against
pipeline traffic. Selectors extract telemetry attribute values (headers,
context entries, baggage, trace ids, operation metadata, response bodies)
at three tiers: router (edge HTTP), supergraph (federated operation) and
subgraph (per-backend fetch).

The CLI works offline: it validates selector configuration and evaluates it
against recorded exchanges.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: ./configs/gqltel.yaml)")

	// Add subcommands
	rootCmd.AddCommand(NewCheckCmd())
	rootCmd.AddCommand(NewEvalCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveConfigPath applies the --config flag, GQLTEL_CONFIG, then the default.
func resolveConfigPath() string {
	path := configFile
	if path == "" {
		path = os.Getenv("GQLTEL_CONFIG")
	}
	if path == "" {
		path = "./configs/gqltel.yaml"
	}
	return path
}
