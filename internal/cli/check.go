package cli

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/graphmesh/gqltel/internal/config"
)

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate telemetry attribute configuration",
		Long: `Load and compile the attribute-selector configuration.

Validation is strict: unknown fields, ambiguous selector objects and
mistyped defaults all fail the check. A configuration that passes check
will load on a running router.`,
		RunE: runCheck,
	}

	cmd.Flags().Bool("print", false, "print the parsed attribute configuration as YAML")
	config.RegisterFlags(cmd.Flags())

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	configPath := resolveConfigPath()

	loader, err := config.NewLoaderWithFlags(configPath, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg, err := loader.Get()
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	provider := config.NewProvider(cfg)
	attrs, err := provider.Attributes()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d router, %d supergraph, %d subgraph attributes)\n",
		configPath, attrs.Router.Len(), attrs.Supergraph.Len(), attrs.Subgraph.Len())

	if print, _ := cmd.Flags().GetBool("print"); print {
		// Round-trips the raw selector objects, including reserved fields
		// like redact that evaluation does not consume.
		out, err := yaml.Marshal(cfg.Telemetry.Attributes)
		if err != nil {
			return fmt.Errorf("failed to render configuration: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
	}

	return nil
}
