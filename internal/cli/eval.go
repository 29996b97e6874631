package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/graphmesh/gqltel/internal/config"
	"github.com/graphmesh/gqltel/internal/fixture"
	"github.com/graphmesh/gqltel/internal/probe"
)

// NewEvalCmd creates the eval command
func NewEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate configured selectors against a recorded exchange",
		Long: `Evaluate the configured attribute selectors against a recorded pipeline
exchange and print the extracted attributes per tier and phase.

The fixture file (YAML or JSON) carries the edge request and response, the
parsed operation, an optional subgraph call, and the ambient trace id,
baggage and pipeline context active at recording time.`,
		RunE: runEval,
	}

	cmd.Flags().String("fixture", "", "recorded exchange file (required)")
	_ = cmd.MarkFlagRequired("fixture")
	config.RegisterFlags(cmd.Flags())

	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
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
	logger, err := provider.Logger()
	if err != nil {
		return err
	}
	observer := probe.NewEvaluationObserver(logger)

	fixturePath, _ := cmd.Flags().GetString("fixture")
	exchange, err := fixture.LoadExchange(fixturePath)
	if err != nil {
		return fmt.Errorf("failed to load fixture: %w", err)
	}

	ctx, err := exchange.Ambient(cmd.Context())
	if err != nil {
		return fmt.Errorf("invalid ambient state in fixture: %w", err)
	}
	observer.ConfigLoaded(ctx, configPath, attrs.Router.Len(), attrs.Supergraph.Len(), attrs.Subgraph.Len())

	pc := exchange.PipelineContext()

	printTier := func(tier, phase string, kvs []attribute.KeyValue) {
		observer.TierEvaluated(ctx, tier, phase, kvs)
		for _, kv := range kvs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s/%s  %s=%s\n", tier, phase, kv.Key, kv.Value.Emit())
		}
	}

	printTier("router", "request", attrs.Router.EvaluateRequest(ctx, exchange.RouterRequest(pc)))
	printTier("router", "response", attrs.Router.EvaluateResponse(ctx, exchange.RouterResponse(pc)))

	superReq, err := exchange.SupergraphRequest(pc)
	if err != nil {
		return fmt.Errorf("invalid fixture request: %w", err)
	}
	printTier("supergraph", "request", attrs.Supergraph.EvaluateRequest(ctx, superReq))
	printTier("supergraph", "response", attrs.Supergraph.EvaluateResponse(ctx, exchange.SupergraphResponse(pc)))

	subReq, err := exchange.SubgraphRequest(pc)
	if err != nil {
		return fmt.Errorf("invalid fixture subgraph request: %w", err)
	}
	if subReq != nil {
		printTier("subgraph", "request", attrs.Subgraph.EvaluateRequest(ctx, subReq))
		printTier("subgraph", "response", attrs.Subgraph.EvaluateResponse(ctx, exchange.SubgraphResponse(pc)))
	}

	return nil
}
