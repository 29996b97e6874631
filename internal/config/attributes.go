package config

import (
	"fmt"

	"github.com/graphmesh/gqltel/internal/pipeline"
	"github.com/graphmesh/gqltel/internal/telemetry"
	"github.com/graphmesh/gqltel/internal/telemetry/selector"
)

// Attributes holds the compiled attribute sets for all three pipeline tiers.
type Attributes struct {
	Router     telemetry.AttributeSet[*pipeline.RouterRequest, *pipeline.RouterResponse]
	Supergraph telemetry.AttributeSet[*pipeline.SupergraphRequest, *pipeline.SupergraphResponse]
	Subgraph   telemetry.AttributeSet[*pipeline.SubgraphRequest, *pipeline.SubgraphResponse]
}

// NewAttributes compiles the raw attribute configuration into evaluable
// selector sets. Any invalid selector fails the whole build; a misconfigured
// selector is never silently dropped.
func NewAttributes(cfg AttributesConfig) (*Attributes, error) {
	router := make(map[string]selector.Router, len(cfg.Router))
	for name, sc := range cfg.Router {
		sel, err := selector.DecodeRouter(sc)
		if err != nil {
			return nil, fmt.Errorf("router attribute %q: %w", name, err)
		}
		router[name] = sel
	}

	supergraph := make(map[string]selector.Supergraph, len(cfg.Supergraph))
	for name, sc := range cfg.Supergraph {
		sel, err := selector.DecodeSupergraph(sc)
		if err != nil {
			return nil, fmt.Errorf("supergraph attribute %q: %w", name, err)
		}
		supergraph[name] = sel
	}

	subgraph := make(map[string]selector.Subgraph, len(cfg.Subgraph))
	for name, sc := range cfg.Subgraph {
		sel, err := selector.DecodeSubgraph(sc)
		if err != nil {
			return nil, fmt.Errorf("subgraph attribute %q: %w", name, err)
		}
		subgraph[name] = sel
	}

	return &Attributes{
		Router:     telemetry.NewAttributeSet(router),
		Supergraph: telemetry.NewAttributeSet(supergraph),
		Subgraph:   telemetry.NewAttributeSet(subgraph),
	}, nil
}
