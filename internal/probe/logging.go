// Package probe provides structured-logging observers for configuration
// loading and selector evaluation. Observers are passive: they record what
// happened and never influence evaluation results.
package probe

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
)

// EvaluationObserver logs selector-engine events using structured logging
// with slog.
type EvaluationObserver struct {
	logger *slog.Logger
}

// NewEvaluationObserver creates an observer backed by the given logger.
func NewEvaluationObserver(logger *slog.Logger) *EvaluationObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &EvaluationObserver{
		logger: logger,
	}
}

// ConfigLoaded records a successful configuration build.
func (o *EvaluationObserver) ConfigLoaded(ctx context.Context, path string, routerN, supergraphN, subgraphN int) {
	o.logger.LogAttrs(ctx, slog.LevelDebug, "Telemetry attribute configuration loaded",
		slog.String("path", path),
		slog.Int("router_attributes", routerN),
		slog.Int("supergraph_attributes", supergraphN),
		slog.Int("subgraph_attributes", subgraphN),
	)
}

// TierEvaluated records the outcome of evaluating one tier at one phase.
func (o *EvaluationObserver) TierEvaluated(ctx context.Context, tier, phase string, attrs []attribute.KeyValue) {
	logAttrs := []slog.Attr{
		slog.String("tier", tier),
		slog.String("phase", phase),
		slog.Int("attribute_count", len(attrs)),
	}
	for _, kv := range attrs {
		logAttrs = append(logAttrs, slog.String("attr."+string(kv.Key), kv.Value.Emit()))
	}
	o.logger.LogAttrs(ctx, slog.LevelDebug, "Evaluated telemetry attributes", logAttrs...)
}
