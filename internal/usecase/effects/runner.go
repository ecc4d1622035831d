package effects

import (
	"context"
	"log/slog"

	"voucher-engine/internal/observability/metrics"
)

// Effect names used as metric labels.
const (
	ScanRecord        = "scan_record"
	ScanCount         = "scan_count"
	CacheInvalidation = "cache_invalidation"
	CacheFill         = "cache_fill"
)

// Runner executes best-effort side effects. Failures are logged and counted
// and never returned to the caller.
type Runner interface {
	Run(ctx context.Context, name string, fn func(ctx context.Context) error)
}

type runner struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewRunner(logger *slog.Logger, m *metrics.Metrics) Runner {
	return &runner{logger: logger, metrics: m}
}

func (r *runner) Run(ctx context.Context, name string, fn func(ctx context.Context) error) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.ErrorContext(ctx, "non-critical effect panicked", "effect", name, "panic", p)
			r.metrics.ObserveEffectFailure(name)
		}
	}()

	if err := fn(ctx); err != nil {
		r.logger.WarnContext(ctx, "non-critical effect failed", "effect", name, "error", err.Error())
		r.metrics.ObserveEffectFailure(name)
	}
}
