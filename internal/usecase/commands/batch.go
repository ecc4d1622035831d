package commands

import (
	"context"
	"log/slog"
	"strings"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/observability/tracing"
	"voucher-engine/internal/pkg/clock"
	"voucher-engine/internal/pkg/config"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/usecase/queries"
	"voucher-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

type BatchOperation string

const (
	BatchExpire   BatchOperation = "expire"
	BatchActivate BatchOperation = "activate"
	BatchValidate BatchOperation = "validate"
)

func ParseBatchOperation(s string) (BatchOperation, error) {
	switch op := BatchOperation(strings.ToLower(strings.TrimSpace(s))); op {
	case BatchExpire, BatchActivate, BatchValidate:
		return op, nil
	default:
		return "", errs.Validation("unknown batch operation %q", s)
	}
}

// BatchItemResult is the outcome for one voucher. Validation is only set for
// the validate operation.
type BatchItemResult struct {
	VoucherID  uuid.UUID
	Success    bool
	Error      string
	Validation *queries.ValidationResult
}

type BatchResult struct {
	ProcessedCount int
	SuccessCount   int
	FailedCount    int
	Results        []BatchItemResult
}

type BatchCommands interface {
	BatchProcess(ctx context.Context, voucherIDs []uuid.UUID, op string, opts queries.ValidateOptions) (*BatchResult, error)
	ExpireDue(ctx context.Context, limit int) (*BatchResult, error)
}

type batchUseCaseImpl struct {
	vouchers       VoucherCommands
	voucherQueries queries.VoucherQueries
	uow            shared.UnitOfWork
	clock          clock.Clock
	logger         *slog.Logger
	cfg            config.BatchConfig
}

func NewBatchUseCase(
	vouchers VoucherCommands,
	voucherQueries queries.VoucherQueries,
	uow shared.UnitOfWork,
	clk clock.Clock,
	logger *slog.Logger,
	cfg config.BatchConfig,
) BatchCommands {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	return &batchUseCaseImpl{
		vouchers:       vouchers,
		voucherQueries: voucherQueries,
		uow:            uow,
		clock:          clk,
		logger:         logger,
		cfg:            cfg,
	}
}

// BatchProcess applies op to every voucher independently. A failing item is
// recorded in its result slot and never stops the others. Results keep the
// input order.
func (b *batchUseCaseImpl) BatchProcess(
	ctx context.Context,
	voucherIDs []uuid.UUID,
	op string,
	opts queries.ValidateOptions,
) (res *BatchResult, err error) {
	ctx, span := tracing.Start(ctx, "voucher.BatchProcess",
		attribute.String("batch.operation", op),
		attribute.Int("batch.size", len(voucherIDs)))
	defer func() { tracing.End(span, err) }()

	operation, err := ParseBatchOperation(op)
	if err != nil {
		return nil, err
	}

	results := make([]BatchItemResult, len(voucherIDs))
	var g errgroup.Group
	g.SetLimit(b.cfg.Concurrency)
	for i, id := range voucherIDs {
		g.Go(func() error {
			results[i] = b.processOne(ctx, id, operation, opts)
			return nil
		})
	}
	_ = g.Wait()

	out := &BatchResult{ProcessedCount: len(results), Results: results}
	for _, r := range results {
		if r.Success {
			out.SuccessCount++
		} else {
			out.FailedCount++
		}
	}

	b.logger.InfoContext(ctx, "voucher batch processed",
		"operation", string(operation),
		"processed", out.ProcessedCount,
		"succeeded", out.SuccessCount,
		"failed", out.FailedCount)
	return out, nil
}

func (b *batchUseCaseImpl) processOne(ctx context.Context, id uuid.UUID, op BatchOperation, opts queries.ValidateOptions) BatchItemResult {
	item := BatchItemResult{VoucherID: id}

	var err error
	switch op {
	case BatchExpire:
		_, err = b.vouchers.Transition(ctx, id, voucher.StatusExpired.String())
	case BatchActivate:
		_, err = b.vouchers.Publish(ctx, id)
	case BatchValidate:
		var v *queries.ValidationResult
		v, err = b.voucherQueries.Validate(ctx, id, opts)
		if err == nil {
			item.Validation = v
			item.Success = v.IsValid
			item.Error = v.Reason
			return item
		}
	}

	if err != nil {
		item.Error = err.Error()
		return item
	}
	item.Success = true
	return item
}

// ExpireDue expires live vouchers whose validity window has closed. A
// non-positive limit falls back to the configured sweep limit.
func (b *batchUseCaseImpl) ExpireDue(ctx context.Context, limit int) (*BatchResult, error) {
	if limit <= 0 {
		limit = b.cfg.SweepLimit
	}

	ids, err := b.uow.Repos().Vouchers().FindExpirable(ctx, b.clock.Now(), limit)
	if err != nil {
		return nil, shared.StoreError(err)
	}
	if len(ids) == 0 {
		return &BatchResult{Results: []BatchItemResult{}}, nil
	}
	return b.BatchProcess(ctx, ids, string(BatchExpire), queries.ValidateOptions{})
}
