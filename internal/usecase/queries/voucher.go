package queries

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/observability/metrics"
	"voucher-engine/internal/pkg/clock"
	"voucher-engine/internal/pkg/codegen"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/pkg/token"
	"voucher-engine/internal/usecase/effects"
	"voucher-engine/internal/usecase/readmodel"
	"voucher-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock_queries.go -package=queriesmock voucher-engine/internal/usecase/queries BookQueries,VoucherQueries

type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (token.Verification, error)
}

// ValidateOptions selects which checks run. Checks always run in the same
// order and stop at the first failure.
type ValidateOptions struct {
	CheckState           bool
	CheckExpiry          bool
	CheckRedemptionLimit bool
	UserID               *uuid.UUID
}

type ValidationResult struct {
	IsValid bool
	Reason  string
	Voucher *readmodel.VoucherRM
}

// ResolvedCode is what a presented code points at. BatchID is only known
// for signed QR payloads and batch-issued short codes.
type ResolvedCode struct {
	VoucherID uuid.UUID
	Type      voucher.CodeType
	BatchID   string
}

type VoucherQueries interface {
	GetVoucher(ctx context.Context, id uuid.UUID, lang string) (*readmodel.VoucherRM, error)
	Validate(ctx context.Context, id uuid.UUID, opts ValidateOptions) (*ValidationResult, error)
	VerifyToken(ctx context.Context, raw string) (token.Verification, error)
	ResolveCode(ctx context.Context, code string) (*ResolvedCode, error)
}

type voucherQueriesImpl struct {
	uow       shared.UnitOfWork
	cache     shared.Cache
	localizer shared.Localizer
	verifier  TokenVerifier
	effects   effects.Runner
	metrics   *metrics.Metrics
	clock     clock.Clock
	logger    *slog.Logger
	cacheTTL  time.Duration
}

func NewVoucherQueries(
	uow shared.UnitOfWork,
	cache shared.Cache,
	localizer shared.Localizer,
	verifier TokenVerifier,
	runner effects.Runner,
	m *metrics.Metrics,
	clk clock.Clock,
	logger *slog.Logger,
	cacheTTL time.Duration,
) VoucherQueries {
	return &voucherQueriesImpl{
		uow:       uow,
		cache:     cache,
		localizer: localizer,
		verifier:  verifier,
		effects:   runner,
		metrics:   m,
		clock:     clk,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// GetVoucher reads through the cache. A cache failure counts as a miss.
func (q *voucherQueriesImpl) GetVoucher(ctx context.Context, id uuid.UUID, lang string) (*readmodel.VoucherRM, error) {
	lang = voucher.NormalizeLang(lang)
	key := shared.VoucherCacheKey(id, lang)

	var cached readmodel.VoucherRM
	hit, err := q.cache.Get(ctx, key, &cached)
	if err != nil {
		q.logger.WarnContext(ctx, "voucher cache read failed", "key", key, "error", err.Error())
		hit = false
	}
	q.metrics.ObserveCacheLookup(hit)
	if hit {
		return &cached, nil
	}

	v, err := shared.LoadVoucher(ctx, q.uow.Repos().Vouchers(), id)
	if err != nil {
		return nil, err
	}
	view := shared.Localize(ctx, q.localizer, q.logger, readmodel.FromVoucher(v), lang)

	q.effects.Run(ctx, effects.CacheFill, func(ctx context.Context) error {
		return q.cache.Set(ctx, key, view, q.cacheTTL)
	})
	return &view, nil
}

func (q *voucherQueriesImpl) Validate(ctx context.Context, id uuid.UUID, opts ValidateOptions) (*ValidationResult, error) {
	v, err := shared.LoadVoucher(ctx, q.uow.Repos().Vouchers(), id)
	if err != nil {
		if errs.Is(err, voucher.ErrVoucherNotFound) {
			return &ValidationResult{Reason: "voucher not found"}, nil
		}
		return nil, err
	}

	view := readmodel.FromVoucher(v)
	invalid := func(format string, args ...any) (*ValidationResult, error) {
		return &ValidationResult{Reason: fmt.Sprintf(format, args...), Voucher: &view}, nil
	}

	now := q.clock.Now()
	if opts.CheckState && !v.State().IsLive() {
		return invalid("voucher is %s", v.State())
	}
	if opts.CheckExpiry {
		if v.IsNotYetValidAt(now) {
			return invalid("voucher is not valid before %s", v.ValidFrom().UTC().Format(time.RFC3339))
		}
		if v.IsExpiredAt(now) {
			return invalid("voucher expired at %s", v.ValidUntil().UTC().Format(time.RFC3339))
		}
	}
	if opts.CheckRedemptionLimit {
		if !v.HasRedemptionCapacity() {
			return invalid("maximum redemptions reached")
		}
		if opts.UserID != nil && v.MaxRedemptionsPerUser() == 1 {
			used, err := q.userHasRedeemed(ctx, *opts.UserID, id)
			if err != nil {
				return nil, err
			}
			if used {
				return invalid("maximum redemptions per user reached")
			}
		}
	}

	return &ValidationResult{IsValid: true, Voucher: &view}, nil
}

// userHasRedeemed is true once the user's claim is redeemed or carries a
// redemption code.
func (q *voucherQueriesImpl) userHasRedeemed(ctx context.Context, userID, voucherID uuid.UUID) (bool, error) {
	c, err := q.uow.Repos().Claims().FindByCustomerAndVoucher(ctx, userID, voucherID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return false, nil
		}
		return false, shared.StoreError(err)
	}
	return c.IsRedeemed() || c.RedemptionCode != nil, nil
}

func (q *voucherQueriesImpl) VerifyToken(ctx context.Context, raw string) (token.Verification, error) {
	res, err := q.verifier.Verify(ctx, strings.TrimSpace(raw))
	if err != nil {
		return token.Verification{}, err
	}
	q.metrics.ObserveTokenVerification(res.Valid)
	return res, nil
}

// ResolveCode accepts a signed QR payload, a short code in any case with or
// without its dash, or a static printed code. Signed payloads are checked
// by signature; the other kinds are looked up in the store.
func (q *voucherQueriesImpl) ResolveCode(ctx context.Context, code string) (*ResolvedCode, error) {
	code = strings.TrimSpace(code)

	if strings.Count(code, ".") == 2 {
		res, err := q.VerifyToken(ctx, code)
		if err != nil {
			return nil, err
		}
		if !res.Valid {
			return nil, errs.Reason(voucher.ErrTokenRejected, "voucher token rejected: %s", res.Reason)
		}
		return &ResolvedCode{VoucherID: res.VoucherID, Type: voucher.CodeTypeQR, BatchID: res.BatchID}, nil
	}

	var lookup string
	switch {
	case codegen.IsStaticCode(code):
		lookup = strings.ToUpper(code)
	default:
		normalized, ok := codegen.NormalizeShortCode(code)
		if !ok {
			return nil, errs.Reason(voucher.ErrInvalidCode, "%q is not a recognized voucher code", code)
		}
		lookup = normalized
	}

	c, err := q.uow.Repos().Codes().FindByCode(ctx, lookup)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Reason(voucher.ErrCodeNotFound, "voucher code %s not found", lookup)
		}
		return nil, shared.StoreError(err)
	}

	resolved := &ResolvedCode{VoucherID: c.VoucherID, Type: c.Type}
	if c.BatchID != nil {
		resolved.BatchID = *c.BatchID
	}
	return resolved, nil
}
