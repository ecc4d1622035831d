package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/observability/metrics"
	"voucher-engine/internal/observability/tracing"
	"voucher-engine/internal/pkg/clock"
	"voucher-engine/internal/pkg/codegen"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/pkg/token"
	"voucher-engine/internal/usecase/effects"
	"voucher-engine/internal/usecase/queries"
	"voucher-engine/internal/usecase/readmodel"
	"voucher-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -destination=mock/mock_commands.go -package=commandsmock voucher-engine/internal/usecase/commands BatchCommands,BookCommands,VoucherCommands

type TokenIssuer interface {
	Generate(ctx context.Context, voucherID uuid.UUID, batchID string, ttl time.Duration) (*token.Result, error)
	GenerateBatch(ctx context.Context, reqs []token.Request, batchID string) (map[uuid.UUID]token.Result, string, error)
}

type CreateVoucherInput struct {
	BusinessID            uuid.UUID
	CategoryID            *uuid.UUID
	Title                 string
	Description           string
	DiscountKind          string
	DiscountValue         decimal.Decimal
	Currency              string
	ValidFrom             *time.Time
	ValidUntil            *time.Time
	MaxRedemptions        *int
	MaxRedemptionsPerUser int
}

type SetTranslationInput struct {
	VoucherID   uuid.UUID
	Lang        string
	Title       string
	Description string
}

type ClaimResult struct {
	ClaimID   uuid.UUID
	ClaimedAt time.Time
	Voucher   readmodel.VoucherRM
}

type RedeemResult struct {
	ClaimID    uuid.UUID
	RedeemedAt time.Time
	Voucher    readmodel.VoucherRM
}

type ScanInput struct {
	VoucherID  uuid.UUID
	UserID     *uuid.UUID
	BusinessID *uuid.UUID
	Source     string
	Type       string
	Metadata   voucher.ScanMetadata
	Lang       string
}

// ScanResult reports what the scanner may do next. Code is set only when
// the scan started from a presented code.
type ScanResult struct {
	ScanID         int64
	Voucher        readmodel.VoucherRM
	AlreadyClaimed bool
	CanClaim       bool
	Code           *queries.ResolvedCode
}

type VoucherCommands interface {
	CreateVoucher(ctx context.Context, in CreateVoucherInput) (*readmodel.VoucherRM, error)
	Transition(ctx context.Context, voucherID uuid.UUID, target string) (*readmodel.VoucherRM, error)
	Publish(ctx context.Context, voucherID uuid.UUID) (*readmodel.VoucherRM, error)
	Suspend(ctx context.Context, voucherID uuid.UUID) (*readmodel.VoucherRM, error)
	SetTranslation(ctx context.Context, in SetTranslationInput) error

	Claim(ctx context.Context, voucherID, userID uuid.UUID, lang string) (*ClaimResult, error)
	Redeem(ctx context.Context, in RedeemInput) (*RedeemResult, error)
	Scan(ctx context.Context, in ScanInput) (*ScanResult, error)
	ScanCode(ctx context.Context, code string, in ScanInput) (*ScanResult, error)

	IssueTokens(ctx context.Context, voucherID uuid.UUID, batchID string, ttl time.Duration) (*token.Result, error)
	IssueBatchTokens(ctx context.Context, voucherIDs []uuid.UUID, batchID string) (map[uuid.UUID]token.Result, string, error)
	CreateStaticCode(ctx context.Context, voucherID uuid.UUID) (*voucher.Code, error)
}

type voucherUseCaseImpl struct {
	uow        shared.UnitOfWork
	tokens     TokenIssuer
	codes      *codegen.Generator
	cache      shared.Cache
	localizer  shared.Localizer
	businesses shared.BusinessDirectory
	resolver   queries.VoucherQueries
	effects    effects.Runner
	metrics    *metrics.Metrics
	clock      clock.Clock
	logger     *slog.Logger
}

func NewVoucherUseCase(
	uow shared.UnitOfWork,
	tokens TokenIssuer,
	codes *codegen.Generator,
	cache shared.Cache,
	localizer shared.Localizer,
	businesses shared.BusinessDirectory,
	resolver queries.VoucherQueries,
	runner effects.Runner,
	m *metrics.Metrics,
	clk clock.Clock,
	logger *slog.Logger,
) VoucherCommands {
	return &voucherUseCaseImpl{
		uow:        uow,
		tokens:     tokens,
		codes:      codes,
		cache:      cache,
		localizer:  localizer,
		businesses: businesses,
		resolver:   resolver,
		effects:    runner,
		metrics:    m,
		clock:      clk,
		logger:     logger,
	}
}

func (u *voucherUseCaseImpl) CreateVoucher(ctx context.Context, in CreateVoucherInput) (*readmodel.VoucherRM, error) {
	if _, err := u.businesses.FindBusiness(ctx, in.BusinessID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Reason(voucher.ErrBusinessUnknown, "business %s not found", in.BusinessID)
		}
		return nil, errs.Unavailable(err, "business directory")
	}

	discount, err := voucher.NewDiscount(voucher.DiscountKind(strings.ToLower(strings.TrimSpace(in.DiscountKind))), in.DiscountValue)
	if err != nil {
		return nil, err
	}
	currency, err := voucher.NewCurrency(in.Currency)
	if err != nil {
		return nil, err
	}
	qr, err := u.codes.StaticCode()
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	v, err := voucher.NewVoucher(uuid.New(), voucher.NewVoucherParams{
		BusinessID:            in.BusinessID,
		CategoryID:            in.CategoryID,
		Title:                 in.Title,
		Description:           in.Description,
		Discount:              discount,
		Currency:              currency,
		ValidFrom:             in.ValidFrom,
		ValidUntil:            in.ValidUntil,
		MaxRedemptions:        in.MaxRedemptions,
		MaxRedemptionsPerUser: in.MaxRedemptionsPerUser,
		QRCode:                qr,
	}, now)
	if err != nil {
		return nil, err
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Vouchers().Create(ctx, v); err != nil {
			return shared.StoreError(err)
		}
		return shared.StoreError(tx.Codes().Create(ctx, voucher.Code{
			ID:        uuid.New(),
			VoucherID: v.ID(),
			Type:      voucher.CodeTypeStatic,
			Code:      qr,
			IsActive:  true,
			CreatedAt: now,
		}))
	})
	if err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "voucher created", "voucher_id", v.ID().String(), "business_id", in.BusinessID.String())
	view := readmodel.FromVoucher(v)
	return &view, nil
}

// Transition moves a voucher along the forward table. The write is
// conditional on the state that was read, so a concurrent change loses.
func (u *voucherUseCaseImpl) Transition(ctx context.Context, voucherID uuid.UUID, target string) (view *readmodel.VoucherRM, err error) {
	ctx, span := tracing.Start(ctx, "voucher.Transition",
		attribute.String("voucher.id", voucherID.String()),
		attribute.String("voucher.target", target))
	defer func() { tracing.End(span, err) }()

	to, err := voucher.ParseStatus(target)
	if err != nil {
		return nil, err
	}
	return u.changeState(ctx, voucherID, func(v *voucher.Voucher, now time.Time) error {
		return v.TransitionTo(to, now)
	})
}

func (u *voucherUseCaseImpl) Publish(ctx context.Context, voucherID uuid.UUID) (*readmodel.VoucherRM, error) {
	return u.Transition(ctx, voucherID, voucher.StatusPublished.String())
}

func (u *voucherUseCaseImpl) Suspend(ctx context.Context, voucherID uuid.UUID) (view *readmodel.VoucherRM, err error) {
	ctx, span := tracing.Start(ctx, "voucher.Suspend", attribute.String("voucher.id", voucherID.String()))
	defer func() { tracing.End(span, err) }()

	return u.changeState(ctx, voucherID, func(v *voucher.Voucher, now time.Time) error {
		return v.Suspend(now)
	})
}

func (u *voucherUseCaseImpl) changeState(
	ctx context.Context,
	voucherID uuid.UUID,
	apply func(v *voucher.Voucher, now time.Time) error,
) (*readmodel.VoucherRM, error) {
	now := u.clock.Now()

	var view readmodel.VoucherRM
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		v, err := shared.LoadVoucher(ctx, tx.Vouchers(), voucherID)
		if err != nil {
			return err
		}
		from := v.State()
		if err := apply(v, now); err != nil {
			return err
		}
		ok, err := tx.Vouchers().UpdateStatus(ctx, voucherID, from, v.State(), now)
		if err != nil {
			return shared.StoreError(err)
		}
		if !ok {
			return errs.Reason(voucher.ErrInvalidTransition, "voucher %s changed state concurrently; retry", voucherID)
		}
		view = readmodel.FromVoucher(v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "voucher state changed", "voucher_id", voucherID.String(), "state", view.State)
	u.invalidate(ctx, voucherID)
	return &view, nil
}

func (u *voucherUseCaseImpl) SetTranslation(ctx context.Context, in SetTranslationInput) error {
	lang := voucher.NormalizeLang(in.Lang)
	if lang == "" {
		return voucher.ErrInvalidLang
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return voucher.ErrInvalidTitle
	}

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := shared.LoadVoucher(ctx, tx.Vouchers(), in.VoucherID); err != nil {
			return err
		}
		return shared.StoreError(tx.Translations().Upsert(ctx, voucher.Translation{
			VoucherID:   in.VoucherID,
			Lang:        lang,
			Title:       title,
			Description: strings.TrimSpace(in.Description),
		}))
	})
	if err != nil {
		return err
	}

	u.invalidate(ctx, in.VoucherID)
	return nil
}

// invalidate drops every cached rendition of a voucher. It must only run
// after the change is committed.
func (u *voucherUseCaseImpl) invalidate(ctx context.Context, voucherID uuid.UUID) {
	u.effects.Run(ctx, effects.CacheInvalidation, func(ctx context.Context) error {
		if err := u.cache.Delete(ctx, shared.VoucherCacheKey(voucherID, "")); err != nil {
			return err
		}
		return u.cache.DeletePattern(ctx, shared.VoucherCachePattern(voucherID))
	})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errs.Category(err) == nil, errs.Is(err, errs.ErrServiceUnavailable):
		return metrics.ResultError
	default:
		return metrics.ResultRejected
	}
}
