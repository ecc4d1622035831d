package token

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"voucher-engine/internal/pkg/clock"
	"voucher-engine/internal/pkg/codegen"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/pkg/signing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultTTL suits printed vouchers that stay in circulation for a season.
const DefaultTTL = 365 * 24 * time.Hour

var ErrMissingVoucherID = errs.Define(errs.ErrValidation, "voucher id is required for token generation")

type KeyProvider interface {
	KeyPair(ctx context.Context) (signing.KeyPair, error)
}

type Claims struct {
	VoucherID uuid.UUID `json:"vid"`
	BatchID   string    `json:"btc,omitempty"`
	jwt.RegisteredClaims
}

type Result struct {
	VoucherID uuid.UUID
	QRPayload string
	ShortCode string
	BatchID   string
	ExpiresAt time.Time
}

type Request struct {
	VoucherID uuid.UUID
	TTL       time.Duration
}

// Verification is the outcome of checking a presented token. An invalid
// token is a normal outcome and is never returned as an error.
type Verification struct {
	Valid     bool
	VoucherID uuid.UUID
	BatchID   string
	Reason    string
}

type Service struct {
	keys        KeyProvider
	codes       *codegen.Generator
	clock       clock.Clock
	logger      *slog.Logger
	defaultTTL  time.Duration
	concurrency int
}

type Options struct {
	DefaultTTL  time.Duration
	Concurrency int
}

func NewService(keys KeyProvider, codes *codegen.Generator, clk clock.Clock, logger *slog.Logger, opts Options) *Service {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = DefaultTTL
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	return &Service{
		keys:        keys,
		codes:       codes,
		clock:       clk,
		logger:      logger,
		defaultTTL:  opts.DefaultTTL,
		concurrency: opts.Concurrency,
	}
}

func (s *Service) NewBatchID() (string, error) {
	return s.codes.BatchID(s.clock.Now())
}

// Generate signs a token for voucherID. An empty batchID is replaced by a
// fresh one; ttl <= 0 selects the default.
func (s *Service) Generate(ctx context.Context, voucherID uuid.UUID, batchID string, ttl time.Duration) (*Result, error) {
	if voucherID == uuid.Nil {
		return nil, ErrMissingVoucherID
	}
	if batchID == "" {
		id, err := s.NewBatchID()
		if err != nil {
			return nil, err
		}
		batchID = id
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	kp, err := s.keys.KeyPair(ctx)
	if err != nil {
		return nil, errs.Unavailable(err, "signing key provider")
	}

	now := s.clock.Now()
	expiresAt := now.Add(ttl)
	claims := Claims{
		VoucherID: voucherID,
		BatchID:   batchID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethodKeyPair, claims).SignedString(kp)
	if err != nil {
		return nil, errs.Wrap(err, "failed to sign voucher token")
	}

	short, err := s.codes.ShortCode()
	if err != nil {
		return nil, err
	}

	return &Result{
		VoucherID: voucherID,
		QRPayload: signed,
		ShortCode: short,
		BatchID:   batchID,
		ExpiresAt: expiresAt,
	}, nil
}

// GenerateBatch signs every request under one shared batch id. Requests that
// fail are logged and left out of the returned map.
func (s *Service) GenerateBatch(ctx context.Context, reqs []Request, batchID string) (map[uuid.UUID]Result, string, error) {
	if batchID == "" {
		id, err := s.NewBatchID()
		if err != nil {
			return nil, "", err
		}
		batchID = id
	}

	var (
		mu  sync.Mutex
		out = make(map[uuid.UUID]Result, len(reqs))
		g   errgroup.Group
	)
	g.SetLimit(s.concurrency)

	for _, req := range reqs {
		g.Go(func() error {
			res, err := s.Generate(ctx, req.VoucherID, batchID, req.TTL)
			if err != nil {
				s.logger.Warn("token generation failed",
					"voucher_id", req.VoucherID.String(),
					"batch_id", batchID,
					"error", err.Error())
				return nil
			}
			mu.Lock()
			out[req.VoucherID] = *res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return out, batchID, nil
}

// Verify checks signature and expiry. Only an unavailable key is an error.
func (s *Service) Verify(ctx context.Context, raw string) (Verification, error) {
	kp, err := s.keys.KeyPair(ctx)
	if err != nil {
		return Verification{}, errs.Unavailable(err, "signing key provider")
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return kp.PublicKey(), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return Verification{Reason: verificationReason(err)}, nil
	}
	if !tok.Valid || claims.VoucherID == uuid.Nil {
		return Verification{Reason: "token carries no voucher"}, nil
	}

	return Verification{
		Valid:     true,
		VoucherID: claims.VoucherID,
		BatchID:   claims.BatchID,
	}, nil
}

func verificationReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature mismatch"
	default:
		return "malformed token"
	}
}
