package bootstrap

import (
	"context"
	"log/slog"

	"voucher-engine/internal/pkg/clock"
	"voucher-engine/internal/pkg/codegen"
	"voucher-engine/internal/pkg/config"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/pkg/signing"
	"voucher-engine/internal/pkg/token"
	"voucher-engine/internal/usecase/commands"
	"voucher-engine/internal/usecase/queries"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

var SigningModule = fx.Module("signing",
	fx.Provide(
		NewSigningProvider,
		NewSnowflakeNode,
		codegen.NewGenerator,
		fx.Annotate(
			NewTokenService,
			fx.As(new(commands.TokenIssuer)),
			fx.As(new(queries.TokenVerifier)),
		),
	),
)

// NewSigningProvider loads the key pair during startup so a broken key
// fails the boot instead of the first scan.
func NewSigningProvider(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *signing.Provider {
	p := signing.NewProvider(cfg.Signing, logger)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_, err := p.KeyPair(ctx)
			return err
		},
	})
	return p
}

func NewSnowflakeNode(cfg config.Config) (*snowflake.Node, error) {
	node, err := snowflake.NewNode(cfg.Signing.SnowflakeNode)
	if err != nil {
		return nil, errs.Wrap(err, "invalid SNOWFLAKE_NODE")
	}
	return node, nil
}

func NewTokenService(keys *signing.Provider, codes *codegen.Generator, clk clock.Clock, logger *slog.Logger, cfg config.Config) *token.Service {
	return token.NewService(keys, codes, clk, logger, token.Options{
		DefaultTTL:  cfg.Signing.TokenTTL,
		Concurrency: cfg.Batch.Concurrency,
	})
}
