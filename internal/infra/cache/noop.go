package cache

import (
	"context"
	"time"

	"voucher-engine/internal/usecase/shared"
)

// Noop is used when no redis address is configured. Every read is a miss.
type Noop struct{}

var _ shared.Cache = Noop{}

func (Noop) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error               { return nil }
func (Noop) DeletePattern(context.Context, string) error           { return nil }
