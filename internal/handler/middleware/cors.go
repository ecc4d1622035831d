package middleware

import (
	"log/slog"
	"slices"

	"voucher-engine/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Browser clients read these from created vouchers, book PDFs and traced requests.
var apiExposedHeaders = []string{requestIDHeader, "Location", "Content-Disposition"}

// NewCORSMiddleware allows the configured origins. With none configured,
// cross-origin requests get no CORS headers at all.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	if len(cfg.AllowOrigins) == 0 {
		slog.Warn("CORS_ALLOW_ORIGINS empty, cross-origin requests disabled")
		return func(c *gin.Context) { c.Next() }
	}

	exposed := slices.Clone(cfg.ExposeHeaders)
	for _, h := range apiExposedHeaders {
		if !slices.Contains(exposed, h) {
			exposed = append(exposed, h)
		}
	}

	slog.Info("CORS middleware initialized", "allow_origins", cfg.AllowOrigins, "expose_headers", exposed)
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    exposed,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
