package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"voucher-engine/internal/domain/auth"
	"voucher-engine/internal/handler/api"
	"voucher-engine/internal/handler/middleware"
	"voucher-engine/internal/observability/tracing"
	"voucher-engine/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, gatherer prometheus.Gatherer, voucherHandler *api.VoucherHandler, bookHandler *api.BookHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, gatherer, voucherHandler, bookHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(tracing.GinMiddleware())
	engine.Use(middleware.NewLogger(cfg.Log).RequestLogging())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, gatherer prometheus.Gatherer, vh *api.VoucherHandler, bh *api.BookHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)
	if gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	admin := []gin.HandlerFunc{authMiddleware.RequireAuth(), authMiddleware.RequireRole(auth.RoleAdmin)}
	signedIn := []gin.HandlerFunc{authMiddleware.RequireAuth()}
	staff := []gin.HandlerFunc{authMiddleware.RequireAuth(), authMiddleware.RequireRole(auth.RoleBusiness)}

	apiGroup := engine.Group("/api")
	{
		apiGroup.POST("/scan", authMiddleware.OptionalAuth(), vh.ScanCode)

		vouchers := apiGroup.Group("/vouchers")
		{
			addRoutes(vouchers, []route{
				{Method: http.MethodPost, Path: "", Handler: vh.Create, Mw: admin},
				{Method: http.MethodPost, Path: "/batch", Handler: vh.BatchProcess, Mw: admin},
				{Method: http.MethodPost, Path: "/expire-due", Handler: vh.ExpireDue, Mw: admin},
				{Method: http.MethodPost, Path: "/tokens/batch", Handler: vh.IssueBatchTokens, Mw: admin},
				{Method: http.MethodPost, Path: "/tokens/verify", Handler: vh.VerifyToken, Mw: staff},

				{Method: http.MethodGet, Path: "/:id", Handler: vh.Get},
				{Method: http.MethodPost, Path: "/:id/publish", Handler: vh.Publish, Mw: admin},
				{Method: http.MethodPost, Path: "/:id/transition", Handler: vh.Transition, Mw: admin},
				{Method: http.MethodPost, Path: "/:id/suspend", Handler: vh.Suspend, Mw: admin},
				{Method: http.MethodPut, Path: "/:id/translations/:lang", Handler: vh.SetTranslation, Mw: admin},
				{Method: http.MethodPost, Path: "/:id/tokens", Handler: vh.IssueTokens, Mw: admin},
				{Method: http.MethodPost, Path: "/:id/static-code", Handler: vh.CreateStaticCode, Mw: admin},

				{Method: http.MethodPost, Path: "/:id/claim", Handler: vh.Claim, Mw: signedIn},
				{Method: http.MethodPost, Path: "/:id/redeem", Handler: vh.Redeem, Mw: signedIn},
				{Method: http.MethodPost, Path: "/:id/validate", Handler: vh.Validate, Mw: signedIn},
				{Method: http.MethodPost, Path: "/:id/scan", Handler: vh.Scan, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
			})
		}

		books := apiGroup.Group("/books")
		books.Use(admin...)
		{
			addRoutes(books, []route{
				{Method: http.MethodPost, Path: "", Handler: bh.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: bh.Get},
				{Method: http.MethodPost, Path: "/:id/entries", Handler: bh.AddEntry},
				{Method: http.MethodPost, Path: "/:id/transition", Handler: bh.Transition},
				{Method: http.MethodGet, Path: "/:id/readiness", Handler: bh.Readiness},
				{Method: http.MethodGet, Path: "/:id/pdf", Handler: bh.PDF},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(append([]gin.HandlerFunc{}, r.Mw...), r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
