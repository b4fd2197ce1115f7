package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/internet_banking/cmd/docs"
	portssvc "github.com/SscSPs/internet_banking/internal/core/ports/services"
	"github.com/SscSPs/internet_banking/internal/middleware"
	"github.com/SscSPs/internet_banking/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// A nil rateLimiter leaves the mutating routes unlimited.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	r.SetHTMLTemplate(loadTemplates())

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	r.GET("/", getHome)

	session := middleware.SessionMiddleware(sessionOptions(cfg))

	var mutating []gin.HandlerFunc
	if rateLimiter != nil {
		mutating = append(mutating, middleware.RateLimit(rateLimiter))
	}

	// Server-rendered form
	banking := r.Group("/banking", session)
	registerBankingRoutes(banking, services.Ledger, cfg.Location, mutating...)

	// JSON API
	setupAPIV1Routes(r, cfg, services, session, mutating)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

func sessionOptions(cfg *config.Config) middleware.SessionOptions {
	return middleware.SessionOptions{
		Secret:     cfg.SessionSecret,
		CookieName: cfg.SessionCookieName,
		Issuer:     cfg.SessionIssuer,
		TTL:        cfg.SessionTTL,
		Secure:     cfg.IsProduction,
	}
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	session gin.HandlerFunc,
	mutating []gin.HandlerFunc,
) {
	corsMiddleware := cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})

	api := r.Group("/api/v1", corsMiddleware)
	// Preflight requests are answered by the CORS middleware before reaching this
	api.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	v1 := api.Group("", session)

	registerLedgerRoutes(v1, services.Ledger, cfg.Location, mutating...)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
