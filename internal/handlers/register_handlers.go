package handlers

import (
	"github.com/SscSPs/mma_fx/cmd/docs"
	portssvc "github.com/SscSPs/mma_fx/internal/core/ports/services"
	"github.com/SscSPs/mma_fx/internal/middleware"
	"github.com/SscSPs/mma_fx/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// A nil lim disables rate limiting of the API.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	lim *limiter.Limiter,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	r.GET("/", getHome)
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/ready", readiness(services.Routing))

	setupAPIV1Routes(r, cfg, services, lim)

	// Swagger routes (only outside production)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group. Reads and conversions are public;
// configuration and administrative triggers require a bearer token.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	lim *limiter.Limiter,
) {
	v1 := r.Group("/api/v1")
	if lim != nil {
		v1.Use(middleware.RateLimit(lim))
	}
	protected := v1.Group("", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	registerCurrencyRoutes(v1, protected, service.Currency)
	registerExchangeRateRoutes(v1, protected, service.ExchangeRate)
	registerConversionRoutes(v1, service.Converter, service.Currency)
	registerAdminRoutes(protected, service.Updater, service.Routing)
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
