package handlers

import (
	"github.com/SscSPs/karangnongko_farm/cmd/docs"
	portssvc "github.com/SscSPs/karangnongko_farm/internal/core/ports/services"
	"github.com/SscSPs/karangnongko_farm/internal/middleware"
	"github.com/SscSPs/karangnongko_farm/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Page models; anonymous visitors are redirected to /login
	registerViewRoutes(r, services, cfg.SessionCookieName)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)

	r.NoRoute(notFound)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	// Apply the auth middleware to the entire v1 group; login is registered on the engine
	v1 := r.Group("/api/v1", middleware.APIAuthMiddleware(service.Auth, cfg.SessionCookieName))

	registerAuthRoutes(r, v1, cfg, service.Auth)
	registerGoatRoutes(v1, service.Goat, service.Export)
	registerCheckinRoutes(v1, service.Checkin, service.Calendar, service.Export)
	registerCalendarRoutes(v1, service.Calendar)
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
