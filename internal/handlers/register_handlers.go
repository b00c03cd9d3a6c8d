package handlers

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/flowhive/flowhive_backend/cmd/docs"
	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/middleware"
	"github.com/flowhive/flowhive_backend/internal/platform/config"
	"github.com/flowhive/flowhive_backend/internal/utils"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	realtime RealtimeServer,
	posthog *utils.PosthogClientWrapper,
) error {
	if err := registerValidators(); err != nil {
		return err
	}
	r.Use(
		cors.New(corsConfig(cfg.AllowedOrigins)),
		middleware.MetricsMiddleware(),
		middleware.PosthogMiddleware(posthog),
	)

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if !cfg.CloudinaryEnabled() {
		r.Static("/uploads", cfg.UploadDir)
	}

	// Register public authentication routes
	if err := registerAuthRoutes(r, cfg, services); err != nil {
		return err
	}
	registerRealtimeRoutes(r, realtime, services)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, posthog)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthog *utils.PosthogClientWrapper,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerCustomerRoutes(v1, services.Companies)

	workspace := registerWorkspaceRoutes(v1, services.Workspace)
	registerTaskCategoryRoutes(v1, workspace, services.TaskCategory)
	registerFieldActivityRoutes(v1, workspace, services)
	registerAnalyticsRoutes(workspace, services.Analytics)
	registerReportingRoutes(v1, workspace, services, posthog)
	registerMeetingMinuteRoutes(v1, workspace, services.MeetingMinute)
	registerProjectRoutes(v1, workspace, services.Project)
	registerTaskRoutes(v1, workspace, services.Task)
	registerTaskAnalyticsRoutes(v1, workspace, services.TaskAnalytics)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
