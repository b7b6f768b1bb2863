// Package v1 provides HTTP API version 1.
package v1

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"lumbertrace/internal/domain/auth"
	"lumbertrace/internal/domain/material"
	"lumbertrace/internal/domain/supplier"
	"lumbertrace/internal/domain/traceability"
	"lumbertrace/internal/infrastructure/http/v1/handlers"
	"lumbertrace/internal/infrastructure/http/v1/middleware"
	"lumbertrace/internal/infrastructure/metrics"
	"lumbertrace/internal/infrastructure/snapshot"
	"lumbertrace/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Logger *logger.Logger

	// Development enables gin debug mode
	Development bool

	Materials    *material.Service
	Suppliers    *supplier.Service
	Traceability *traceability.Service
	Snapshots    *snapshot.Service

	// Store is pinged by the readiness probe
	Store       handlers.Pinger
	StoreDriver string

	// Auth is nil when operator auth is disabled; writes are then open
	Auth *auth.Service

	// Metrics is optional
	Metrics *metrics.Metrics

	// RateLimitRPS <= 0 disables rate limiting
	RateLimitRPS   float64
	RateLimitBurst int

	AllowedOrigins []string

	// Location for calendar date filters, UTC when nil
	Location *time.Location
}

// NewRouter creates and configures the gin engine.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Development {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Global middleware (order matters!)
	router.Use(otelgin.Middleware("lumbertrace"))
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	if cfg.Metrics != nil {
		router.Use(middleware.Metrics(cfg.Metrics))
	}
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Recovery())
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	router.NoRoute(middleware.NotFound())

	healthHandler := handlers.NewHealthHandler(cfg.Store, cfg.StoreDriver)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	base := handlers.NewBaseHandler(cfg.Location)

	api := router.Group("/api/v1")
	if cfg.RateLimitRPS > 0 {
		api.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())
	}

	if cfg.Auth != nil {
		authHandler := handlers.NewAuthHandler(base, cfg.Auth)
		api.POST("/auth/login", authHandler.Login)
		api.Use(middleware.RequireAuthForWrites(cfg.Auth.JWT()))
	}

	materialHandler := handlers.NewMaterialHandler(base, cfg.Materials, cfg.Suppliers, cfg.Traceability)
	materials := api.Group("/materials")
	{
		registerRecordRoutes(materials, materialHandler.Records())
		materials.POST("/:id/components", materialHandler.AddComponent)
		materials.DELETE("/:id/components/:componentId", materialHandler.RemoveComponent)
		materials.GET("/:id/bom", materialHandler.BOM)
		materials.GET("/:id/traceability", materialHandler.Traceability)
		materials.GET("/:id/traceability.pdf", materialHandler.TraceabilityPDF)
		materials.GET("/:id/label.png", materialHandler.Label)
	}
	api.POST("/scan", materialHandler.Scan)

	registerRecordRoutes(api.Group("/suppliers"), handlers.NewSupplierHandler(base, cfg.Suppliers))

	if cfg.Snapshots != nil {
		backupHandler := handlers.NewBackupHandler(base, cfg.Snapshots)
		api.GET("/backup", backupHandler.Export)
		api.POST("/backup/restore", backupHandler.Restore)
	}

	return router
}

// RecordRouteHandler defines the CRUD handlers of a record collection.
type RecordRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// registerRecordRoutes registers standard CRUD routes for a collection.
func registerRecordRoutes(group *gin.RouterGroup, handler RecordRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.HeaderRequestID, middleware.HeaderTraceID)
	cfg.ExposeHeaders = []string{middleware.HeaderRequestID, middleware.HeaderTraceID, "Content-Disposition"}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
