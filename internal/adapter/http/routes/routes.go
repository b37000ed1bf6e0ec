package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"todofront/internal/adapter/http/handler"
	"todofront/internal/adapter/http/middleware"
	"todofront/internal/core/telemetry"
	. "todofront/pkg/config"
	"todofront/pkg/middlewares"
)

type HandlersConfig struct {
	PageHandler   *handler.PageHandler
	TodoHandler   *handler.TodoHandler
	HealthHandler *handler.HealthHandler
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *LokiLogger, config *AppConfig) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	middlewares.SetupGinMiddlewareWithConfig(router, metrics, logger, config,
		middleware.CurrentMiddleware(int(config.ViewTTL.Seconds()), config.EnforceHTTPS))

	registerRoutes(router, handlers)

	return router
}

func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CurrentMiddleware(1800, false))

	registerRoutes(router, handlers)

	return router
}

func registerRoutes(router *gin.Engine, handlers HandlersConfig) {
	if handlers.HealthHandler != nil {
		router.GET("/healthz", handlers.HealthHandler.Live)
	}

	if handlers.PageHandler != nil {
		setupPageRoutes(router, handlers.PageHandler)
	}

	if handlers.TodoHandler != nil {
		setupAPIRoutes(router, handlers.TodoHandler)
	}
}

func setupPageRoutes(router *gin.Engine, pageHandler *handler.PageHandler) {
	router.GET("/", pageHandler.Index)
	router.POST("/todos", pageHandler.Create)
	router.POST("/todos/:id/delete", pageHandler.Delete)
}

func setupAPIRoutes(router *gin.Engine, todoHandler *handler.TodoHandler) {
	api := router.Group("/api")
	api.Use(corsMiddleware())
	{
		api.GET("/todos", todoHandler.GetAllTodos)
		api.POST("/todos", todoHandler.CreateTodo)
		api.DELETE("/todos/:id", todoHandler.DeleteTodo)
		api.OPTIONS("/todos", noContent)
		api.OPTIONS("/todos/:id", noContent)
	}
}

func noContent(c *gin.Context) {
	c.AbortWithStatus(http.StatusNoContent)
}

func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:   []string{"Content-Length", "Content-Type", middleware.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	})
}
