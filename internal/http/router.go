package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
	}

	// Apply demo mode middleware if enabled
	if cfg.DemoMiddleware.IsEnabled() {
		router.Use(cfg.DemoMiddleware.InjectContext())
		router.Use(cfg.DemoMiddleware.Handler())
	}

	health := NewHealthController(cfg.Database, cfg.Tasks, cfg.Version)
	booksController := NewBooksController(cfg.Catalog, cfg.Catalog)
	tasksController := NewTasksController(cfg.CleanupQueue, cfg.Cleaner)
	demoController := NewDemoController(cfg.DemoMiddleware)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Books API endpoints
	api := router.Group("/api")
	api.GET("/books", booksController.ListBooks)
	api.GET("/books/stats", booksController.GetBookStats)
	api.GET("/genres", booksController.ListGenres)
	api.GET("/books/:id", booksController.GetBook)
	api.GET("/books/:id/content", booksController.GetContent)
	api.GET("/books/:id/markdown", booksController.DownloadMarkdown)
	api.POST("/books", booksController.CreateBook)
	api.PUT("/books/:id", booksController.UpdateBook)
	api.PATCH("/books/:id", booksController.PatchBook)
	api.PATCH("/books/:id/content", booksController.PatchContent)
	api.DELETE("/books/:id", booksController.DeleteBook)

	// Task endpoints
	api.POST("/admin/content/cleanup", tasksController.CleanupContent)
	api.GET("/tasks/:id", tasksController.GetTaskStatus)

	// Demo mode status endpoint (always available)
	api.GET("/demo/status", demoController.GetStatus)

	return router
}
