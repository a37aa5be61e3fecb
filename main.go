package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/promemo/config"
	"github.com/yourusername/promemo/handlers"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Setup router
	router := gin.Default()

	// CORS middleware for the local UI
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "promemo-api",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		memoHandler := handlers.NewMemoHandler(db, cfg, logger)

		// Company profile
		api.PUT("/company", memoHandler.SaveCompany)
		api.GET("/company", memoHandler.GetCompany)

		// Memos
		api.POST("/memos/preview", memoHandler.PreviewMemo)
		api.POST("/memos", memoHandler.CreateMemo)
		api.GET("/memos", memoHandler.ListMemos)
		api.GET("/memos/:id", memoHandler.GetMemo)
		api.GET("/memos/:id/pdf", memoHandler.DownloadPDF)
		api.DELETE("/memos/:id", memoHandler.DeleteMemo)

		// Dashboard aggregates
		api.GET("/dashboard", memoHandler.Dashboard)

		// AI line-item refinement
		api.POST("/refine", memoHandler.RefineDescription)
	}

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("starting promemo api server", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
