package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates the preview server: the JSON query surface under
// /api, a health endpoint, and the generated site tree as the static
// fallback for everything else.
func NewServer(handler *Handler, outputDir string) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for the query endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, outputDir)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, outputDir string) {
	r.GET("/health", handler.GetHealth)

	api := r.Group("/api")
	{
		api.GET("/recipes", handler.ListRecipes)
		api.GET("/recipes/:slug", handler.GetRecipe)
		api.GET("/recipes/:slug/related", handler.GetRelated)
		api.GET("/recipes/:slug/scale", handler.ScaleRecipe)
		api.GET("/categories", handler.ListCategories)
	}

	// Generated site tree as the static fallback
	if outputDir != "" {
		fileServer := http.FileServer(http.Dir(outputDir))
		r.NoRoute(gin.WrapH(fileServer))
	}
}
