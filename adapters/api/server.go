package api

import (
	"context"
	"net/http"
	"time"

	"amphorank/internal"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the /api/v1 endpoints on rg.
//
//	POST /api/v1/rankings   rank posted records
//	GET  /api/v1/rankings   rank the configured files
//	GET  /api/v1/specimens  identities in the configured files
//	GET  /api/v1/config     active engine configuration
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers) {
	v1 := rg.Group("/api/v1")
	v1.POST("/rankings", h.HandleRankRecords)
	v1.GET("/rankings", h.HandleRankConfigured)
	v1.GET("/specimens", h.HandleSpecimens)
	v1.GET("/config", h.HandleConfig)
}

// NewRouter builds the gin engine with recovery, request logging and a
// per-request timeout
func NewRouter(h *Handlers, logger *internal.Logger, timeout time.Duration) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	if timeout > 0 {
		router.Use(requestTimeout(timeout))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	RegisterRoutes(&router.RouterGroup, h)
	return router
}

func requestLogger(logger *internal.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("[HTTP] %s %s %d %v", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func requestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
