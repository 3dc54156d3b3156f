package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gestock/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(stock *handlers.StockHandler, syncH *handlers.SyncHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.GET("/stock", stock.List)
		api.POST("/stock", stock.Create)
		api.PUT("/stock/:id", stock.Update)
		api.DELETE("/stock/:id", stock.Delete)
		api.POST("/vente", stock.Sell)
		api.GET("/alerts", stock.Alerts)
		api.GET("/historique", stock.History)
		api.GET("/sync/status", syncH.Status)
		api.POST("/sync/now", syncH.SyncNow)
		api.POST("/sync/restore", syncH.Restore)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
