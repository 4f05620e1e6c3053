package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/retrocalc/internal/server/handlers"
)

// Handlers groups the HTTP adapters served by the engine.
type Handlers struct {
	Calculator *handlers.CalculatorHandler
	History    *handlers.HistoryHandler
	Animation  *handlers.AnimationHandler
	Screens    *handlers.ScreenHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	screens := r.Group("/", handlers.Session())
	screens.GET("", h.Screens.Calculator)
	screens.GET("history", h.Screens.History)
	screens.GET("animation", h.Screens.Animation)

	api := r.Group("/api", handlers.Session())
	api.GET("/calculator", h.Calculator.State)
	api.POST("/calculator/input", h.Calculator.Input)
	api.POST("/calculator/keys", h.Calculator.Key)
	api.GET("/history", h.History.List)
	api.POST("/history/keys", h.History.Key)
	api.GET("/animation", h.Animation.Frame)
	api.POST("/animation/keys", h.Animation.Key)
	api.PUT("/animation/operation", h.Animation.Operation)

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
			zap.String("client_ip", c.ClientIP()),
			zap.String("session", handlers.SessionID(c)))
	}
}
