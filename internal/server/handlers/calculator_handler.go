package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/retrocalc/internal/domain/models"
	"github.com/mamadbah2/retrocalc/internal/service/calculator"
)

// CalculatorService is the calculator flow as seen by HTTP.
type CalculatorService interface {
	View(sessionID string) calculator.State
	HandleKey(sessionID string, key models.Key) calculator.State
	HandleInput(ctx context.Context, sessionID, input string) calculator.State
}

// CalculatorHandler exposes the calculator screen state.
type CalculatorHandler struct {
	svc    CalculatorService
	logger *zap.Logger
}

// NewCalculatorHandler constructs the HTTP handler adapter.
func NewCalculatorHandler(svc CalculatorService, logger *zap.Logger) *CalculatorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculatorHandler{svc: svc, logger: logger}
}

// State returns the session's current screen state.
func (h *CalculatorHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.View(SessionID(c)))
}

// Input submits an expression. Evaluation errors are part of the state, not HTTP errors.
func (h *CalculatorHandler) Input(c *gin.Context) {
	var req models.InputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid input payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, h.svc.HandleInput(c.Request.Context(), SessionID(c), req.Input))
}

// Key applies a function key to the calculator.
func (h *CalculatorHandler) Key(c *gin.Context) {
	var req models.KeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid key payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, h.svc.HandleKey(SessionID(c), models.ParseKey(req.Key)))
}
