package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/retrocalc/internal/domain/models"
	"github.com/mamadbah2/retrocalc/internal/service/history"
)

// HistoryService is the history viewer as seen by HTTP.
type HistoryService interface {
	View(ctx context.Context, sessionID string) history.View
	HandleKey(ctx context.Context, sessionID string, key models.Key) history.View
}

// HistoryHandler exposes the history screen.
type HistoryHandler struct {
	svc    HistoryService
	logger *zap.Logger
}

func NewHistoryHandler(svc HistoryService, logger *zap.Logger) *HistoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryHandler{svc: svc, logger: logger}
}

func (h *HistoryHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.View(c.Request.Context(), SessionID(c)))
}

// Key moves the selection. A response carrying "navigate" tells the client to leave the screen.
func (h *HistoryHandler) Key(c *gin.Context) {
	var req models.KeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid key payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, h.svc.HandleKey(c.Request.Context(), SessionID(c), models.ParseKey(req.Key)))
}
