package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/retrocalc/internal/domain/models"
	"github.com/mamadbah2/retrocalc/internal/service/animation"
)

// AnimationService is the animation demo as seen by HTTP.
type AnimationService interface {
	View(sessionID string) animation.View
	HandleKey(sessionID string, key models.Key) animation.View
	Select(sessionID, operation string) (animation.View, error)
}

// AnimationHandler exposes the animation screen.
type AnimationHandler struct {
	svc    AnimationService
	logger *zap.Logger
}

func NewAnimationHandler(svc AnimationService, logger *zap.Logger) *AnimationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnimationHandler{svc: svc, logger: logger}
}

func (h *AnimationHandler) Frame(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.View(SessionID(c)))
}

func (h *AnimationHandler) Key(c *gin.Context) {
	var req models.KeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid key payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, h.svc.HandleKey(SessionID(c), models.ParseKey(req.Key)))
}

// Operation switches the demonstrated operation.
func (h *AnimationHandler) Operation(c *gin.Context) {
	var req models.OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid operation payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	view, err := h.svc.Select(SessionID(c), req.Operation)
	if err != nil {
		if errors.Is(err, animation.ErrUnknownOperation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed selecting operation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to select operation"})
		return
	}

	c.JSON(http.StatusOK, view)
}
