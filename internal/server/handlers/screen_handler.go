package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/retrocalc/internal/view"
)

const textContentType = "text/plain; charset=utf-8"

// ScreenHandler serves the plain-text renderings of the three screens.
type ScreenHandler struct {
	calc CalculatorService
	hist HistoryService
	anim AnimationService
}

func NewScreenHandler(calc CalculatorService, hist HistoryService, anim AnimationService) *ScreenHandler {
	return &ScreenHandler{calc: calc, hist: hist, anim: anim}
}

func (h *ScreenHandler) Calculator(c *gin.Context) {
	c.Data(http.StatusOK, textContentType, []byte(view.Calculator(h.calc.View(SessionID(c)))))
}

func (h *ScreenHandler) History(c *gin.Context) {
	c.Data(http.StatusOK, textContentType, []byte(view.History(h.hist.View(c.Request.Context(), SessionID(c)))))
}

func (h *ScreenHandler) Animation(c *gin.Context) {
	c.Data(http.StatusOK, textContentType, []byte(view.Animation(h.anim.View(SessionID(c)))))
}
