package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/online-test-service/internal/services"
	"github.com/SAP-F-2025/online-test-service/internal/utils"
)

type AttemptHandler struct {
	BaseHandler
	resultService services.ResultService
}

func NewAttemptHandler(resultService services.ResultService, logger utils.Logger) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler:   NewBaseHandler(logger),
		resultService: resultService,
	}
}

// GetTestResult returns a graded attempt with every question's answer and key
// @Summary Get attempt result
// @Tags attempts
// @Produce json
// @Param id path uint true "Attempt ID"
// @Success 200 {object} services.TestResultResponse
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{id}/result [get]
func (h *AttemptHandler) GetTestResult(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	result, err := h.resultService.GetTestResult(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMyHistory lists the caller's attempts, newest first
// @Summary Attempt history
// @Tags attempts
// @Produce json
// @Success 200 {array} services.HistoryItemResponse
// @Failure 401 {object} ErrorResponse
// @Router /attempts/me [get]
func (h *AttemptHandler) GetMyHistory(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	history, err := h.resultService.GetMyHistory(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
