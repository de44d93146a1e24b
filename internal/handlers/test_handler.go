package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/online-test-service/internal/services"
	"github.com/SAP-F-2025/online-test-service/internal/utils"
)

// TestHandler serves the candidate side of tests: browsing content and submitting answers
type TestHandler struct {
	BaseHandler
	catalogService    services.CatalogService
	submissionService services.SubmissionService
}

func NewTestHandler(
	catalogService services.CatalogService,
	submissionService services.SubmissionService,
	logger utils.Logger,
) *TestHandler {
	return &TestHandler{
		BaseHandler:       NewBaseHandler(logger),
		catalogService:    catalogService,
		submissionService: submissionService,
	}
}

// ListTests lists published tests
// @Summary List tests
// @Tags tests
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Param test_type_id query int false "Filter by test type"
// @Param skill_type_id query int false "Filter by skill"
// @Param search query string false "Title search"
// @Success 200 {object} ListResponse{items=[]services.TestSummaryResponse}
// @Router /tests [get]
func (h *TestHandler) ListTests(c *gin.Context) {
	filters, page, size := parseTestFilters(c)

	tests, total, err := h.catalogService.ListTests(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Items: tests,
		Total: total,
		Page:  page,
		Size:  size,
	})
}

// GetTestDetails returns passages and questions without correct answers
// @Summary Get test details
// @Tags tests
// @Produce json
// @Param id path uint true "Test ID"
// @Success 200 {object} services.TestDetailsResponse
// @Failure 404 {object} ErrorResponse
// @Router /tests/{id} [get]
func (h *TestHandler) GetTestDetails(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	details, err := h.catalogService.GetTestDetails(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// GetListeningTestDetails returns the audio link, parts and question groups of a listening test
// @Summary Get listening test details
// @Tags tests
// @Produce json
// @Param id path uint true "Test ID"
// @Success 200 {object} services.ListeningTestDetailsResponse
// @Failure 404 {object} ErrorResponse
// @Router /tests/{id}/listening [get]
func (h *TestHandler) GetListeningTestDetails(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	details, err := h.catalogService.GetListeningTestDetails(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// SubmitTest grades and stores a whole submission
// @Summary Submit test
// @Tags tests
// @Accept json
// @Produce json
// @Param id path uint true "Test ID"
// @Param body body services.SubmitTestRequest true "Answers keyed by question id or q<questionId>_<cellId>"
// @Success 201 {object} services.SubmitTestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tests/{id}/submit [post]
func (h *TestHandler) SubmitTest(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req services.SubmitTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Submitting test", "test_id", id, "answers", len(req.Answers))

	resp, err := h.submissionService.Submit(c.Request.Context(), id, userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
