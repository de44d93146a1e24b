package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/online-test-service/internal/services"
	"github.com/SAP-F-2025/online-test-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler maintains test content and exports results. Routes are admin only.
type AdminHandler struct {
	BaseHandler
	adminService  services.AdminService
	exportService services.ExportService
}

func NewAdminHandler(
	adminService services.AdminService,
	exportService services.ExportService,
	logger utils.Logger,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:   NewBaseHandler(logger),
		adminService:  adminService,
		exportService: exportService,
	}
}

// ListTests lists tests for the admin dashboard
// @Summary List tests (admin)
// @Tags admin
// @Produce json
// @Success 200 {object} ListResponse{items=[]services.TestSummaryResponse}
// @Failure 403 {object} ErrorResponse
// @Router /admin/tests [get]
func (h *AdminHandler) ListTests(c *gin.Context) {
	filters, page, size := parseTestFilters(c)

	tests, total, err := h.adminService.ListTestsForAdmin(c.Request.Context(), filters)
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

// CreateTest creates a test with its passages, listening parts and questions
// @Summary Create test
// @Tags admin
// @Accept json
// @Produce json
// @Param test body services.TestRequest true "Test content"
// @Success 201 {object} services.AdminTestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/tests [post]
func (h *AdminHandler) CreateTest(c *gin.Context) {
	var req services.TestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	adminID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	test, err := h.adminService.CreateTest(c.Request.Context(), &req, adminID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, test)
}

// GetTest returns a test including correct answers for editing
// @Summary Get test for edit
// @Tags admin
// @Produce json
// @Param id path uint true "Test ID"
// @Success 200 {object} services.AdminTestResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/tests/{id} [get]
func (h *AdminHandler) GetTest(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	test, err := h.adminService.GetTestForEdit(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, test)
}

// UpdateTest replaces a test's content wholesale
// @Summary Update test
// @Tags admin
// @Accept json
// @Produce json
// @Param id path uint true "Test ID"
// @Param test body services.TestRequest true "Test content"
// @Success 200 {object} services.AdminTestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/tests/{id} [put]
func (h *AdminHandler) UpdateTest(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.TestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	adminID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Updating test", "test_id", id)

	test, err := h.adminService.UpdateTest(c.Request.Context(), id, &req, adminID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, test)
}

// DeleteTest deletes a test together with its attempts
// @Summary Delete test
// @Tags admin
// @Param id path uint true "Test ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /admin/tests/{id} [delete]
func (h *AdminHandler) DeleteTest(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	adminID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting test", "test_id", id)

	if err := h.adminService.DeleteTest(c.Request.Context(), id, adminID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ExportResults downloads every attempt of a test as a spreadsheet
// @Summary Export results
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path uint true "Test ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /admin/tests/{id}/results/export [get]
func (h *AdminHandler) ExportResults(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	adminID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	data, filename, err := h.exportService.ExportTestResults(c.Request.Context(), id, adminID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
