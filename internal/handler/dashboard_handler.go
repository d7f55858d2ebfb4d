package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smklab/lms-backend/internal/middleware"
	"github.com/smklab/lms-backend/internal/response"
	"github.com/smklab/lms-backend/internal/service"
)

// DashboardHandler serves the admin and teacher dashboard summaries.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetAdminDashboard godoc
// GET /api/v1/staff/dashboard
func (h *DashboardHandler) GetAdminDashboard(c *gin.Context) {
	data, err := h.dashboardService.GetAdminDashboard(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, data)
}

// GetTeacherDashboard godoc
// GET /api/v1/staff/dashboard/teacher
// Scoped to the authenticated teacher's classes and quizzes.
func (h *DashboardHandler) GetTeacherDashboard(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	data, err := h.dashboardService.GetTeacherDashboard(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, data)
}
