package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/response"
	"github.com/smklab/lms-backend/internal/service"
	"github.com/smklab/lms-backend/internal/validator"
)

// MajorHandler handles vocational major management.
type MajorHandler struct {
	majorService *service.MajorService
}

// NewMajorHandler creates a new MajorHandler.
func NewMajorHandler(majorService *service.MajorService) *MajorHandler {
	return &MajorHandler{majorService: majorService}
}

// ListMajors godoc
// GET /api/v1/staff/majors
func (h *MajorHandler) ListMajors(c *gin.Context) {
	majors, err := h.majorService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"majors": majors})
}

// CreateMajor godoc
// POST /api/v1/staff/majors
func (h *MajorHandler) CreateMajor(c *gin.Context) {
	var req model.CreateMajorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	major, err := h.majorService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"major": major})
}

// UpdateMajor godoc
// PUT /api/v1/staff/majors/:id
func (h *MajorHandler) UpdateMajor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateMajorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	major, err := h.majorService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"major": major})
}

// DeleteMajor godoc
// DELETE /api/v1/staff/majors/:id
func (h *MajorHandler) DeleteMajor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.majorService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
