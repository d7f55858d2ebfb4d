package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/smklab/lms-backend/internal/middleware"
	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/response"
	"github.com/smklab/lms-backend/internal/service"
	"github.com/smklab/lms-backend/internal/validator"
)

// GradeHandler handles the teacher-side gradebook.
type GradeHandler struct {
	gradeService *service.GradeService
}

// NewGradeHandler creates a new GradeHandler.
func NewGradeHandler(gradeService *service.GradeService) *GradeHandler {
	return &GradeHandler{gradeService: gradeService}
}

// ListGrades godoc
// GET /api/v1/staff/grades?class_id=&subject_id=
// Returns all gradebook entries for one class and subject.
func (h *GradeHandler) ListGrades(c *gin.Context) {
	classID, err := strconv.Atoi(c.Query("class_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	subjectID, err := strconv.Atoi(c.Query("subject_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	grades, err := h.gradeService.ListForClass(c.Request.Context(), classID, subjectID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"grades": grades})
}

// SummarizeGrades godoc
// GET /api/v1/staff/grades/summary?class_id=&subject_id=
// Returns the per-student average with its letter grade.
func (h *GradeHandler) SummarizeGrades(c *gin.Context) {
	classID, err := strconv.Atoi(c.Query("class_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	subjectID, err := strconv.Atoi(c.Query("subject_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	summaries, err := h.gradeService.Summarize(c.Request.Context(), classID, subjectID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": summaries})
}

// CreateGrade godoc
// POST /api/v1/staff/grades
// Records a manual gradebook entry (e.g. a participation score).
func (h *GradeHandler) CreateGrade(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateGradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	grade, err := h.gradeService.RecordManual(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotEnrolled) {
			response.Fail(c, http.StatusBadRequest, response.ErrNotEnrolled)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"grade": grade})
}

// UpdateGrade godoc
// PUT /api/v1/staff/grades/:id
func (h *GradeHandler) UpdateGrade(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateGradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	grade, err := h.gradeService.UpdateManual(c.Request.Context(), id, req.Label, req.Score)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"grade": grade})
}

// DeleteGrade godoc
// DELETE /api/v1/staff/grades/:id
func (h *GradeHandler) DeleteGrade(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.gradeService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// ExportGradesCSV godoc
// GET /api/v1/staff/grades/export?class_id=&subject_id=
// Streams the class gradebook as a CSV download.
func (h *GradeHandler) ExportGradesCSV(c *gin.Context) {
	classID, err := strconv.Atoi(c.Query("class_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	subjectID, err := strconv.Atoi(c.Query("subject_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	filename := fmt.Sprintf("nilai_kelas_%d_mapel_%d.csv", classID, subjectID)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.gradeService.ExportCSV(c.Request.Context(), c.Writer, classID, subjectID); err != nil {
		// Headers are already out; close the stream quietly.
		c.Status(http.StatusInternalServerError)
		return
	}
}
