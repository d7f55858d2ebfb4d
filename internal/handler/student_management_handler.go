package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/repository"
	"github.com/smklab/lms-backend/internal/response"
	"github.com/smklab/lms-backend/internal/service"
	"github.com/smklab/lms-backend/internal/validator"
)

// StudentManagementHandler is the staff-side CRUD surface for student
// accounts, plus the session reset used when a student gets locked out of
// their single-device login.
type StudentManagementHandler struct {
	studentService *service.StudentService
	authService    *service.AuthService
}

func NewStudentManagementHandler(studentService *service.StudentService, authService *service.AuthService) *StudentManagementHandler {
	return &StudentManagementHandler{
		studentService: studentService,
		authService:    authService,
	}
}

// ListStudents godoc
// GET /api/v1/staff/students?class_id=&page=&per_page=
func (h *StudentManagementHandler) ListStudents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	students, pagination, err := h.studentService.ListStudents(c.Request.Context(),
		optionalIntQuery(c, "class_id"), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"students": students}, pagination)
}

// CreateStudent godoc
// POST /api/v1/staff/students
func (h *StudentManagementHandler) CreateStudent(c *gin.Context) {
	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student := &model.Student{
		NIS:          req.NIS,
		NISN:         req.NISN,
		Name:         req.Name,
		Gender:       req.Gender,
		Email:        req.Email,
		GuardianName: req.GuardianName,
		PasswordHash: req.Password, // hashed by the service
		ClassID:      req.ClassID,
	}

	if err := h.studentService.Create(c.Request.Context(), student); err != nil {
		h.failStudentWrite(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"student": student})
}

// UpdateStudent godoc
// PUT /api/v1/staff/students/:id
// An empty password field leaves the current password untouched.
func (h *StudentManagementHandler) UpdateStudent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student := &model.Student{
		ID:           id,
		NIS:          req.NIS,
		NISN:         req.NISN,
		Name:         req.Name,
		Gender:       req.Gender,
		Email:        req.Email,
		GuardianName: req.GuardianName,
		PasswordHash: req.Password,
		ClassID:      req.ClassID,
	}

	if err := h.studentService.Update(c.Request.Context(), student, req.Password != ""); err != nil {
		h.failStudentWrite(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": student})
}

func (h *StudentManagementHandler) failStudentWrite(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrDuplicateNISN) {
		response.Fail(c, http.StatusConflict, response.ErrConflict)
		return
	}
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}

// DeleteStudent godoc
// DELETE /api/v1/staff/students/:id
func (h *StudentManagementHandler) DeleteStudent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ResetStudentSession godoc
// POST /api/v1/staff/students/:id/reset-session
func (h *StudentManagementHandler) ResetStudentSession(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.authService.ResetStudentSession(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
