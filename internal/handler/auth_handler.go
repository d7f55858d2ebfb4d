package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smklab/lms-backend/internal/middleware"
	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/response"
	"github.com/smklab/lms-backend/internal/service"
	"github.com/smklab/lms-backend/internal/validator"
)

// AuthHandler serves the login, logout and profile endpoints for both the
// student portal and the staff panel.
type AuthHandler struct {
	authService    *service.AuthService
	studentService *service.StudentService
	userService    *service.UserService
}

func NewAuthHandler(
	authService *service.AuthService,
	studentService *service.StudentService,
	userService *service.UserService,
) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		studentService: studentService,
		userService:    userService,
	}
}

func studentProfileJSON(s *model.Student) gin.H {
	return gin.H{
		"id":       s.ID,
		"nisn":     s.NISN,
		"name":     s.Name,
		"class_id": s.ClassID,
	}
}

func staffProfileJSON(u *model.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"email":     u.Email,
		"name":      u.Name,
		"nip":       u.NIP,
		"role_id":   u.RoleID,
		"role_name": u.RoleName,
	}
}

// StudentLogin godoc
// POST /api/v1/auth/student/login
// NISN + password. A login while another device holds the session is
// refused with 409 until an admin resets it.
func (h *AuthHandler) StudentLogin(c *gin.Context) {
	var req model.StudentLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.GetByNISN(c.Request.Context(), req.NISN)
	if err != nil {
		// Same error for unknown NISN and wrong password.
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}
	if err := h.authService.CheckPassword(student.PasswordHash, req.Password); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	token, err := h.authService.GenerateStudentToken(c.Request.Context(), student.ID, student.ClassID)
	switch {
	case errors.Is(err, service.ErrSessionAlreadyActive):
		response.Fail(c, http.StatusConflict, response.ErrSessionActive)
		return
	case err != nil:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token":   token,
		"student": studentProfileJSON(student),
	})
}

// StudentLogout godoc
// POST /api/v1/auth/student/logout
func (h *AuthHandler) StudentLogout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.ResetStudentSession(c.Request.Context(), claims.UserID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// GetStudentProfile godoc
// GET /api/v1/auth/student/me
func (h *AuthHandler) GetStudentProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": studentProfileJSON(student)})
}

// StaffLogin godoc
// POST /api/v1/auth/staff/login
// Email + password for teachers and admins. The role's permission codes
// ride along in the token and the response so the frontend can hide
// screens the user cannot reach.
func (h *AuthHandler) StaffLogin(c *gin.Context) {
	var req model.UserLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}
	if err := h.authService.CheckPassword(user.PasswordHash, req.Password); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	permissions, err := h.userService.GetPermissions(c.Request.Context(), user.RoleID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	token, err := h.authService.GenerateStaffToken(user.ID, user.RoleID, permissions)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token":       token,
		"user":        staffProfileJSON(user),
		"permissions": permissions,
	})
}

// GetStaffProfile godoc
// GET /api/v1/auth/staff/me
func (h *AuthHandler) GetStaffProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	permissions, err := h.userService.GetPermissions(c.Request.Context(), user.RoleID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":        staffProfileJSON(user),
		"permissions": permissions,
	})
}
