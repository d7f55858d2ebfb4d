package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smklab/lms-backend/internal/middleware"
	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/repository"
	"github.com/smklab/lms-backend/internal/response"
	"github.com/smklab/lms-backend/internal/service"
	"github.com/smklab/lms-backend/internal/validator"
)

// StudentPortalHandler handles student-facing endpoints: the quiz lobby,
// attempt lifecycle, and class content views.
type StudentPortalHandler struct {
	attemptService      *service.AttemptService
	quizService         *service.QuizService
	materialService     *service.MaterialService
	assignmentService   *service.AssignmentService
	gradeService        *service.GradeService
	announcementService *service.AnnouncementService
}

// NewStudentPortalHandler creates a new StudentPortalHandler.
func NewStudentPortalHandler(
	attemptService *service.AttemptService,
	quizService *service.QuizService,
	materialService *service.MaterialService,
	assignmentService *service.AssignmentService,
	gradeService *service.GradeService,
	announcementService *service.AnnouncementService,
) *StudentPortalHandler {
	return &StudentPortalHandler{
		attemptService:      attemptService,
		quizService:         quizService,
		materialService:     materialService,
		assignmentService:   assignmentService,
		gradeService:        gradeService,
		announcementService: announcementService,
	}
}

// GetLobby godoc
// GET /api/v1/student/lobby
// Returns published quizzes of the student's class with the student's own
// attempt status overlaid.
func (h *StudentPortalHandler) GetLobby(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	lobby, err := h.attemptService.GetLobby(c.Request.Context(), claims.UserID, claims.ClassID)
	if err != nil {
		if errors.Is(err, service.ErrNotEnrolled) {
			response.Fail(c, http.StatusForbidden, response.ErrNotEnrolled)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quizzes": lobby})
}

// StartAttempt godoc
// POST /api/v1/student/quizzes/:quiz_id/attempts
// Opens (or resumes) the student's attempt. The returned payload never
// contains correct-answer flags unless the quiz opted in.
func (h *StudentPortalHandler) StartAttempt(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	attempt, payload, err := h.attemptService.Start(c.Request.Context(), quizID, claims.UserID, claims.ClassID)
	if err != nil {
		h.failAttemptError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"attempt": attempt,
		"quiz":    payload,
	})
}

// GetAttemptState godoc
// GET /api/v1/student/quizzes/:quiz_id/attempts/state
// Covers page reload: returns draft answers and the server-anchored
// remaining time so the client can restore its timer.
func (h *StudentPortalHandler) GetAttemptState(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	state, err := h.attemptService.GetState(c.Request.Context(), quizID, claims.UserID)
	if err != nil {
		h.failAttemptError(c, err)
		return
	}

	response.Success(c, http.StatusOK, state)
}

// SaveAnswer godoc
// PUT /api/v1/student/quizzes/:quiz_id/attempts/answers
// Saves one draft answer. The HTTP path mirrors the WebSocket autosave
// action for clients without a socket.
func (h *StudentPortalHandler) SaveAnswer(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SaveAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.attemptService.SaveAnswer(c.Request.Context(), quizID, claims.UserID, req.QuestionID, req.Answer); err != nil {
		h.failAttemptError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "saved"})
}

// SubmitAttempt godoc
// POST /api/v1/student/quizzes/:quiz_id/attempts/submit
// Finalizes the attempt. Objective questions are graded immediately;
// essays are left for the teacher.
func (h *StudentPortalHandler) SubmitAttempt(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SubmitAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	attempt, err := h.attemptService.Submit(c.Request.Context(), quizID, claims.UserID, req.Answers, false)
	if err != nil {
		h.failAttemptError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attempt": attempt})
}

// GetAttemptResult godoc
// GET /api/v1/student/quizzes/:quiz_id/attempts/result
// Returns the per-question breakdown once the attempt is submitted.
func (h *StudentPortalHandler) GetAttemptResult(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	result, err := h.attemptService.Result(c.Request.Context(), quizID, claims.UserID)
	if err != nil {
		h.failAttemptError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListMaterials godoc
// GET /api/v1/student/materials?subject_id=
func (h *StudentPortalHandler) ListMaterials(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	materials, err := h.materialService.ListForStudent(c.Request.Context(), claims.UserID, claims.ClassID, optionalIntQuery(c, "subject_id"))
	if err != nil {
		if errors.Is(err, service.ErrNotEnrolled) {
			response.Fail(c, http.StatusForbidden, response.ErrNotEnrolled)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"materials": materials})
}

// ListAssignments godoc
// GET /api/v1/student/assignments?subject_id=
func (h *StudentPortalHandler) ListAssignments(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	assignments, err := h.assignmentService.ListForStudent(c.Request.Context(), claims.UserID, claims.ClassID, optionalIntQuery(c, "subject_id"))
	if err != nil {
		if errors.Is(err, service.ErrNotEnrolled) {
			response.Fail(c, http.StatusForbidden, response.ErrNotEnrolled)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assignments": assignments})
}

// SubmitAssignment godoc
// POST /api/v1/student/assignments/:id/submission
// One submission per assignment; resubmitting returns a conflict.
func (h *StudentPortalHandler) SubmitAssignment(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	assignmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SubmitAssignmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	submission, err := h.assignmentService.Submit(c.Request.Context(), claims.UserID, assignmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadySubmitted):
			response.Fail(c, http.StatusConflict, response.ErrAlreadySubmitted)
		case errors.Is(err, service.ErrNotEnrolled):
			response.Fail(c, http.StatusForbidden, response.ErrNotEnrolled)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"submission": submission})
}

// GetMySubmission godoc
// GET /api/v1/student/assignments/:id/submission
func (h *StudentPortalHandler) GetMySubmission(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	assignmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	submission, err := h.assignmentService.GetSubmissionForStudent(c.Request.Context(), claims.UserID, assignmentID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": submission})
}

// ListGrades godoc
// GET /api/v1/student/grades?subject_id=
func (h *StudentPortalHandler) ListGrades(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	grades, err := h.gradeService.ListForStudent(c.Request.Context(), claims.UserID, optionalIntQuery(c, "subject_id"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"grades": grades})
}

// ListAnnouncements godoc
// GET /api/v1/student/announcements
// Returns school-wide and own-class announcements inside their publish
// window.
func (h *StudentPortalHandler) ListAnnouncements(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	announcements, err := h.announcementService.ListForStudent(c.Request.Context(), claims.ClassID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"announcements": announcements})
}

// failAttemptError maps attempt service errors to API error codes.
func (h *StudentPortalHandler) failAttemptError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrQuizNotAvailable),
		errors.Is(err, service.ErrQuizNotOpenYet),
		errors.Is(err, service.ErrQuizWindowClosed):
		response.Fail(c, http.StatusBadRequest, response.ErrQuizNotAvailable)
	case errors.Is(err, service.ErrNotEnrolled):
		response.Fail(c, http.StatusForbidden, response.ErrNotEnrolled)
	case errors.Is(err, service.ErrAttemptNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrAttemptNotFound)
	case errors.Is(err, service.ErrAttemptExpired):
		response.Fail(c, http.StatusConflict, response.ErrAttemptExpired)
	case errors.Is(err, repository.ErrAttemptNotInProgress):
		response.Fail(c, http.StatusConflict, response.ErrAttemptSubmitted)
	case errors.Is(err, service.ErrAttemptNotSubmitted):
		response.Fail(c, http.StatusConflict, response.ErrActionForbidden)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// optionalIntQuery parses an optional integer query parameter.
func optionalIntQuery(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
