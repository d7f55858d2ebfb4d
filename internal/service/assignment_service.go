package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/repository"
)

// Assignment errors surfaced to handlers.
var (
	ErrScoreExceedsMax   = errors.New("score exceeds the assignment maximum")
	ErrAlreadySubmitted  = errors.New("assignment already submitted")
	ErrSubmissionMissing = errors.New("submission not found")
)

// AssignmentService handles assignment and submission business logic.
type AssignmentService struct {
	assignmentRepo *repository.AssignmentRepository
	enrollment     *EnrollmentService
	gradeService   *GradeService
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	enrollment *EnrollmentService,
	gradeService *GradeService,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		enrollment:     enrollment,
		gradeService:   gradeService,
	}
}

// GetByID retrieves an assignment.
func (s *AssignmentService) GetByID(ctx context.Context, id int) (*model.Assignment, error) {
	return s.assignmentRepo.GetByID(ctx, id)
}

// ListForStudent retrieves a class's assignments after verifying the
// student's enrollment.
func (s *AssignmentService) ListForStudent(ctx context.Context, studentID, classID int, subjectID *int) ([]model.Assignment, error) {
	if err := s.enrollment.RequireStudentInClass(ctx, studentID, classID); err != nil {
		return nil, err
	}
	assignments, err := s.assignmentRepo.ListByClass(ctx, classID, subjectID)
	if err != nil {
		return nil, err
	}
	if assignments == nil {
		assignments = []model.Assignment{}
	}
	return assignments, nil
}

// ListForTeacher retrieves assignments a teacher has created.
func (s *AssignmentService) ListForTeacher(ctx context.Context, teacherID int) ([]model.Assignment, error) {
	assignments, err := s.assignmentRepo.ListByAuthor(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if assignments == nil {
		assignments = []model.Assignment{}
	}
	return assignments, nil
}

// Create publishes an assignment to a class after verifying the teacher
// is assigned to the class+subject.
func (s *AssignmentService) Create(ctx context.Context, teacherID int, req *model.CreateAssignmentRequest) (*model.Assignment, error) {
	if err := s.enrollment.RequireTeacherForClass(ctx, teacherID, req.ClassID, req.SubjectID); err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		Title:       req.Title,
		Description: req.Description,
		FileURL:     req.FileURL,
		ClassID:     req.ClassID,
		SubjectID:   req.SubjectID,
		AuthorID:    teacherID,
		DueAt:       req.DueAt,
		MaxScore:    req.MaxScore,
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// Update rewrites an assignment. Only the author may edit it.
func (s *AssignmentService) Update(ctx context.Context, teacherID, id int, req *model.UpdateAssignmentRequest) (*model.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.AuthorID != teacherID {
		return nil, ErrNotOwner
	}

	if req.Title != "" {
		assignment.Title = req.Title
	}
	if req.Description != "" {
		assignment.Description = req.Description
	}
	if req.FileURL != "" {
		assignment.FileURL = req.FileURL
	}
	if req.DueAt != nil {
		assignment.DueAt = *req.DueAt
	}
	if req.MaxScore != nil {
		assignment.MaxScore = *req.MaxScore
	}
	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// Delete removes an assignment. Only the author may delete it.
func (s *AssignmentService) Delete(ctx context.Context, teacherID, id int) error {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if assignment.AuthorID != teacherID {
		return ErrNotOwner
	}
	return s.assignmentRepo.Delete(ctx, id)
}

// Submit records a student's submission. Late submissions are accepted
// but flagged so the teacher sees them.
func (s *AssignmentService) Submit(ctx context.Context, studentID, assignmentID int, req *model.SubmitAssignmentRequest) (*model.Submission, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if err := s.enrollment.RequireStudentInClass(ctx, studentID, assignment.ClassID); err != nil {
		return nil, err
	}

	now := time.Now()
	submission := &model.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Content:      req.Content,
		FileURL:      req.FileURL,
		SubmittedAt:  now,
		IsLate:       now.After(assignment.DueAt),
	}
	if err := s.assignmentRepo.CreateSubmission(ctx, submission); err != nil {
		if errors.Is(err, repository.ErrDuplicateSubmission) {
			return nil, ErrAlreadySubmitted
		}
		return nil, err
	}
	return submission, nil
}

// GetSubmissionForStudent retrieves a student's own submission.
func (s *AssignmentService) GetSubmissionForStudent(ctx context.Context, studentID, assignmentID int) (*model.Submission, error) {
	return s.assignmentRepo.GetSubmission(ctx, assignmentID, studentID)
}

// ListSubmissions retrieves all submissions of an assignment for its
// author.
func (s *AssignmentService) ListSubmissions(ctx context.Context, teacherID, assignmentID int) ([]model.Submission, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.AuthorID != teacherID {
		return nil, ErrNotOwner
	}
	submissions, err := s.assignmentRepo.ListSubmissions(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if submissions == nil {
		submissions = []model.Submission{}
	}
	return submissions, nil
}

// GradeSubmission scores a submission and records the grade in the
// gradebook as a percentage of the assignment maximum.
func (s *AssignmentService) GradeSubmission(ctx context.Context, teacherID, submissionID int, req *model.GradeSubmissionRequest) (*model.Submission, error) {
	submission, err := s.assignmentRepo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, ErrSubmissionMissing
	}
	assignment, err := s.assignmentRepo.GetByID(ctx, submission.AssignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.AuthorID != teacherID {
		return nil, ErrNotOwner
	}
	if req.Score > assignment.MaxScore {
		return nil, ErrScoreExceedsMax
	}

	if err := s.assignmentRepo.GradeSubmission(ctx, submissionID, req.Score, req.Feedback, teacherID); err != nil {
		return nil, err
	}

	percentage := 0.0
	if assignment.MaxScore > 0 {
		percentage = req.Score / assignment.MaxScore * 100
	}
	err = s.gradeService.RecordFromSource(ctx, &model.Grade{
		StudentID:  submission.StudentID,
		ClassID:    assignment.ClassID,
		SubjectID:  assignment.SubjectID,
		Source:     model.GradeSourceAssignment,
		SourceID:   strconv.Itoa(assignment.ID),
		Label:      assignment.Title,
		Score:      percentage,
		RecordedBy: teacherID,
	})
	if err != nil {
		return nil, fmt.Errorf("record grade: %w", err)
	}

	return s.assignmentRepo.GetSubmissionByID(ctx, submissionID)
}
