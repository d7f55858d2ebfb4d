package service

import (
	"context"
	"errors"

	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/repository"
)

// Enrollment errors surfaced to handlers.
var (
	ErrNotEnrolled     = errors.New("student is not actively enrolled in this class")
	ErrNotAssigned     = errors.New("teacher is not assigned to this class and subject")
	ErrStudentNotFound = errors.New("student not found")
)

// EnrollmentService handles enrollment and teaching assignment logic.
// It is also the access gate: quiz, material, and assignment services
// ask it whether a student or teacher belongs to a class.
type EnrollmentService struct {
	enrollRepo  *repository.EnrollmentRepository
	studentRepo *repository.StudentRepository
	classRepo   *repository.ClassRepository
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(
	enrollRepo *repository.EnrollmentRepository,
	studentRepo *repository.StudentRepository,
	classRepo *repository.ClassRepository,
) *EnrollmentService {
	return &EnrollmentService{
		enrollRepo:  enrollRepo,
		studentRepo: studentRepo,
		classRepo:   classRepo,
	}
}

// ListByClass retrieves the enrollments of a class for an academic year.
func (s *EnrollmentService) ListByClass(ctx context.Context, classID int, academicYear string) ([]model.Enrollment, error) {
	enrollments, err := s.enrollRepo.ListByClass(ctx, classID, academicYear)
	if err != nil {
		return nil, err
	}
	if enrollments == nil {
		enrollments = []model.Enrollment{}
	}
	return enrollments, nil
}

// Enroll places a student into a class for an academic year and moves
// the student record to that class.
func (s *EnrollmentService) Enroll(ctx context.Context, req *model.CreateEnrollmentRequest) (*model.Enrollment, error) {
	student, err := s.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, ErrStudentNotFound
	}
	if _, err := s.classRepo.GetByID(ctx, req.ClassID); err != nil {
		return nil, errors.New("class not found")
	}

	enrollment := &model.Enrollment{
		StudentID:    req.StudentID,
		ClassID:      req.ClassID,
		AcademicYear: req.AcademicYear,
	}
	if err := s.enrollRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	// The student row tracks the current class for login claims and
	// lobby queries.
	student.ClassID = req.ClassID
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	return s.enrollRepo.GetByID(ctx, enrollment.ID)
}

// Update changes an enrollment's class or status. Moving a student also
// updates their current class.
func (s *EnrollmentService) Update(ctx context.Context, id int, req *model.UpdateEnrollmentRequest) (*model.Enrollment, error) {
	enrollment, err := s.enrollRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("enrollment not found")
	}

	enrollment.ClassID = req.ClassID
	enrollment.Status = req.Status
	if err := s.enrollRepo.Update(ctx, enrollment); err != nil {
		return nil, err
	}

	if req.Status == model.EnrollmentStatusActive {
		student, err := s.studentRepo.GetByID(ctx, enrollment.StudentID)
		if err == nil && student.ClassID != req.ClassID {
			student.ClassID = req.ClassID
			if err := s.studentRepo.Update(ctx, student); err != nil {
				return nil, err
			}
		}
	}

	return s.enrollRepo.GetByID(ctx, id)
}

// Delete removes an enrollment.
func (s *EnrollmentService) Delete(ctx context.Context, id int) error {
	return s.enrollRepo.Delete(ctx, id)
}

// RequireStudentInClass returns ErrNotEnrolled unless the student has an
// ACTIVE enrollment in the class.
func (s *EnrollmentService) RequireStudentInClass(ctx context.Context, studentID, classID int) error {
	ok, err := s.enrollRepo.IsStudentActiveInClass(ctx, studentID, classID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotEnrolled
	}
	return nil
}

// RequireTeacherForClass returns ErrNotAssigned unless the teacher
// teaches the subject in the class.
func (s *EnrollmentService) RequireTeacherForClass(ctx context.Context, teacherID, classID, subjectID int) error {
	ok, err := s.enrollRepo.TeacherTeaches(ctx, teacherID, classID, subjectID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAssigned
	}
	return nil
}

// ListTeachingAssignments retrieves teaching assignments, optionally
// scoped to one teacher.
func (s *EnrollmentService) ListTeachingAssignments(ctx context.Context, teacherID *int) ([]model.TeachingAssignment, error) {
	assignments, err := s.enrollRepo.ListTeachingAssignments(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if assignments == nil {
		assignments = []model.TeachingAssignment{}
	}
	return assignments, nil
}

// AssignTeacher binds a teacher to a class+subject pair.
func (s *EnrollmentService) AssignTeacher(ctx context.Context, req *model.CreateTeachingAssignmentRequest) (*model.TeachingAssignment, error) {
	ta := &model.TeachingAssignment{
		TeacherID: req.TeacherID,
		ClassID:   req.ClassID,
		SubjectID: req.SubjectID,
	}
	if err := s.enrollRepo.CreateTeachingAssignment(ctx, ta); err != nil {
		return nil, err
	}
	return ta, nil
}

// UnassignTeacher removes a teaching assignment.
func (s *EnrollmentService) UnassignTeacher(ctx context.Context, id int) error {
	return s.enrollRepo.DeleteTeachingAssignment(ctx, id)
}
