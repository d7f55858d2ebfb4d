package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/repository"
)

// GradeService handles gradebook business logic.
type GradeService struct {
	gradeRepo *repository.GradeRepository
	log       zerolog.Logger
}

// NewGradeService creates a new GradeService.
func NewGradeService(gradeRepo *repository.GradeRepository, log zerolog.Logger) *GradeService {
	return &GradeService{
		gradeRepo: gradeRepo,
		log:       log.With().Str("component", "grade_service").Logger(),
	}
}

// LetterGrade maps a 0-100 score to the report card letter band.
// Boundaries are inclusive: exactly 90 is an A.
func LetterGrade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	default:
		return "D"
	}
}

// ListForStudent retrieves a student's own grade entries.
func (s *GradeService) ListForStudent(ctx context.Context, studentID int, subjectID *int) ([]model.Grade, error) {
	grades, err := s.gradeRepo.ListByStudent(ctx, studentID, subjectID)
	if err != nil {
		return nil, err
	}
	if grades == nil {
		grades = []model.Grade{}
	}
	return grades, nil
}

// ListForClass retrieves every grade entry of a class+subject pair.
func (s *GradeService) ListForClass(ctx context.Context, classID, subjectID int) ([]model.Grade, error) {
	grades, err := s.gradeRepo.ListByClassSubject(ctx, classID, subjectID)
	if err != nil {
		return nil, err
	}
	if grades == nil {
		grades = []model.Grade{}
	}
	return grades, nil
}

// Summarize rolls up per-student averages with letter grades for a
// class+subject pair.
func (s *GradeService) Summarize(ctx context.Context, classID, subjectID int) ([]model.GradeSummary, error) {
	summaries, err := s.gradeRepo.SummarizeByClassSubject(ctx, classID, subjectID)
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		summaries[i].Letter = LetterGrade(summaries[i].Average)
	}
	if summaries == nil {
		summaries = []model.GradeSummary{}
	}
	return summaries, nil
}

// RecordManual inserts a teacher-entered grade.
func (s *GradeService) RecordManual(ctx context.Context, teacherID int, req *model.CreateGradeRequest) (*model.Grade, error) {
	grade := &model.Grade{
		StudentID:  req.StudentID,
		ClassID:    req.ClassID,
		SubjectID:  req.SubjectID,
		Source:     model.GradeSourceManual,
		Label:      req.Label,
		Score:      req.Score,
		RecordedBy: teacherID,
	}
	if err := s.gradeRepo.Create(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

// RecordFromSource upserts a grade derived from a quiz or assignment.
// Regrading the source overwrites the previous entry.
func (s *GradeService) RecordFromSource(ctx context.Context, grade *model.Grade) error {
	return s.gradeRepo.UpsertFromSource(ctx, grade)
}

// UpdateManual changes a manual entry's label and score.
func (s *GradeService) UpdateManual(ctx context.Context, id int, label string, score float64) (*model.Grade, error) {
	grade, err := s.gradeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if grade.Source != model.GradeSourceManual {
		return nil, fmt.Errorf("only manual entries can be edited, this one came from %s", grade.Source)
	}
	if err := s.gradeRepo.Update(ctx, id, label, score); err != nil {
		return nil, err
	}
	return s.gradeRepo.GetByID(ctx, id)
}

// Delete removes a grade entry.
func (s *GradeService) Delete(ctx context.Context, id int) error {
	return s.gradeRepo.Delete(ctx, id)
}

// ExportCSV streams the gradebook of a class+subject pair as CSV: one
// row per student with every entry column plus average and letter.
func (s *GradeService) ExportCSV(ctx context.Context, w io.Writer, classID, subjectID int) error {
	grades, err := s.gradeRepo.ListByClassSubject(ctx, classID, subjectID)
	if err != nil {
		return fmt.Errorf("list grades: %w", err)
	}
	summaries, err := s.Summarize(ctx, classID, subjectID)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	// Column set: union of entry labels in first-seen order.
	var labels []string
	seen := make(map[string]int)
	entries := make(map[int]map[string]float64)
	for _, g := range grades {
		if _, ok := seen[g.Label]; !ok {
			seen[g.Label] = len(labels)
			labels = append(labels, g.Label)
		}
		if entries[g.StudentID] == nil {
			entries[g.StudentID] = make(map[string]float64)
		}
		entries[g.StudentID][g.Label] = g.Score
	}

	cw := csv.NewWriter(w)
	header := append([]string{"NISN", "Nama"}, labels...)
	header = append(header, "Rata-rata", "Huruf")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, sum := range summaries {
		row := []string{sum.NISN, sum.StudentName}
		studentEntries := entries[sum.StudentID]
		for _, label := range labels {
			if score, ok := studentEntries[label]; ok {
				row = append(row, strconv.FormatFloat(score, 'f', 2, 64))
			} else {
				row = append(row, "")
			}
		}
		row = append(row, strconv.FormatFloat(sum.Average, 'f', 2, 64), sum.Letter)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
