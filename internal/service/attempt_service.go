package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/smklab/lms-backend/internal/config"
	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/repository"
	"github.com/smklab/lms-backend/internal/response"
)

// Attempt domain errors.
var (
	ErrQuizNotAvailable     = errors.New("quiz is not available")
	ErrQuizNotOpenYet       = errors.New("quiz has not opened yet")
	ErrQuizWindowClosed     = errors.New("quiz window has closed")
	ErrAttemptNotFound      = errors.New("no attempt found")
	ErrAttemptExpired       = errors.New("attempt time is over")
	ErrAttemptNotSubmitted  = errors.New("attempt has not been submitted yet")
	ErrEssayPointsTooHigh   = errors.New("earned points exceed the question maximum")
	ErrNotEssayQuestion     = errors.New("only essay answers are graded manually")
)

// RemainingSeconds derives the attempt countdown from the server-anchored
// start time. Client clocks never participate. Untimed attempts report
// zero remaining and never expire.
func RemainingSeconds(now, startedAt time.Time, timeLimitMinutes *int) (remaining int, expired bool) {
	if timeLimitMinutes == nil {
		return 0, false
	}
	deadline := startedAt.Add(time.Duration(*timeLimitMinutes) * time.Minute)
	left := deadline.Sub(now)
	if left <= 0 {
		return 0, true
	}
	return int(left / time.Second), false
}

// AttemptService handles the quiz attempt lifecycle: start, autosave,
// state recovery, submit, and essay grading.
type AttemptService struct {
	attemptRepo  *repository.AttemptRepository
	quizRepo     *repository.QuizRepository
	questionRepo *repository.QuestionRepository
	quizService  *QuizService
	enrollment   *EnrollmentService
	gradeService *GradeService
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(
	attemptRepo *repository.AttemptRepository,
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	quizService *QuizService,
	enrollment *EnrollmentService,
	gradeService *GradeService,
	rdb *redis.Client,
	log zerolog.Logger,
) *AttemptService {
	return &AttemptService{
		attemptRepo:  attemptRepo,
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		quizService:  quizService,
		enrollment:   enrollment,
		gradeService: gradeService,
		rdb:          rdb,
		log:          log.With().Str("component", "attempt_service").Logger(),
	}
}

// LobbyStatus is the concrete state of a quiz in the student lobby.
type LobbyStatus string

const (
	LobbyStatusUpcoming   LobbyStatus = "UPCOMING"
	LobbyStatusAvailable  LobbyStatus = "AVAILABLE"
	LobbyStatusInProgress LobbyStatus = "IN_PROGRESS"
	LobbyStatusCompleted  LobbyStatus = "COMPLETED"
)

// LobbyQuiz is a quiz as displayed in the student lobby, overlaid with
// the student's own attempt state.
type LobbyQuiz struct {
	model.Quiz
	LobbyStatus   LobbyStatus          `json:"lobby_status"`
	AttemptStatus *model.AttemptStatus `json:"attempt_status,omitempty"`
	Percentage    *float64             `json:"percentage,omitempty"`
	IsPassed      *bool                `json:"is_passed,omitempty"`
}

// GetLobby lists the published quizzes of the student's class with the
// student's attempt overlaid.
func (s *AttemptService) GetLobby(ctx context.Context, studentID, classID int) ([]LobbyQuiz, error) {
	if err := s.enrollment.RequireStudentInClass(ctx, studentID, classID); err != nil {
		return nil, err
	}

	quizzes, err := s.quizRepo.ListPublishedForClass(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("list published quizzes: %w", err)
	}

	lobby := []LobbyQuiz{}
	now := time.Now()
	for i := range quizzes {
		quiz := quizzes[i]
		entry := LobbyQuiz{Quiz: quiz}

		attempt, err := s.attemptRepo.GetByQuizAndStudent(ctx, quiz.ID, studentID)
		switch {
		case err == nil:
			entry.AttemptStatus = &attempt.Status
			entry.Percentage = attempt.Percentage
			entry.IsPassed = attempt.IsPassed
			if attempt.Status == model.AttemptStatusInProgress {
				entry.LobbyStatus = LobbyStatusInProgress
			} else {
				entry.LobbyStatus = LobbyStatusCompleted
			}
		case errors.Is(err, pgx.ErrNoRows):
			if quiz.ScheduledStart != nil && quiz.ScheduledStart.After(now) {
				entry.LobbyStatus = LobbyStatusUpcoming
			} else if quiz.ScheduledEnd != nil && quiz.ScheduledEnd.Before(now) {
				continue
			} else {
				entry.LobbyStatus = LobbyStatusAvailable
			}
		default:
			return nil, fmt.Errorf("get attempt: %w", err)
		}

		lobby = append(lobby, entry)
	}
	return lobby, nil
}

// Start opens an attempt for the student. Starting twice returns the
// existing attempt with its original server-anchored start time, so a
// reload never resets the clock.
func (s *AttemptService) Start(ctx context.Context, quizID uuid.UUID, studentID, classID int) (*model.Attempt, *model.QuizPayload, error) {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, nil, ErrQuizNotAvailable
	}
	if quiz.Status != model.QuizStatusPublished {
		return nil, nil, ErrQuizNotAvailable
	}

	now := time.Now()
	if quiz.ScheduledStart != nil && quiz.ScheduledStart.After(now) {
		return nil, nil, ErrQuizNotOpenYet
	}
	if quiz.ScheduledEnd != nil && quiz.ScheduledEnd.Before(now) {
		return nil, nil, ErrQuizWindowClosed
	}

	if quiz.ClassID != classID {
		return nil, nil, ErrNotEnrolled
	}
	if err := s.enrollment.RequireStudentInClass(ctx, studentID, classID); err != nil {
		return nil, nil, err
	}

	attempt := &model.Attempt{
		ID:        uuid.New(),
		QuizID:    quizID,
		StudentID: studentID,
		StartedAt: now,
	}
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		return nil, nil, fmt.Errorf("create attempt: %w", err)
	}

	// Anchor the start timestamp in Redis so state reads skip PostgreSQL.
	// The DB row stays the source of truth; GetState self-heals a miss.
	startKey := config.CacheKey.AttemptStartKey(quizID.String(), studentID)
	if err := s.rdb.Set(ctx, startKey, attempt.StartedAt.Unix(), 0).Err(); err != nil {
		s.log.Warn().Err(err).Str("quiz_id", quizID.String()).Int("student_id", studentID).
			Msg("Failed to cache attempt start time")
	}

	payload, err := s.quizService.GetQuizPayload(ctx, quizID)
	if err != nil {
		return nil, nil, fmt.Errorf("get quiz payload: %w", err)
	}
	return attempt, payload, nil
}

// GetState restores an attempt after a reload: draft answers plus the
// server-computed countdown.
func (s *AttemptService) GetState(ctx context.Context, quizID uuid.UUID, studentID int) (*model.AttemptState, error) {
	attempt, err := s.attemptRepo.GetByQuizAndStudent(ctx, quizID, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("get attempt: %w", err)
	}

	drafts, err := s.rdb.HGetAll(ctx, config.CacheKey.AttemptAnswersKey(quizID.String(), studentID)).Result()
	if err != nil {
		return nil, fmt.Errorf("get draft answers: %w", err)
	}
	if drafts == nil {
		drafts = map[string]string{}
	}

	timeLimit, err := s.getTimeLimit(ctx, quizID)
	if err != nil {
		return nil, err
	}

	startedAt, err := s.getStartTime(ctx, quizID, studentID, attempt)
	if err != nil {
		return nil, err
	}

	remaining, expired := RemainingSeconds(time.Now(), startedAt, timeLimit)
	if attempt.Status != model.AttemptStatusInProgress {
		remaining, expired = 0, false
	}

	return &model.AttemptState{
		QuizID:           quizID,
		AttemptID:        attempt.ID,
		StudentID:        studentID,
		Status:           attempt.Status,
		DraftAnswers:     drafts,
		RemainingSeconds: remaining,
		IsExpired:        expired,
	}, nil
}

// getTimeLimit reads the cached quiz time limit, falling back to the
// quiz row. Zero means untimed.
func (s *AttemptService) getTimeLimit(ctx context.Context, quizID uuid.UUID) (*int, error) {
	val, err := s.rdb.Get(ctx, config.CacheKey.QuizTimeLimitKey(quizID.String())).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("get time limit: %w", err)
		}
		quiz, dbErr := s.quizRepo.GetByID(ctx, quizID)
		if dbErr != nil {
			return nil, fmt.Errorf("quiz not found: %w", dbErr)
		}
		return quiz.TimeLimitMinutes, nil
	}

	minutes, err := strconv.Atoi(val)
	if err != nil {
		return nil, fmt.Errorf("invalid time limit in cache: %w", err)
	}
	if minutes == 0 {
		return nil, nil
	}
	return &minutes, nil
}

// getStartTime reads the cached start timestamp, falling back to the
// attempt row and self-healing the cache on a miss.
func (s *AttemptService) getStartTime(ctx context.Context, quizID uuid.UUID, studentID int, attempt *model.Attempt) (time.Time, error) {
	startKey := config.CacheKey.AttemptStartKey(quizID.String(), studentID)

	val, err := s.rdb.Get(ctx, startKey).Result()
	if errors.Is(err, redis.Nil) {
		_ = s.rdb.Set(ctx, startKey, attempt.StartedAt.Unix(), 0)
		return attempt.StartedAt, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get start time: %w", err)
	}

	unix, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time in cache: %w", err)
	}
	return time.Unix(unix, 0), nil
}

// SaveAnswer buffers one draft answer in Redis and queues it for the
// autosave worker. Rejected once the attempt is submitted or its
// deadline has passed.
func (s *AttemptService) SaveAnswer(ctx context.Context, quizID uuid.UUID, studentID int, questionID, answer string) error {
	attempt, err := s.attemptRepo.GetByQuizAndStudent(ctx, quizID, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAttemptNotFound
		}
		return fmt.Errorf("get attempt: %w", err)
	}
	if attempt.Status != model.AttemptStatusInProgress {
		return repository.ErrAttemptNotInProgress
	}

	timeLimit, err := s.getTimeLimit(ctx, quizID)
	if err != nil {
		return err
	}
	startedAt, err := s.getStartTime(ctx, quizID, studentID, attempt)
	if err != nil {
		return err
	}
	if _, expired := RemainingSeconds(time.Now(), startedAt, timeLimit); expired {
		return ErrAttemptExpired
	}

	answersKey := config.CacheKey.AttemptAnswersKey(quizID.String(), studentID)
	if err := s.rdb.HSet(ctx, answersKey, questionID, answer).Err(); err != nil {
		return fmt.Errorf("buffer answer: %w", err)
	}

	payload, _ := json.Marshal(model.AnswerPersistPayload{
		AttemptID:  attempt.ID.String(),
		QuestionID: questionID,
		Answer:     answer,
	})
	return s.rdb.RPush(ctx, config.WorkerKey.PersistAnswersQueue, payload).Err()
}

// gradeSubmission builds the answer snapshot for a submit: exactly one
// row per question, in question order. Unanswered questions get an empty
// answer. Objective questions are scored against the answer key, with
// unanswered ones counting as wrong; essay rows are left ungraded for the
// teacher and are tallied in essays.
func gradeSubmission(attemptID uuid.UUID, questions []model.Question, merged, answerKey map[string]string) (rows []model.AttemptAnswer, objectiveScore, totalPoints float64, essays int) {
	rows = make([]model.AttemptAnswer, 0, len(questions))
	for _, q := range questions {
		totalPoints += q.Points
		qid := q.ID.String()
		row := model.AttemptAnswer{
			AttemptID:  attemptID,
			QuestionID: q.ID,
			Answer:     merged[qid],
		}
		if q.QuestionType.IsObjective() {
			correct := merged[qid] != "" && merged[qid] == answerKey[qid]
			earned := 0.0
			if correct {
				earned = q.Points
			}
			row.IsCorrect = &correct
			row.EarnedPoints = &earned
			objectiveScore += earned
		} else {
			essays++
		}
		rows = append(rows, row)
	}
	return rows, objectiveScore, totalPoints, essays
}

// Submit finalizes an attempt: merges the final answers over the Redis
// drafts, grades the objective part in RAM, then persists the status
// transition and one answer row per question in a single transaction.
// The transaction's status guard guarantees that a manual submit racing
// the deadline sweep finalizes the attempt exactly once, and a failed
// submit leaves the attempt IN_PROGRESS with no answer rows written, so
// the student can retry.
func (s *AttemptService) Submit(ctx context.Context, quizID uuid.UUID, studentID int, finalAnswers map[string]string, autoSubmitted bool) (*model.Attempt, error) {
	attempt, err := s.attemptRepo.GetByQuizAndStudent(ctx, quizID, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	if attempt.Status != model.AttemptStatusInProgress {
		return nil, repository.ErrAttemptNotInProgress
	}

	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}

	// Clamp the submission to the deadline: a late manual submit and the
	// sweep both record the deadline, not the wall clock.
	now := time.Now()
	submittedAt := now
	if quiz.TimeLimitMinutes != nil {
		deadline := attempt.StartedAt.Add(time.Duration(*quiz.TimeLimitMinutes) * time.Minute)
		if now.After(deadline) {
			submittedAt = deadline
			autoSubmitted = true
		}
	}
	timeSpent := int(submittedAt.Sub(attempt.StartedAt) / time.Second)

	// Merge: explicit final answers win over autosaved drafts.
	answersKey := config.CacheKey.AttemptAnswersKey(quizID.String(), studentID)
	drafts, err := s.rdb.HGetAll(ctx, answersKey).Result()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to read draft answers, submitting explicit answers only")
		drafts = map[string]string{}
	}
	merged := make(map[string]string, len(drafts)+len(finalAnswers))
	for qid, ans := range drafts {
		merged[qid] = ans
	}
	for qid, ans := range finalAnswers {
		merged[qid] = ans
	}

	questions, err := s.questionRepo.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	answerKey, err := s.quizService.GetAnswerKey(ctx, quizID)
	if err != nil {
		s.log.Warn().Err(err).Msg("Answer key cache miss, grading from question rows")
		answerKey = map[string]string{}
		for _, q := range questions {
			if q.QuestionType.IsObjective() {
				answerKey[q.ID.String()] = q.CorrectOption
			}
		}
	}

	rows, objectiveScore, totalPoints, essays := gradeSubmission(attempt.ID, questions, merged, answerKey)

	// Status transition and answer snapshot commit together. If the
	// snapshot fails the guard rolls back and the attempt stays
	// IN_PROGRESS.
	if err := s.attemptRepo.Submit(ctx, attempt.ID, submittedAt, timeSpent, autoSubmitted, rows); err != nil {
		return nil, err
	}

	// No essays: the attempt is fully graded right now. Queue the score
	// write so the DB update and gradebook entry go through the worker's
	// batched path. The queue push happens only after the commit above,
	// so the worker never sees a score for an attempt that stayed
	// IN_PROGRESS.
	status := model.AttemptStatusSubmitted
	score := objectiveScore
	percentage := 0.0
	if totalPoints > 0 {
		percentage = score / totalPoints * 100
	}
	isPassed := percentage >= quiz.PassingScorePercent
	if essays == 0 {
		status = model.AttemptStatusGraded
	}

	scorePayload, _ := json.Marshal(model.ScorePersistPayload{
		AttemptID:  attempt.ID.String(),
		QuizID:     quizID.String(),
		StudentID:  studentID,
		ClassID:    quiz.ClassID,
		SubjectID:  quiz.SubjectID,
		AuthorID:   quiz.AuthorID,
		QuizTitle:  quiz.Title,
		Score:      score,
		Percentage: percentage,
		IsPassed:   isPassed,
		Status:     string(status),
	})
	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistScoresQueue, scorePayload).Err(); err != nil {
		// The attempt is already committed, so a queue outage must not
		// surface as a failed submit. Write the score synchronously
		// instead.
		s.log.Warn().Err(err).Msg("Score queue unavailable, writing score synchronously")
		if essays == 0 {
			if err := s.attemptRepo.SetFinalScore(ctx, attempt.ID, score, percentage, isPassed, status); err != nil {
				return nil, fmt.Errorf("set final score: %w", err)
			}
			err = s.gradeService.RecordFromSource(ctx, &model.Grade{
				StudentID:  studentID,
				ClassID:    quiz.ClassID,
				SubjectID:  quiz.SubjectID,
				Source:     model.GradeSourceQuiz,
				SourceID:   quiz.ID.String(),
				Label:      quiz.Title,
				Score:      percentage,
				RecordedBy: quiz.AuthorID,
			})
			if err != nil {
				return nil, fmt.Errorf("record grade: %w", err)
			}
		}
	}

	// Publish to the monitor channel so teacher dashboards update live.
	event, _ := json.Marshal(map[string]interface{}{
		"type":           "submitted",
		"student_id":     studentID,
		"auto_submitted": autoSubmitted,
	})
	s.rdb.Publish(ctx, config.CacheKey.QuizMonitorChannel(quizID.String()), event)

	attempt.Status = status
	attempt.SubmittedAt = &submittedAt
	attempt.TimeSpentSeconds = &timeSpent
	attempt.AutoSubmitted = autoSubmitted
	attempt.Score = &score
	attempt.Percentage = &percentage
	attempt.IsPassed = &isPassed
	if essays > 0 {
		// Final score waits for essay grading.
		attempt.Score = nil
		attempt.Percentage = nil
		attempt.IsPassed = nil
	}
	return attempt, nil
}

// SweepOverdue auto-submits every attempt whose deadline passed. Called
// periodically by the deadline worker. Racing manual submits are safe:
// the loser of the status transition is skipped.
func (s *AttemptService) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	overdue, err := s.attemptRepo.ListOverdue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list overdue attempts: %w", err)
	}

	swept := 0
	for _, attempt := range overdue {
		_, err := s.Submit(ctx, attempt.QuizID, attempt.StudentID, nil, true)
		if err != nil {
			if errors.Is(err, repository.ErrAttemptNotInProgress) {
				continue
			}
			s.log.Error().Err(err).
				Str("attempt_id", attempt.ID.String()).
				Msg("Failed to auto-submit overdue attempt")
			continue
		}
		swept++
	}
	return swept, nil
}

// Result returns the full result view of the student's own attempt.
// Hidden while the attempt is still in progress.
func (s *AttemptService) Result(ctx context.Context, quizID uuid.UUID, studentID int) (*model.AttemptResult, error) {
	attempt, err := s.attemptRepo.GetByQuizAndStudent(ctx, quizID, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	if attempt.Status == model.AttemptStatusInProgress {
		return nil, ErrAttemptNotSubmitted
	}

	questions, err := s.attemptRepo.ListAnswers(ctx, attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	if questions == nil {
		questions = []model.QuestionResult{}
	}

	return &model.AttemptResult{Attempt: *attempt, Questions: questions}, nil
}

// ListResults returns the teacher/admin view of a quiz's attempts.
func (s *AttemptService) ListResults(ctx context.Context, quizID uuid.UUID, page, perPage int) ([]model.AttemptOverview, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	overviews, total, err := s.attemptRepo.ListByQuiz(ctx, quizID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if overviews == nil {
		overviews = []model.AttemptOverview{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return overviews, pagination, nil
}

// GradeEssay records a teacher's score and optional feedback for one
// essay answer. When the last pending essay of the attempt is scored,
// the final score is computed and the attempt moves to GRADED.
func (s *AttemptService) GradeEssay(ctx context.Context, teacherID int, attemptID, questionID uuid.UUID, earnedPoints float64, feedback string) (*model.Attempt, error) {
	attempt, err := s.attemptRepo.GetByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	if attempt.Status == model.AttemptStatusInProgress {
		return nil, ErrAttemptNotSubmitted
	}

	quiz, err := s.quizRepo.GetByID(ctx, attempt.QuizID)
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	if quiz.AuthorID != teacherID {
		return nil, ErrNotQuizAuthor
	}

	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	if question.QuizID != attempt.QuizID {
		return nil, errors.New("question does not belong to this quiz")
	}
	if question.QuestionType != model.QuestionTypeEssay {
		return nil, ErrNotEssayQuestion
	}
	if earnedPoints > question.Points {
		return nil, ErrEssayPointsTooHigh
	}

	if err := s.attemptRepo.GradeEssayAnswer(ctx, attemptID, questionID, earnedPoints, feedback); err != nil {
		return nil, fmt.Errorf("grade answer: %w", err)
	}

	pending, err := s.attemptRepo.CountUngradedEssays(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("count pending essays: %w", err)
	}
	if pending > 0 {
		return s.attemptRepo.GetByID(ctx, attemptID)
	}

	// Last essay scored: finalize.
	score, err := s.attemptRepo.SumEarnedPoints(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("sum earned points: %w", err)
	}
	questions, err := s.questionRepo.ListByQuiz(ctx, attempt.QuizID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	totalPoints := 0.0
	for _, q := range questions {
		totalPoints += q.Points
	}
	percentage := 0.0
	if totalPoints > 0 {
		percentage = score / totalPoints * 100
	}
	isPassed := percentage >= quiz.PassingScorePercent

	if err := s.attemptRepo.SetFinalScore(ctx, attemptID, score, percentage, isPassed, model.AttemptStatusGraded); err != nil {
		return nil, fmt.Errorf("set final score: %w", err)
	}

	err = s.gradeService.RecordFromSource(ctx, &model.Grade{
		StudentID:  attempt.StudentID,
		ClassID:    quiz.ClassID,
		SubjectID:  quiz.SubjectID,
		Source:     model.GradeSourceQuiz,
		SourceID:   quiz.ID.String(),
		Label:      quiz.Title,
		Score:      percentage,
		RecordedBy: quiz.AuthorID,
	})
	if err != nil {
		return nil, fmt.Errorf("record grade: %w", err)
	}

	return s.attemptRepo.GetByID(ctx, attemptID)
}
