package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/smklab/lms-backend/internal/config"
	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/repository"
	"github.com/smklab/lms-backend/internal/response"
)

// Quiz domain errors.
var (
	ErrNotQuizAuthor    = errors.New("not the author of this quiz")
	ErrNoQuestions      = errors.New("quiz has no questions, cannot publish")
	ErrQuizNotDraft     = errors.New("quiz status is not DRAFT")
	ErrQuizNotPublished = errors.New("quiz status is not PUBLISHED")
)

// QuizService handles quiz business logic and Redis caching. Publishing
// a quiz pushes its payload, answer key, points table, and time limit
// into Redis so attempts never touch PostgreSQL on the hot path.
type QuizService struct {
	quizRepo     *repository.QuizRepository
	questionRepo *repository.QuestionRepository
	enrollment   *EnrollmentService
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	enrollment *EnrollmentService,
	rdb *redis.Client,
	log zerolog.Logger,
) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		enrollment:   enrollment,
		rdb:          rdb,
		log:          log.With().Str("component", "quiz_service").Logger(),
	}
}

// GetByID retrieves a quiz by its UUID.
func (s *QuizService) GetByID(ctx context.Context, id uuid.UUID) (*model.Quiz, error) {
	return s.quizRepo.GetByID(ctx, id)
}

// List retrieves quizzes with pagination, optionally filtered by author
// and class.
func (s *QuizService) List(ctx context.Context, authorID, classID *int, page, perPage int) ([]model.Quiz, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	quizzes, total, err := s.quizRepo.ListPaginated(ctx, authorID, classID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if quizzes == nil {
		quizzes = []model.Quiz{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return quizzes, pagination, nil
}

// Create inserts a new quiz as DRAFT after verifying the teacher is
// assigned to the class+subject.
func (s *QuizService) Create(ctx context.Context, authorID int, req *model.CreateQuizRequest) (*model.Quiz, error) {
	if err := s.enrollment.RequireTeacherForClass(ctx, authorID, req.ClassID, req.SubjectID); err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		ID:                  uuid.New(),
		Title:               req.Title,
		Description:         req.Description,
		AuthorID:            authorID,
		ClassID:             req.ClassID,
		SubjectID:           req.SubjectID,
		TimeLimitMinutes:    req.TimeLimitMinutes,
		PassingScorePercent: req.PassingScorePercent,
		ShowAnswers:         req.ShowAnswers,
		ScheduledStart:      req.ScheduledStart,
		ScheduledEnd:        req.ScheduledEnd,
		Status:              model.QuizStatusDraft,
	}
	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// Update modifies a draft quiz. Only the author may edit it.
func (s *QuizService) Update(ctx context.Context, authorID int, id uuid.UUID, req *model.UpdateQuizRequest) (*model.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quiz.AuthorID != authorID {
		return nil, ErrNotQuizAuthor
	}
	if quiz.Status != model.QuizStatusDraft {
		return nil, ErrQuizNotDraft
	}

	if req.Title != "" {
		quiz.Title = req.Title
	}
	if req.Description != "" {
		quiz.Description = req.Description
	}
	if req.TimeLimitMinutes != nil {
		quiz.TimeLimitMinutes = req.TimeLimitMinutes
	}
	if req.PassingScorePercent != nil {
		quiz.PassingScorePercent = *req.PassingScorePercent
	}
	if req.ShowAnswers != nil {
		quiz.ShowAnswers = *req.ShowAnswers
	}
	if req.ScheduledStart != nil {
		quiz.ScheduledStart = req.ScheduledStart
	}
	if req.ScheduledEnd != nil {
		quiz.ScheduledEnd = req.ScheduledEnd
	}

	if err := s.quizRepo.Update(ctx, quiz); err != nil {
		return nil, err
	}
	return s.quizRepo.GetByID(ctx, id)
}

// Delete removes a draft quiz. Only the author may delete it.
func (s *QuizService) Delete(ctx context.Context, authorID int, id uuid.UUID) error {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if quiz.AuthorID != authorID {
		return ErrNotQuizAuthor
	}
	if quiz.Status != model.QuizStatusDraft {
		return ErrQuizNotDraft
	}
	return s.quizRepo.Delete(ctx, id)
}

// Publish moves a quiz to PUBLISHED and fills the Redis fast lane.
func (s *QuizService) Publish(ctx context.Context, authorID int, id uuid.UUID) error {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get quiz: %w", err)
	}
	if quiz.AuthorID != authorID {
		return ErrNotQuizAuthor
	}
	if quiz.Status != model.QuizStatusDraft {
		return ErrQuizNotDraft
	}

	if err := s.WarmQuizCache(ctx, quiz); err != nil {
		return err
	}
	if err := s.quizRepo.UpdateStatus(ctx, id, model.QuizStatusPublished); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	s.log.Info().Str("quiz_id", id.String()).Msg("Quiz published")
	return nil
}

// Close moves a published quiz to CLOSED and evicts its cache so no new
// attempts can start. Running attempts finish through the deadline sweep.
func (s *QuizService) Close(ctx context.Context, authorID int, id uuid.UUID) error {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get quiz: %w", err)
	}
	if quiz.AuthorID != authorID {
		return ErrNotQuizAuthor
	}
	if quiz.Status != model.QuizStatusPublished {
		return ErrQuizNotPublished
	}

	if err := s.quizRepo.UpdateStatus(ctx, id, model.QuizStatusClosed); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	quizID := id.String()
	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, config.CacheKey.QuizPayloadKey(quizID))
	pipe.Del(ctx, config.CacheKey.QuizTimeLimitKey(quizID))
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warn().Err(err).Str("quiz_id", quizID).Msg("Failed to evict quiz cache")
	}

	s.log.Info().Str("quiz_id", quizID).Msg("Quiz closed")
	return nil
}

// Archive moves a closed quiz to ARCHIVED.
func (s *QuizService) Archive(ctx context.Context, authorID int, id uuid.UUID) error {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get quiz: %w", err)
	}
	if quiz.AuthorID != authorID {
		return ErrNotQuizAuthor
	}
	if quiz.Status != model.QuizStatusClosed {
		return errors.New("quiz status is not CLOSED")
	}
	return s.quizRepo.UpdateStatus(ctx, id, model.QuizStatusArchived)
}

// RefreshCache re-warms a published quiz after its questions changed.
func (s *QuizService) RefreshCache(ctx context.Context, authorID int, id uuid.UUID) error {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get quiz: %w", err)
	}
	if authorID != 0 && quiz.AuthorID != authorID {
		return ErrNotQuizAuthor
	}
	if quiz.Status != model.QuizStatusPublished {
		return ErrQuizNotPublished
	}
	if err := s.WarmQuizCache(ctx, quiz); err != nil {
		return err
	}
	s.log.Info().Str("quiz_id", id.String()).Msg("Cache refreshed")
	return nil
}

// WarmQuizCache loads a quiz's payload, answer key, points table, and
// time limit from PostgreSQL into Redis. Correct-answer flags are
// stripped from the student payload unless the quiz reveals answers
// during the attempt.
func (s *QuizService) WarmQuizCache(ctx context.Context, quiz *model.Quiz) error {
	questions, err := s.questionRepo.ListByQuiz(ctx, quiz.ID)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	studentQuestions := make([]model.QuestionForStudent, len(questions))
	totalPoints := 0.0
	for i, q := range questions {
		options := q.Options
		if !quiz.ShowAnswers && len(options) > 0 {
			options, err = stripCorrectFlags(options)
			if err != nil {
				return fmt.Errorf("strip options of question %s: %w", q.ID, err)
			}
		}
		studentQuestions[i] = model.QuestionForStudent{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Points:       q.Points,
			Options:      options,
			MaxWords:     q.MaxWords,
			OrderNum:     q.OrderNum,
		}
		totalPoints += q.Points
	}

	payload := model.QuizPayload{
		QuizID:              quiz.ID,
		Title:               quiz.Title,
		TimeLimitMinutes:    quiz.TimeLimitMinutes,
		PassingScorePercent: quiz.PassingScorePercent,
		TotalPoints:         totalPoints,
		Questions:           studentQuestions,
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	// Answer key and points hashes for RAM grading on submit.
	answerKey := make(map[string]interface{}, len(questions))
	points := make(map[string]interface{}, len(questions))
	for _, q := range questions {
		if q.QuestionType.IsObjective() {
			answerKey[q.ID.String()] = q.CorrectOption
		}
		points[q.ID.String()] = strconv.FormatFloat(q.Points, 'f', -1, 64)
	}

	quizID := quiz.ID.String()
	timeLimit := 0
	if quiz.TimeLimitMinutes != nil {
		timeLimit = *quiz.TimeLimitMinutes
	}

	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, config.CacheKey.QuizPayloadKey(quizID), payloadJSON, 0)
	pipe.Set(ctx, config.CacheKey.QuizTimeLimitKey(quizID), timeLimit, 0)
	pipe.Del(ctx, config.CacheKey.QuizAnswerKey(quizID))
	if len(answerKey) > 0 {
		pipe.HSet(ctx, config.CacheKey.QuizAnswerKey(quizID), answerKey)
	}
	pipe.Del(ctx, config.CacheKey.QuizPointsKey(quizID))
	pipe.HSet(ctx, config.CacheKey.QuizPointsKey(quizID), points)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache to redis: %w", err)
	}

	s.log.Debug().
		Str("quiz_id", quizID).
		Int("questions", len(questions)).
		Msg("Cache warmed")
	return nil
}

// PrewarmAllCaches loads all published quizzes into Redis on startup so
// the first student in never lazy-loads under thundering herd traffic.
func (s *QuizService) PrewarmAllCaches(ctx context.Context) error {
	quizzes, err := s.quizRepo.ListPublished(ctx)
	if err != nil {
		return fmt.Errorf("list published quizzes: %w", err)
	}
	if len(quizzes) == 0 {
		s.log.Info().Msg("No published quizzes to prewarm")
		return nil
	}

	warmed := 0
	for i := range quizzes {
		if err := s.WarmQuizCache(ctx, &quizzes[i]); err != nil {
			s.log.Warn().
				Err(err).
				Str("quiz_id", quizzes[i].ID.String()).
				Msg("Failed to warm quiz, skipping")
			continue
		}
		warmed++
	}

	s.log.Info().
		Int("warmed", warmed).
		Int("total", len(quizzes)).
		Msg("Prewarming complete")
	return nil
}

// GetQuizPayload retrieves the cached student payload from Redis.
func (s *QuizService) GetQuizPayload(ctx context.Context, quizID uuid.UUID) (*model.QuizPayload, error) {
	data, err := s.rdb.Get(ctx, config.CacheKey.QuizPayloadKey(quizID.String())).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.New("quiz not published or payload not cached")
		}
		return nil, fmt.Errorf("get payload: %w", err)
	}

	var payload model.QuizPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return &payload, nil
}

// GetAnswerKey retrieves the objective answer key from Redis.
func (s *QuizService) GetAnswerKey(ctx context.Context, quizID uuid.UUID) (map[string]string, error) {
	result, err := s.rdb.HGetAll(ctx, config.CacheKey.QuizAnswerKey(quizID.String())).Result()
	if err != nil {
		return nil, fmt.Errorf("get answer key: %w", err)
	}
	return result, nil
}

// GetPointsTable retrieves the per-question points from Redis.
func (s *QuizService) GetPointsTable(ctx context.Context, quizID uuid.UUID) (map[string]float64, error) {
	raw, err := s.rdb.HGetAll(ctx, config.CacheKey.QuizPointsKey(quizID.String())).Result()
	if err != nil {
		return nil, fmt.Errorf("get points table: %w", err)
	}
	points := make(map[string]float64, len(raw))
	for qid, v := range raw {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid points for question %s: %w", qid, err)
		}
		points[qid] = p
	}
	return points, nil
}

// ListQuestions retrieves a quiz's questions for its author, with
// correct answers included.
func (s *QuizService) ListQuestions(ctx context.Context, authorID int, quizID uuid.UUID) ([]model.Question, error) {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.AuthorID != authorID {
		return nil, ErrNotQuizAuthor
	}
	questions, err := s.questionRepo.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}

// AddQuestion appends one question to a draft quiz.
func (s *QuizService) AddQuestion(ctx context.Context, authorID int, quizID uuid.UUID, req *model.AddQuestionRequest) (*model.Question, error) {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.AuthorID != authorID {
		return nil, ErrNotQuizAuthor
	}
	if quiz.Status != model.QuizStatusDraft {
		return nil, ErrQuizNotDraft
	}

	question := &model.Question{
		ID:            uuid.New(),
		QuizID:        quizID,
		QuestionText:  req.QuestionText,
		QuestionType:  model.QuestionType(req.QuestionType),
		Points:        req.Points,
		Options:       req.Options,
		CorrectOption: req.CorrectOption,
		MaxWords:      req.MaxWords,
		OrderNum:      req.OrderNum,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// ReplaceQuestions swaps a draft quiz's whole question set.
func (s *QuizService) ReplaceQuestions(ctx context.Context, authorID int, quizID uuid.UUID, req *model.ReplaceQuestionsRequest) error {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return err
	}
	if quiz.AuthorID != authorID {
		return ErrNotQuizAuthor
	}
	if quiz.Status != model.QuizStatusDraft {
		return ErrQuizNotDraft
	}

	questions := make([]model.Question, len(req.Questions))
	for i, q := range req.Questions {
		questions[i] = model.Question{
			ID:            uuid.New(),
			QuizID:        quizID,
			QuestionText:  q.QuestionText,
			QuestionType:  model.QuestionType(q.QuestionType),
			Points:        q.Points,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
			MaxWords:      q.MaxWords,
			OrderNum:      q.OrderNum,
		}
	}
	return s.questionRepo.ReplaceAll(ctx, quizID, questions)
}

// DeleteQuestion removes one question from a draft quiz.
func (s *QuizService) DeleteQuestion(ctx context.Context, authorID int, quizID, questionID uuid.UUID) error {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return err
	}
	if quiz.AuthorID != authorID {
		return ErrNotQuizAuthor
	}
	if quiz.Status != model.QuizStatusDraft {
		return ErrQuizNotDraft
	}
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return err
	}
	if question.QuizID != quizID {
		return errors.New("question does not belong to this quiz")
	}
	return s.questionRepo.Delete(ctx, questionID)
}

// stripCorrectFlags removes is_correct from an options JSON array.
func stripCorrectFlags(raw json.RawMessage) (json.RawMessage, error) {
	var options []model.QuestionOption
	if err := json.Unmarshal(raw, &options); err != nil {
		return nil, err
	}
	for i := range options {
		options[i].IsCorrect = false
	}
	return json.Marshal(options)
}
