package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/smklab/lms-backend/internal/config"
	"github.com/smklab/lms-backend/internal/middleware"
	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/response"
	"github.com/smklab/lms-backend/internal/service"
)

const (
	refreshInterval   = 15 * time.Second
	keepAliveInterval = 30 * time.Second
	refreshTimeout    = 5 * time.Second // prevent slow queries from blocking the SSE loop
)

// MonitorHandler streams live quiz progress to the quiz author over SSE.
type MonitorHandler struct {
	rdb            *redis.Client
	quizService    *service.QuizService
	attemptService *service.AttemptService
	monitorService *service.MonitorService
	log            zerolog.Logger
}

// NewMonitorHandler creates a new MonitorHandler.
func NewMonitorHandler(
	rdb *redis.Client,
	quizService *service.QuizService,
	attemptService *service.AttemptService,
	monitorService *service.MonitorService,
	log zerolog.Logger,
) *MonitorHandler {
	return &MonitorHandler{
		rdb:            rdb,
		quizService:    quizService,
		attemptService: attemptService,
		monitorService: monitorService,
		log:            log.With().Str("component", "monitor_handler").Logger(),
	}
}

// MonitorQuizSSE godoc
// GET /api/v1/staff/quizzes/:id/monitor
// Pushes an initial snapshot, then forwards submit events from Redis
// Pub/Sub and periodic progress refreshes until the client disconnects.
func (h *MonitorHandler) MonitorQuizSSE(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	quiz, err := h.quizService.GetByID(c.Request.Context(), quizID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	if quiz.AuthorID != claims.UserID {
		response.Fail(c, http.StatusForbidden, response.ErrNotQuizAuthor)
		return
	}

	reqCtx := c.Request.Context()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")

	h.sendInitialSnapshot(c, reqCtx, quiz)

	channelName := config.CacheKey.QuizMonitorChannel(quizID.String())
	pubsub := h.rdb.Subscribe(reqCtx, channelName)
	defer pubsub.Close()

	ch := pubsub.Channel()

	keepAliveTicker := time.NewTicker(keepAliveInterval)
	defer keepAliveTicker.Stop()

	refreshTicker := time.NewTicker(refreshInterval)
	defer refreshTicker.Stop()

	h.log.Info().Str("quiz_id", quizID.String()).Msg("Teacher attached to live monitor SSE")

	pingPayload, _ := json.Marshal(map[string]string{"type": "ping"})

	for {
		select {
		case <-reqCtx.Done():
			h.log.Info().Str("quiz_id", quizID.String()).Msg("Teacher disconnected from live monitor SSE")
			return

		case msg := <-ch:
			// Forward raw JSON directly, no deserialization needed.
			c.Writer.Write([]byte("data: "))
			c.Writer.Write([]byte(msg.Payload))
			c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()

		case <-refreshTicker.C:
			h.sendRefresh(c, reqCtx, quiz)

		case <-keepAliveTicker.C:
			c.Writer.Write([]byte("data: "))
			c.Writer.Write(pingPayload)
			c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()
		}
	}
}

// sendInitialSnapshot gathers attempt rows and writes the first SSE event.
func (h *MonitorHandler) sendInitialSnapshot(c *gin.Context, ctx context.Context, quiz *model.Quiz) {
	attempts, _, err := h.attemptService.ListResults(ctx, quiz.ID, 1, 1000)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to build initial monitor snapshot")
		attempts = nil
	}

	totalStarted := len(attempts)
	totalInProgress := 0
	totalSubmitted := 0
	for _, a := range attempts {
		switch a.Status {
		case model.AttemptStatusInProgress:
			totalInProgress++
		default:
			totalSubmitted++
		}
	}

	students := make([]map[string]interface{}, 0, len(attempts))
	for _, a := range attempts {
		students = append(students, map[string]interface{}{
			"student_id":      a.StudentID,
			"nisn":            a.StudentNISN,
			"name":            a.StudentName,
			"status":          a.Status,
			"started_at":      a.StartedAt,
			"submitted_at":    a.SubmittedAt,
			"auto_submitted":  a.AutoSubmitted,
			"percentage":      a.Percentage,
			"answered_count":  int64(0),
			"total_questions": quiz.QuestionCount,
		})
	}

	fetchCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	if progress, err := h.monitorService.GetProgress(fetchCtx, quiz.ID); err == nil {
		for i, s := range students {
			sid, ok := s["student_id"].(int)
			if !ok {
				continue
			}
			if count, found := progress.AnsweredCounts[sid]; found {
				students[i]["answered_count"] = count
			}
		}
	}

	c.SSEvent("message", map[string]interface{}{
		"type": "snapshot",
		"data": map[string]interface{}{
			"quiz": map[string]interface{}{
				"id":                 quiz.ID.String(),
				"title":              quiz.Title,
				"time_limit_minutes": quiz.TimeLimitMinutes,
				"total_questions":    quiz.QuestionCount,
			},
			"stats": map[string]interface{}{
				"total_started":     totalStarted,
				"total_in_progress": totalInProgress,
				"total_submitted":   totalSubmitted,
			},
			"students": students,
		},
	})
	c.Writer.Flush()
}

// sendRefresh polls current progress and sends a compact refresh event.
func (h *MonitorHandler) sendRefresh(c *gin.Context, parentCtx context.Context, quiz *model.Quiz) {
	ctx, cancel := context.WithTimeout(parentCtx, refreshTimeout)
	defer cancel()

	progress, err := h.monitorService.GetProgress(ctx, quiz.ID)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to fetch attempt progress for refresh")
		return
	}

	progressData := make([]map[string]interface{}, 0, len(progress.AnsweredCounts))
	for sid, answered := range progress.AnsweredCounts {
		progressData = append(progressData, map[string]interface{}{
			"student_id":     sid,
			"answered_count": answered,
		})
	}

	c.SSEvent("message", map[string]interface{}{
		"type":            "refresh",
		"total_questions": quiz.QuestionCount,
		"status_counts":   progress.StatusCounts,
		"students":        progressData,
	})
	c.Writer.Flush()
}
