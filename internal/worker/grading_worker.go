package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/smklab/lms-backend/internal/config"
	"github.com/smklab/lms-backend/internal/model"
)

const (
	scoreBatchSize    = 50
	scoreBatchTimeout = 2 * time.Second
	scorePollTimeout  = 1 * time.Second
)

// GradingWorker consumes the score queue and writes attempt results in
// batches: the attempt row, and a gradebook entry once an attempt is
// fully graded.
type GradingWorker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewGradingWorker creates a new GradingWorker.
func NewGradingWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *GradingWorker {
	return &GradingWorker{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "grading_worker").Logger(),
	}
}

// Start runs the worker loop with batching. Call in a goroutine.
func (w *GradingWorker) Start(ctx context.Context) {
	w.log.Info().Msg("GradingWorker started")

	batch := make([]*model.ScorePersistPayload, 0, scoreBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= scoreBatchSize || time.Since(lastFlush) >= scoreBatchTimeout) {
			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, scorePollTimeout, config.WorkerKey.PersistScoresQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p model.ScorePersistPayload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &p)
		}
	}
}

func (w *GradingWorker) flushSafe(ctx context.Context, batch []*model.ScorePersistPayload) {
	if len(batch) == 0 {
		return
	}

	if err := w.bulkUpdateScores(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("bulk score update failed, using fallback")

		for _, p := range batch {
			if err := w.persistSingle(ctx, p); err != nil {
				w.log.Error().Err(err).Msg("persistSingle failed — requeueing")
				raw, _ := json.Marshal(p)
				w.rdb.RPush(ctx, config.WorkerKey.PersistScoresQueue, raw)
			}
		}
		return
	}

	w.recordGrades(ctx, batch)
	w.bulkClearBuffers(ctx, batch)
}

// bulkUpdateScores writes the attempt rows of the batch's fully graded
// payloads in one UNNEST statement. SUBMITTED payloads carry an
// objective-only partial score that must not land in the row: those
// attempts keep score, percentage and is_passed NULL until the last
// essay is graded, which also protects a final score a fast-grading
// teacher may have written in the meantime.
func (w *GradingWorker) bulkUpdateScores(ctx context.Context, batch []*model.ScorePersistPayload) error {
	n := len(batch)

	attemptIDs := make([]uuid.UUID, 0, n)
	scores := make([]float64, 0, n)
	percentages := make([]float64, 0, n)
	passed := make([]bool, 0, n)
	statuses := make([]string, 0, n)

	for _, p := range batch {
		if p.Status != string(model.AttemptStatusGraded) {
			continue
		}
		id, err := uuid.Parse(p.AttemptID)
		if err != nil {
			return err
		}
		attemptIDs = append(attemptIDs, id)
		scores = append(scores, p.Score)
		percentages = append(percentages, p.Percentage)
		passed = append(passed, p.IsPassed)
		statuses = append(statuses, p.Status)
	}
	if len(attemptIDs) == 0 {
		return nil
	}

	query := `
		UPDATE attempts AS a
		SET score = t.score,
		    percentage = t.percentage,
		    is_passed = t.is_passed,
		    status = t.status
		FROM (
			SELECT
				u.attempt_id,
				u.score,
				u.percentage,
				u.is_passed,
				u.status
			FROM UNNEST(
				$1::uuid[],
				$2::float8[],
				$3::float8[],
				$4::bool[],
				$5::text[]
			) AS u (attempt_id, score, percentage, is_passed, status)
		) AS t
		WHERE a.id = t.attempt_id
	`

	_, err := w.pool.Exec(ctx, query, attemptIDs, scores, percentages, passed, statuses)
	return err
}

// recordGrades upserts gradebook entries for the attempts that came out
// fully graded. Attempts waiting on essay grading get their entry later,
// when the teacher scores the last essay.
func (w *GradingWorker) recordGrades(ctx context.Context, batch []*model.ScorePersistPayload) {
	for _, p := range batch {
		if p.Status != string(model.AttemptStatusGraded) {
			continue
		}
		_, err := w.pool.Exec(ctx,
			`INSERT INTO grades (student_id, class_id, subject_id, source, source_id, label, score, recorded_by)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (student_id, source, source_id)
			 DO UPDATE SET score = EXCLUDED.score, label = EXCLUDED.label,
			               updated_at = CURRENT_TIMESTAMP`,
			p.StudentID, p.ClassID, p.SubjectID, model.GradeSourceQuiz,
			p.QuizID, p.QuizTitle, p.Percentage, p.AuthorID,
		)
		if err != nil {
			w.log.Error().Err(err).
				Str("attempt_id", p.AttemptID).
				Msg("Failed to record gradebook entry")
		}
	}
}

// bulkClearBuffers deletes the per-student Redis buffers of finalized
// attempts.
func (w *GradingWorker) bulkClearBuffers(ctx context.Context, batch []*model.ScorePersistPayload) {
	pipe := w.rdb.Pipeline()
	for _, p := range batch {
		pipe.Del(ctx, config.CacheKey.AttemptAnswersKey(p.QuizID, p.StudentID))
		pipe.Del(ctx, config.CacheKey.AttemptStartKey(p.QuizID, p.StudentID))
	}
	_, _ = pipe.Exec(ctx)
}

// persistSingle is the row-by-row fallback when the bulk path fails.
// SUBMITTED payloads skip the attempt update for the same reason the
// bulk path does.
func (w *GradingWorker) persistSingle(ctx context.Context, p *model.ScorePersistPayload) error {
	if p.Status == string(model.AttemptStatusGraded) {
		id, err := uuid.Parse(p.AttemptID)
		if err != nil {
			return err
		}

		_, err = w.pool.Exec(ctx,
			`UPDATE attempts
			 SET score = $1, percentage = $2, is_passed = $3, status = $4
			 WHERE id = $5`,
			p.Score, p.Percentage, p.IsPassed, p.Status, id,
		)
		if err != nil {
			return err
		}
	}

	w.recordGrades(ctx, []*model.ScorePersistPayload{p})
	w.bulkClearBuffers(ctx, []*model.ScorePersistPayload{p})
	return nil
}
