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

// AutosaveWorker trails the Redis draft hashes, flushing queued answer
// saves into attempt_answers. Redis stays the fast read path during an
// attempt; this keeps the database copy close behind so a Redis loss
// costs at most a few seconds of typing.
type AutosaveWorker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

func NewAutosaveWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *AutosaveWorker {
	return &AutosaveWorker{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "autosave_worker").Logger(),
	}
}

// Start blocks on the queue until ctx is cancelled, then drains whatever
// is left before returning. Run it in a goroutine.
func (w *AutosaveWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")
	for ctx.Err() == nil {
		w.consumeOne(ctx)
	}
	w.log.Info().Msg("Worker stopping...")
	w.drain(context.Background())
	w.log.Info().Msg("Worker stopped")
}

func (w *AutosaveWorker) consumeOne(ctx context.Context) {
	item, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.PersistAnswersQueue).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}
	if len(item) < 2 {
		return
	}
	raw := item[1]

	var payload model.AnswerPersistPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error")
		return
	}

	if err := w.upsertDraft(ctx, &payload); err != nil {
		w.log.Error().Err(err).
			Str("attempt_id", payload.AttemptID).
			Str("question_id", payload.QuestionID).
			Msg("Persist error, retrying in 5s")
		w.rdb.RPush(ctx, config.WorkerKey.PersistAnswersQueue, raw)
		time.Sleep(5 * time.Second)
	}
}

func (w *AutosaveWorker) upsertDraft(ctx context.Context, p *model.AnswerPersistPayload) error {
	attemptID, err := uuid.Parse(p.AttemptID)
	if err != nil {
		return err
	}
	questionID, err := uuid.Parse(p.QuestionID)
	if err != nil {
		return err
	}

	// Answers freeze the moment the attempt leaves IN_PROGRESS: a
	// straggling draft flushed after submit must not touch the submitted
	// snapshot, whether graded already or still waiting on an essay
	// score. Both the insert and the conflict update carry the status
	// guard.
	_, err = w.pool.Exec(ctx,
		`INSERT INTO attempt_answers (attempt_id, question_id, answer)
		 SELECT $1, $2, $3
		 WHERE EXISTS (
		   SELECT 1 FROM attempts WHERE id = $1 AND status = $4
		 )
		 ON CONFLICT (attempt_id, question_id) DO UPDATE
		 SET answer = EXCLUDED.answer
		 WHERE EXISTS (
		   SELECT 1 FROM attempts
		   WHERE id = attempt_answers.attempt_id AND status = $4
		 )`,
		attemptID, questionID, p.Answer, model.AttemptStatusInProgress,
	)
	return err
}

func (w *AutosaveWorker) drain(ctx context.Context) {
	flushed := 0
	for {
		raw, err := w.rdb.LPop(ctx, config.WorkerKey.PersistAnswersQueue).Result()
		if err != nil {
			break
		}

		var payload model.AnswerPersistPayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			w.log.Error().Err(err).Msg("Drain unmarshal error")
			continue
		}
		if err := w.upsertDraft(ctx, &payload); err != nil {
			w.log.Error().Err(err).Msg("Drain persist error")
			w.rdb.RPush(ctx, config.WorkerKey.PersistAnswersQueue, raw)
			break
		}
		flushed++
	}

	if flushed > 0 {
		w.log.Info().Int("count", flushed).Msg("Drained remaining items")
	}
}
