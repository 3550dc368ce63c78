package workout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymxp/internal/gamification"
	"github.com/2beens/gymxp/internal/telemetry/tracing"
	"github.com/2beens/gymxp/pkg"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Save(ctx context.Context, s Summary) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.session.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", s.ID.String()))

	if s.FinishedAt == nil {
		return fmt.Errorf("session [%s] not finished", s.ID)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO workout_session (
			id, user_id, analyzer, status, started_at, finished_at, last_frame_at,
			reps, frames, stale_frames, xp, duration_ms,
			mean_rep_interval_ms, stddev_rep_interval_ms, cadence_per_min, rep_timestamps
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO NOTHING;
	`,
		s.ID, s.UserID, s.Analyzer, s.Status, s.StartedAt, *s.FinishedAt, s.LastFrameAt,
		s.Reps, s.Frames, s.StaleFrames, s.XP, s.DurationMs,
		s.MeanRepIntervalMs, s.StdDevRepIntervalMs, s.CadencePerMin, s.RepTimestamps,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return fmt.Errorf("insert session [%s]: %w", s.ID, gamification.ErrProfileNotFound)
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

const selectSessionColumns = `
	id, user_id, analyzer, status, started_at, finished_at, last_frame_at,
	reps, frames, stale_frames, xp, duration_ms,
	mean_rep_interval_ms, stddev_rep_interval_ms, cadence_per_min, rep_timestamps
`

func scanSummary(row pgx.Row) (*Summary, error) {
	s := &Summary{}
	if err := row.Scan(
		&s.ID, &s.UserID, &s.Analyzer, &s.Status, &s.StartedAt, &s.FinishedAt, &s.LastFrameAt,
		&s.Reps, &s.Frames, &s.StaleFrames, &s.XP, &s.DurationMs,
		&s.MeanRepIntervalMs, &s.StdDevRepIntervalMs, &s.CadencePerMin, &s.RepTimestamps,
	); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (_ *Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.session.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", id.String()))

	summary, err := scanSummary(r.db.QueryRow(ctx, `
		SELECT `+selectSessionColumns+`
		FROM workout_session
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return summary, nil
}

// ListByUser returns a page of the user's sessions (newest first) and the
// total number of sessions the user has.
func (r *Repo) ListByUser(ctx context.Context, userID string, page, size int) (_ []*Summary, _ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.session.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	var total int
	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM workout_session WHERE user_id = $1
	`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sessions: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+selectSessionColumns+`
		FROM workout_session
		WHERE user_id = $1
		ORDER BY started_at DESC
		LIMIT $2 OFFSET $3;
	`, userID, size, page*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	summaries := make([]*Summary, 0)
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return summaries, total, nil
}
