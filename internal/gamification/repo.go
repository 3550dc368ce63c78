package gamification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

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

func (r *Repo) Add(ctx context.Context, profile Profile) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gamification.profile.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", profile.UserID))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO profile
				(user_id, display_name, total_xp, level, total_reps, sessions, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		profile.UserID, profile.DisplayName, profile.TotalXP, profile.Level,
		profile.TotalReps, profile.Sessions, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrProfileExists
		}
		return nil, err
	}

	return &profile, nil
}

func (r *Repo) Get(ctx context.Context, userID string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gamification.profile.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	p := &Profile{}
	err = r.db.QueryRow(
		ctx,
		`SELECT user_id, display_name, total_xp, level, total_reps, sessions, created_at, updated_at
			FROM profile
			WHERE user_id = $1;`,
		userID,
	).Scan(&p.UserID, &p.DisplayName, &p.TotalXP, &p.Level, &p.TotalReps, &p.Sessions, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return p, nil
}

// AddProgress credits xp and reps to the profile and stores the new level,
// all in one transaction. Returns the profile as it was before the update
// and after it.
func (r *Repo) AddProgress(
	ctx context.Context,
	userID string,
	xp, reps int,
	levelFor func(totalXP int) int,
	now time.Time,
) (before, after *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gamification.profile.addprogress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Int("xp", xp),
		attribute.Int("reps", reps),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	before = &Profile{}
	err = tx.QueryRow(
		ctx,
		`SELECT user_id, display_name, total_xp, level, total_reps, sessions, created_at, updated_at
			FROM profile
			WHERE user_id = $1
			FOR UPDATE;`,
		userID,
	).Scan(&before.UserID, &before.DisplayName, &before.TotalXP, &before.Level,
		&before.TotalReps, &before.Sessions, &before.CreatedAt, &before.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrProfileNotFound
		}
		return nil, nil, err
	}

	updated := *before
	updated.TotalXP += xp
	updated.TotalReps += reps
	updated.Sessions++
	updated.Level = levelFor(updated.TotalXP)
	updated.UpdatedAt = now

	_, err = tx.Exec(
		ctx,
		`UPDATE profile
			SET total_xp = $1, level = $2, total_reps = $3, sessions = $4, updated_at = $5
			WHERE user_id = $6;`,
		updated.TotalXP, updated.Level, updated.TotalReps, updated.Sessions, updated.UpdatedAt, userID,
	)
	if err != nil {
		return nil, nil, err
	}

	return before, &updated, nil
}

func (r *Repo) Delete(ctx context.Context, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gamification.profile.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	tag, err := r.db.Exec(ctx, `DELETE FROM profile WHERE user_id = $1;`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}
