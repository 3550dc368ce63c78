package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymxp/internal/telemetry/tracing"
)

var ErrEventNotFound = errors.New("event not found")

type EventParams struct {
	Type   *EventType
	UserID string
	From   *time.Time
	To     *time.Time
}

type ListParams struct {
	EventParams
	Page int
	Size int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, event Event) (_ *Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.events.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("type", event.Type.String()))

	if event.Data == nil {
		event.Data = map[string]string{}
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO workout_event (type, user_id, data, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		event.Type,
		event.UserID,
		event.Data,
		event.Timestamp,
	).Scan(&event.ID)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.events.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	event := &Event{}
	err = r.db.
		QueryRow(ctx, `
			SELECT id, type, user_id, data, timestamp
			FROM workout_event
			WHERE id = $1
		`, id).
		Scan(&event.ID, &event.Type, &event.UserID, &event.Data, &event.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []*Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.events.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	setParamsAttributes(span, params.EventParams)

	var eventType *string
	if params.Type != nil {
		t := params.Type.String()
		eventType = &t
	}

	events := make([]*Event, 0)
	rows, err := r.db.Query(ctx, `
		SELECT id, type, user_id, data, timestamp
		FROM workout_event
		WHERE ($1::text IS NULL OR type = $1)
		  AND ($2::text = '' OR user_id = $2)
		  AND ($3::timestamptz IS NULL OR timestamp >= $3)
		  AND ($4::timestamptz IS NULL OR timestamp <= $4)
		ORDER BY timestamp DESC, id DESC
		LIMIT $5 OFFSET $6;
	`,
		eventType,
		params.UserID,
		params.From, params.To,
		params.Size, params.Size*params.Page,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		event := &Event{}
		if err := rows.Scan(&event.ID, &event.Type, &event.UserID, &event.Data, &event.Timestamp); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *Repo) Count(ctx context.Context, params EventParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.events.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	setParamsAttributes(span, params)

	var eventType *string
	if params.Type != nil {
		t := params.Type.String()
		eventType = &t
	}

	var count int
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM workout_event
		WHERE ($1::text IS NULL OR type = $1)
		  AND ($2::text = '' OR user_id = $2)
		  AND ($3::timestamptz IS NULL OR timestamp >= $3)
		  AND ($4::timestamptz IS NULL OR timestamp <= $4);
	`,
		eventType,
		params.UserID,
		params.From, params.To,
	).Scan(&count)
	if err != nil {
		return -1, fmt.Errorf("count events: %w", err)
	}

	return count, nil
}

type attributeSetter interface {
	SetAttributes(kv ...attribute.KeyValue)
}

func setParamsAttributes(span attributeSetter, params EventParams) {
	if params.Type != nil {
		span.SetAttributes(attribute.String("type", params.Type.String()))
	}
	if params.UserID != "" {
		span.SetAttributes(attribute.String("user.id", params.UserID))
	}
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}
}
