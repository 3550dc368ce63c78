package events

import (
	"context"
	"fmt"

	"github.com/2beens/gymxp/internal/telemetry/tracing"
)

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) AddSessionStarted(ctx context.Context, ss SessionStarted) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.add.sessionstarted")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	event, err := s.repo.Add(ctx, NewSessionStartedEvent(ss))
	if err != nil {
		return 0, fmt.Errorf("add session started event: %w", err)
	}
	return event.ID, nil
}

func (s *Service) AddSessionFinished(ctx context.Context, sf SessionFinished) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.add.sessionfinished")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	event, err := s.repo.Add(ctx, NewSessionFinishedEvent(sf))
	if err != nil {
		return 0, fmt.Errorf("add session finished event: %w", err)
	}
	return event.ID, nil
}

func (s *Service) AddLevelUp(ctx context.Context, lu LevelUp) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.add.levelup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	event, err := s.repo.Add(ctx, NewLevelUpEvent(lu))
	if err != nil {
		return 0, fmt.Errorf("add level up event: %w", err)
	}
	return event.ID, nil
}

func (s *Service) Get(ctx context.Context, id int) (_ *Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	event, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event [%d]: %w", id, err)
	}
	return event, nil
}

func (s *Service) List(ctx context.Context, params ListParams) (_ []*Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	events, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *Service) Count(ctx context.Context, params EventParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	count, err := s.repo.Count(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}
