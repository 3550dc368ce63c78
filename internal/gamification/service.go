package gamification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymxp/internal/telemetry/metrics"
	"github.com/2beens/gymxp/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=gamification_test

const (
	maxUserIDLength      = 64
	maxDisplayNameLength = 64
)

type profileRepo interface {
	Add(ctx context.Context, profile Profile) (*Profile, error)
	Get(ctx context.Context, userID string) (*Profile, error)
	AddProgress(ctx context.Context, userID string, xp, reps int, levelFor func(totalXP int) int, now time.Time) (before, after *Profile, err error)
	Delete(ctx context.Context, userID string) error
}

type leaderboard interface {
	Add(ctx context.Context, userID string, totalXP int) error
	Top(ctx context.Context, n int) ([]LeaderboardEntry, error)
	Rank(ctx context.Context, userID string) (int, error)
	Remove(ctx context.Context, userID string) error
}

type Service struct {
	repo           profileRepo
	leaderboard    leaderboard
	cache          *freecache.Cache
	cacheTTL       time.Duration
	rules          Rules
	metricsManager *metrics.Manager
	now            func() time.Time
}

type NewServiceParams struct {
	Repo           profileRepo
	Leaderboard    leaderboard
	Rules          Rules
	CacheSizeMB    int
	CacheTTL       time.Duration
	MetricsManager *metrics.Manager
}

func NewService(params NewServiceParams) (*Service, error) {
	if err := params.Rules.Validate(); err != nil {
		return nil, err
	}
	if params.CacheSizeMB <= 0 {
		params.CacheSizeMB = 1
	}
	return &Service{
		repo:           params.Repo,
		leaderboard:    params.Leaderboard,
		cache:          freecache.NewCache(params.CacheSizeMB * 1024 * 1024),
		cacheTTL:       params.CacheTTL,
		rules:          params.Rules,
		metricsManager: params.MetricsManager,
		now:            time.Now,
	}, nil
}

func (s *Service) Rules() Rules {
	return s.rules
}

func (s *Service) Create(ctx context.Context, userID, displayName string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gamification.profile.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	userID = strings.TrimSpace(userID)
	displayName = strings.TrimSpace(displayName)
	if userID == "" || utf8.RuneCountInString(userID) > maxUserIDLength {
		return nil, fmt.Errorf("%w: user id must have 1-%d characters", ErrInvalidProfile, maxUserIDLength)
	}
	if displayName == "" {
		displayName = userID
	}
	if utf8.RuneCountInString(displayName) > maxDisplayNameLength {
		return nil, fmt.Errorf("%w: display name too long", ErrInvalidProfile)
	}
	span.SetAttributes(attribute.String("user.id", userID))

	now := s.now().UTC()
	profile, err := s.repo.Add(ctx, Profile{
		UserID:      userID,
		DisplayName: displayName,
		Level:       1,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("add profile: %w", err)
	}

	if err := s.leaderboard.Add(ctx, userID, 0); err != nil {
		log.Errorf("new profile [%s]: %s", userID, err)
	}

	return profile, nil
}

// Get reads through the profile cache.
func (s *Service) Get(ctx context.Context, userID string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gamification.profile.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	if cached, err := s.cache.Get([]byte(userID)); err == nil {
		var p Profile
		if err := json.Unmarshal(cached, &p); err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return &p, nil
		}
		log.Warnf("profile cache [%s]: corrupt entry, dropping", userID)
		s.cache.Del([]byte(userID))
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	s.cacheProfile(p)
	return p, nil
}

func (s *Service) cacheProfile(p *Profile) {
	pJson, err := json.Marshal(p)
	if err != nil {
		log.Errorf("marshal profile [%s] for cache: %s", p.UserID, err)
		return
	}
	if err := s.cache.Set([]byte(p.UserID), pJson, int(s.cacheTTL.Seconds())); err != nil {
		log.Warnf("cache profile [%s]: %s", p.UserID, err)
	}
}

// Award credits a finished workout of reps repetitions to the user.
func (s *Service) Award(ctx context.Context, userID string, reps int) (_ *Award, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gamification.award")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	capped := s.rules.CappedReps(reps)
	xp := s.rules.AwardFor(reps)
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Int("reps", capped),
		attribute.Int("xp", xp),
	)

	before, after, err := s.repo.AddProgress(ctx, userID, xp, capped, s.rules.LevelFor, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("add progress: %w", err)
	}
	s.cache.Del([]byte(userID))

	if err := s.leaderboard.Add(ctx, userID, after.TotalXP); err != nil {
		log.Errorf("award [%s]: %s", userID, err)
	}

	award := &Award{
		XP:            xp,
		Reps:          capped,
		Profile:       after,
		LevelUp:       after.Level > before.Level,
		PreviousLevel: before.Level,
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterXPAwarded.Add(float64(xp))
		if award.LevelUp {
			s.metricsManager.CounterLevelUps.Inc()
		}
	}

	log.Debugf("awarded %d xp to [%s] for %d reps, level %d -> %d", xp, userID, capped, before.Level, after.Level)
	return award, nil
}

func (s *Service) Delete(ctx context.Context, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gamification.profile.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	s.cache.Del([]byte(userID))

	if err := s.leaderboard.Remove(ctx, userID); err != nil {
		log.Errorf("delete profile [%s]: %s", userID, err)
	}
	return nil
}

func (s *Service) Leaderboard(ctx context.Context, limit int) (_ []LeaderboardEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gamification.leaderboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", limit))

	entries, err := s.leaderboard.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard top: %w", err)
	}
	return entries, nil
}

// Rank returns 0 when the user is not ranked yet.
func (s *Service) Rank(ctx context.Context, userID string) (int, error) {
	rank, err := s.leaderboard.Rank(ctx, userID)
	if errors.Is(err, ErrNotRanked) {
		return 0, nil
	}
	return rank, err
}

func (s *Service) Progress(totalXP int) LevelProgress {
	return s.rules.Progress(totalXP)
}
