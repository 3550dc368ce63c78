package workout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymxp/internal/events"
	"github.com/2beens/gymxp/internal/gamification"
	"github.com/2beens/gymxp/internal/pose"
	"github.com/2beens/gymxp/internal/repcount"
	"github.com/2beens/gymxp/internal/telemetry/metrics"
	"github.com/2beens/gymxp/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=manager_mocks_test.go -package=workout_test

type profileService interface {
	Get(ctx context.Context, userID string) (*gamification.Profile, error)
	Award(ctx context.Context, userID string, reps int) (*gamification.Award, error)
}

type eventsService interface {
	AddSessionStarted(ctx context.Context, ss events.SessionStarted) (int, error)
	AddSessionFinished(ctx context.Context, sf events.SessionFinished) (int, error)
	AddLevelUp(ctx context.Context, lu events.LevelUp) (int, error)
}

type sessionRepo interface {
	Save(ctx context.Context, summary Summary) error
	Get(ctx context.Context, id uuid.UUID) (*Summary, error)
	ListByUser(ctx context.Context, userID string, page, size int) ([]*Summary, int, error)
}

type snapshotStore interface {
	Save(ctx context.Context, session Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// liveSession owns the analyzer of one running session.
// mu guards session, analyzer and closed.
type liveSession struct {
	mu       sync.Mutex
	session  Session
	analyzer repcount.Analyzer
	closed   bool
}

type Manager struct {
	mu   sync.RWMutex
	live map[uuid.UUID]*liveSession

	profiles  profileService
	events    eventsService
	repo      sessionRepo
	snapshots snapshotStore

	counterConfig     repcount.Config
	idleTimeout       time.Duration
	maxFramesPerBatch int

	metricsManager *metrics.Manager
	now            func() time.Time
}

type NewManagerParams struct {
	Profiles          profileService
	Events            eventsService
	Repo              sessionRepo
	Snapshots         snapshotStore
	CounterConfig     repcount.Config
	IdleTimeout       time.Duration
	MaxFramesPerBatch int
	MetricsManager    *metrics.Manager
	// Now is used for tests, defaults to time.Now.
	Now func() time.Time
}

func NewManager(params NewManagerParams) (*Manager, error) {
	if params.Profiles == nil || params.Events == nil || params.Repo == nil || params.Snapshots == nil {
		return nil, errors.New("workout manager: missing dependency")
	}
	if err := params.CounterConfig.Validate(); err != nil {
		return nil, fmt.Errorf("workout manager: %w", err)
	}
	if params.IdleTimeout <= 0 {
		return nil, errors.New("workout manager: idle timeout must be positive")
	}
	if params.MaxFramesPerBatch <= 0 {
		return nil, errors.New("workout manager: max frames per batch must be positive")
	}

	now := params.Now
	if now == nil {
		now = time.Now
	}

	return &Manager{
		live:              make(map[uuid.UUID]*liveSession),
		profiles:          params.Profiles,
		events:            params.Events,
		repo:              params.Repo,
		snapshots:         params.Snapshots,
		counterConfig:     params.CounterConfig,
		idleTimeout:       params.IdleTimeout,
		maxFramesPerBatch: params.MaxFramesPerBatch,
		metricsManager:    params.MetricsManager,
		now:               now,
	}, nil
}

func (m *Manager) Start(ctx context.Context, userID, analyzerName string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.session.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if analyzerName == "" {
		analyzerName = repcount.DefaultAnalyzer
	}
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("analyzer", analyzerName),
	)

	analyzer, err := repcount.NewAnalyzer(analyzerName, m.counterConfig)
	if err != nil {
		return nil, err
	}

	if _, err := m.profiles.Get(ctx, userID); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	ls := &liveSession{
		session: Session{
			ID:            uuid.New(),
			UserID:        userID,
			Analyzer:      analyzerName,
			Status:        StatusActive,
			StartedAt:     m.now().UTC(),
			RepTimestamps: []time.Time{},
		},
		analyzer: analyzer,
	}
	session := ls.session.clone()

	m.mu.Lock()
	m.live[session.ID] = ls
	m.mu.Unlock()

	if m.metricsManager != nil {
		m.metricsManager.CounterSessionsStarted.WithLabelValues(analyzerName).Inc()
		m.metricsManager.GaugeLiveSessions.Inc()
	}

	if _, err := m.events.AddSessionStarted(ctx, events.SessionStarted{
		SessionID: session.ID.String(),
		UserID:    userID,
		Analyzer:  analyzerName,
		Timestamp: session.StartedAt,
	}); err != nil {
		log.Errorf("session [%s] started event: %s", session.ID, err)
	}
	if err := m.snapshots.Save(ctx, session); err != nil {
		log.Warnf("session [%s] snapshot: %s", session.ID, err)
	}

	log.Debugf("session [%s] started for [%s] with %s", session.ID, userID, analyzerName)
	return &session, nil
}

// PushFrames feeds a batch of frames to the session analyzer. The batch is
// rejected as a whole if any frame is invalid. Frames older than the last
// accepted one are skipped and counted as stale.
func (m *Manager) PushFrames(ctx context.Context, id uuid.UUID, frames []pose.Frame) (_ *FramesResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.session.frames")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("session.id", id.String()),
		attribute.Int("frames", len(frames)),
	)

	if len(frames) == 0 {
		return nil, ErrFramesEmpty
	}
	if len(frames) > m.maxFramesPerBatch {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyFrames, len(frames), m.maxFramesPerBatch)
	}
	for i, frame := range frames {
		if err := frame.Validate(); err != nil {
			if m.metricsManager != nil {
				m.metricsManager.CounterFramesRejected.WithLabelValues("invalid").Add(float64(len(frames)))
			}
			return nil, fmt.Errorf("%w: frame %d: %w", ErrInvalidFrame, i, err)
		}
	}

	ls, err := m.liveSession(ctx, id)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	ls.mu.Lock()
	if ls.closed {
		ls.mu.Unlock()
		return nil, ErrSessionFinished
	}

	result := &FramesResult{
		SessionID: id,
		NewReps:   []RepEvent{},
	}
	for _, frame := range frames {
		if last := ls.session.LastFrameAt; last != nil && frame.Timestamp.Before(*last) {
			result.Stale++
			continue
		}

		res := ls.analyzer.Process(frame)
		result.Accepted++
		result.Tracked = res.Tracked
		result.Angles = res.Angles

		ts := frame.Timestamp.UTC()
		ls.session.LastFrameAt = &ts
		if res.NewRep {
			ls.session.RepTimestamps = append(ls.session.RepTimestamps, ts)
			result.NewReps = append(result.NewReps, RepEvent{
				Rep:       res.Reps,
				Timestamp: ts,
			})
		}
	}
	seenAt := m.now().UTC()
	ls.session.LastSeenAt = &seenAt
	ls.session.Frames += result.Accepted
	ls.session.StaleFrames += result.Stale
	ls.session.Reps = ls.analyzer.Reps()
	result.Reps = ls.session.Reps
	result.Phase = ls.analyzer.Phase()
	snapshot := ls.session.clone()
	ls.mu.Unlock()

	if m.metricsManager != nil {
		m.metricsManager.CounterFramesProcessed.WithLabelValues(snapshot.Analyzer).Add(float64(result.Accepted))
		if result.Stale > 0 {
			m.metricsManager.CounterFramesRejected.WithLabelValues("stale").Add(float64(result.Stale))
		}
		if len(result.NewReps) > 0 {
			m.metricsManager.CounterRepsCounted.WithLabelValues(snapshot.Analyzer).Add(float64(len(result.NewReps)))
		}
		m.metricsManager.HistogramFrameBatchDuration.Observe(time.Since(start).Seconds())
	}

	if err := m.snapshots.Save(ctx, snapshot); err != nil {
		log.Warnf("session [%s] snapshot: %s", id, err)
	}

	span.SetAttributes(
		attribute.Int("frames.accepted", result.Accepted),
		attribute.Int("frames.stale", result.Stale),
		attribute.Int("reps", result.Reps),
	)
	return result, nil
}

// Get returns a live session with its statistics so far, or the persisted
// summary of an ended one. Sessions live on another instance are reported
// from their redis snapshot.
func (m *Manager) Get(ctx context.Context, id uuid.UUID) (_ *Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.session.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", id.String()))

	m.mu.RLock()
	ls, ok := m.live[id]
	m.mu.RUnlock()
	if ok {
		ls.mu.Lock()
		session := ls.session.clone()
		ls.mu.Unlock()
		summary := Summarize(session, m.now().UTC())
		return &summary, nil
	}

	summary, err := m.repo.Get(ctx, id)
	if err == nil {
		return summary, nil
	}
	if !errors.Is(err, ErrSessionNotFound) {
		return nil, err
	}

	remote, err := m.snapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	remoteSummary := Summarize(*remote, m.now().UTC())
	return &remoteSummary, nil
}

// snapshot looks up a session another instance keeps live. Snapshot store
// failures are logged and reported as not found.
func (m *Manager) snapshot(ctx context.Context, id uuid.UUID) (*Session, error) {
	session, err := m.snapshots.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			log.Warnf("session [%s] snapshot lookup: %s", id, err)
		}
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (m *Manager) ListByUser(ctx context.Context, userID string, page, size int) (_ []*Summary, _ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.session.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Int("page", page),
		attribute.Int("size", size),
	)

	summaries, total, err := m.repo.ListByUser(ctx, userID, page, size)
	if err != nil {
		return nil, 0, fmt.Errorf("list sessions: %w", err)
	}
	return summaries, total, nil
}

func (m *Manager) Finish(ctx context.Context, id uuid.UUID) (_ *Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.session.finish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", id.String()))

	ls, err := m.liveSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.end(ctx, ls, StatusFinished, func(Session) time.Time {
		return m.now().UTC()
	})
}

// ExpireIdle ends every live session with no frames for longer than the idle
// timeout. Expired sessions are still credited with their reps.
func (m *Manager) ExpireIdle(ctx context.Context, now time.Time) int {
	m.mu.RLock()
	candidates := make([]*liveSession, 0)
	for _, ls := range m.live {
		candidates = append(candidates, ls)
	}
	m.mu.RUnlock()

	expired := 0
	for _, ls := range candidates {
		ls.mu.Lock()
		idle := now.Sub(ls.session.LastActivity())
		id := ls.session.ID
		ls.mu.Unlock()
		if idle <= m.idleTimeout {
			continue
		}

		// the session ends at its last activity, idle time is not workout time
		if _, err := m.end(ctx, ls, StatusExpired, Session.LastActivity); err != nil {
			if !errors.Is(err, ErrSessionFinished) {
				log.Errorf("expire session [%s]: %s", id, err)
			}
			continue
		}
		expired++
		log.Debugf("session [%s] expired after %s idle", id, idle)
	}

	return expired
}

// RunJanitor expires idle sessions every interval until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	log.Debugf("session janitor started, interval %s", every)
	for {
		select {
		case <-ctx.Done():
			log.Debugln("session janitor stopped")
			return
		case <-ticker.C:
			if n := m.ExpireIdle(ctx, m.now()); n > 0 {
				log.Infof("session janitor: expired %d session(s)", n)
			}
		}
	}
}

func (m *Manager) LiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.live)
}

func (m *Manager) liveSession(ctx context.Context, id uuid.UUID) (*liveSession, error) {
	m.mu.RLock()
	ls, ok := m.live[id]
	m.mu.RUnlock()
	if ok {
		return ls, nil
	}

	if _, err := m.repo.Get(ctx, id); err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			return nil, fmt.Errorf("get session: %w", err)
		}
		if _, err := m.snapshot(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrSessionNotLocal
	}
	return nil, ErrSessionFinished
}

// end awards XP, persists the summary and drops the live session. The
// session stays live when the award fails, so the client can retry, unless
// the profile is gone: then it ends without XP.
func (m *Manager) end(ctx context.Context, ls *liveSession, status Status, endAt func(Session) time.Time) (*Summary, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.closed {
		return nil, ErrSessionFinished
	}

	session := ls.session.clone()
	end := endAt(session)
	session.Status = status
	session.FinishedAt = &end

	award, err := m.profiles.Award(ctx, session.UserID, session.Reps)
	if err != nil {
		if !errors.Is(err, gamification.ErrProfileNotFound) {
			return nil, fmt.Errorf("award session [%s]: %w", session.ID, err)
		}
		log.Warnf("session [%s] ends without xp, profile [%s] deleted", session.ID, session.UserID)
		award = nil
	}
	ls.closed = true

	summary := Summarize(session, end)
	if award != nil {
		summary.XP = award.XP
	}

	m.mu.Lock()
	delete(m.live, session.ID)
	m.mu.Unlock()

	if m.metricsManager != nil {
		m.metricsManager.GaugeLiveSessions.Dec()
		m.metricsManager.CounterSessionsFinished.WithLabelValues(status.String()).Inc()
		m.metricsManager.HistogramSessionReps.Observe(float64(session.Reps))
	}

	// sessions of a deleted profile are not kept
	if award != nil {
		if err := m.repo.Save(ctx, summary); err != nil {
			log.Errorf("save session [%s]: %s", session.ID, err)
		}
	}
	if err := m.snapshots.Delete(ctx, session.ID); err != nil {
		log.Warnf("delete session [%s] snapshot: %s", session.ID, err)
	}

	if _, err := m.events.AddSessionFinished(ctx, events.SessionFinished{
		SessionID: session.ID.String(),
		UserID:    session.UserID,
		Status:    status.String(),
		Reps:      session.Reps,
		XP:        summary.XP,
		Duration:  summary.Duration(),
		Timestamp: end,
	}); err != nil {
		log.Errorf("session [%s] finished event: %s", session.ID, err)
	}

	if award != nil && award.LevelUp && award.Profile != nil {
		if _, err := m.events.AddLevelUp(ctx, events.LevelUp{
			SessionID: session.ID.String(),
			UserID:    session.UserID,
			FromLevel: award.PreviousLevel,
			ToLevel:   award.Profile.Level,
			TotalXP:   award.Profile.TotalXP,
			Timestamp: end,
		}); err != nil {
			log.Errorf("session [%s] level up event: %s", session.ID, err)
		}
	}

	summary.Award = award
	log.Debugf("session [%s] %s: %d reps, %d xp", session.ID, status, session.Reps, summary.XP)
	return &summary, nil
}
