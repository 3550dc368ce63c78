package workout

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/2beens/gymxp/internal/gamification"
	"github.com/2beens/gymxp/internal/repcount"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionFinished = errors.New("session already finished")
	ErrSessionNotLocal = errors.New("session is live on another instance")
	ErrFramesEmpty     = errors.New("no frames in batch")
	ErrTooManyFrames   = errors.New("too many frames in batch")
	ErrInvalidFrame    = errors.New("invalid frame")
)

type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
	StatusExpired  Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

type Session struct {
	ID            uuid.UUID   `json:"id"`
	UserID        string      `json:"userId"`
	Analyzer      string      `json:"analyzer"`
	Status        Status      `json:"status"`
	StartedAt     time.Time   `json:"startedAt"`
	FinishedAt    *time.Time  `json:"finishedAt,omitempty"`
	LastFrameAt   *time.Time  `json:"lastFrameAt,omitempty"`
	LastSeenAt    *time.Time  `json:"lastSeenAt,omitempty"`
	Reps          int         `json:"reps"`
	Frames        int         `json:"frames"`
	StaleFrames   int         `json:"staleFrames"`
	RepTimestamps []time.Time `json:"repTimestamps"`
}

// LastActivity is the server time of the latest frame batch, or the session
// start when none arrived yet. LastFrameAt is the client clock and only
// orders frames.
func (s Session) LastActivity() time.Time {
	if s.LastSeenAt != nil {
		return *s.LastSeenAt
	}
	return s.StartedAt
}

func (s Session) clone() Session {
	c := s
	c.RepTimestamps = append([]time.Time(nil), s.RepTimestamps...)
	if s.FinishedAt != nil {
		t := *s.FinishedAt
		c.FinishedAt = &t
	}
	if s.LastFrameAt != nil {
		t := *s.LastFrameAt
		c.LastFrameAt = &t
	}
	if s.LastSeenAt != nil {
		t := *s.LastSeenAt
		c.LastSeenAt = &t
	}
	return c
}

// Summary is a session together with its statistics. Persisted once the
// session ends.
type Summary struct {
	Session
	XP                  int     `json:"xp"`
	DurationMs          int64   `json:"durationMs"`
	MeanRepIntervalMs   float64 `json:"meanRepIntervalMs"`
	StdDevRepIntervalMs float64 `json:"stdDevRepIntervalMs"`
	CadencePerMin       float64 `json:"cadencePerMin"`

	// Award is set only on the response of the call that ended the session.
	Award *gamification.Award `json:"award,omitempty"`
}

func (s Summary) Duration() time.Duration {
	return time.Duration(s.DurationMs) * time.Millisecond
}

// Summarize computes session statistics up to end. Cadence is derived from
// the mean interval between consecutive reps, so it needs at least two reps.
func Summarize(session Session, end time.Time) Summary {
	summary := Summary{
		Session: session,
	}

	if d := end.Sub(session.StartedAt); d > 0 {
		summary.DurationMs = d.Milliseconds()
	}

	intervals := RepIntervalsMs(session.RepTimestamps)
	switch len(intervals) {
	case 0:
	case 1:
		summary.MeanRepIntervalMs = intervals[0]
	default:
		summary.MeanRepIntervalMs, summary.StdDevRepIntervalMs = stat.MeanStdDev(intervals, nil)
	}

	if summary.MeanRepIntervalMs > 0 {
		summary.CadencePerMin = float64(time.Minute/time.Millisecond) / summary.MeanRepIntervalMs
	}

	return summary
}

func RepIntervalsMs(repTimestamps []time.Time) []float64 {
	if len(repTimestamps) < 2 {
		return nil
	}
	intervals := make([]float64, 0, len(repTimestamps)-1)
	for i := 1; i < len(repTimestamps); i++ {
		d := repTimestamps[i].Sub(repTimestamps[i-1])
		intervals = append(intervals, float64(d)/float64(time.Millisecond))
	}
	return intervals
}

type RepEvent struct {
	Rep       int       `json:"rep"`
	Timestamp time.Time `json:"timestamp"`
}

// FramesResult reports the outcome of one pushed batch.
type FramesResult struct {
	SessionID uuid.UUID          `json:"sessionId"`
	Accepted  int                `json:"accepted"`
	Stale     int                `json:"stale"`
	NewReps   []RepEvent         `json:"newReps"`
	Reps      int                `json:"reps"`
	Phase     repcount.Phase     `json:"phase"`
	Tracked   bool               `json:"tracked"`
	Angles    map[string]float64 `json:"angles,omitempty"`
}
