package events

import (
	"strconv"
	"time"
)

type SessionStarted struct {
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId"`
	Analyzer  string    `json:"analyzer"`
	Timestamp time.Time `json:"timestamp"`
}

type SessionFinished struct {
	SessionID string        `json:"sessionId"`
	UserID    string        `json:"userId"`
	Status    string        `json:"status"`
	Reps      int           `json:"reps"`
	XP        int           `json:"xp"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
}

type LevelUp struct {
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId"`
	FromLevel int       `json:"fromLevel"`
	ToLevel   int       `json:"toLevel"`
	TotalXP   int       `json:"totalXp"`
	Timestamp time.Time `json:"timestamp"`
}

// Event (DB level type) is an entry in the workout log:
//   - session started (analyzer used)
//   - session finished (status, reps, xp, duration)
//   - level up (from/to level)
type Event struct {
	ID        int               `json:"id"`
	Type      EventType         `json:"type"`
	UserID    string            `json:"userId"`
	Timestamp time.Time         `json:"timestamp"`
	Data      map[string]string `json:"data"`
}

// WithID returns a copy of the event carrying the given id.
func (e Event) WithID(id int) *Event {
	e.ID = id
	return &e
}

func NewSessionStartedEvent(ss SessionStarted) Event {
	return Event{
		Type:      EventTypeSessionStarted,
		UserID:    ss.UserID,
		Timestamp: ss.Timestamp,
		Data: map[string]string{
			"session":  ss.SessionID,
			"analyzer": ss.Analyzer,
		},
	}
}

func NewSessionFinishedEvent(sf SessionFinished) Event {
	return Event{
		Type:      EventTypeSessionFinished,
		UserID:    sf.UserID,
		Timestamp: sf.Timestamp,
		Data: map[string]string{
			"session":     sf.SessionID,
			"status":      sf.Status,
			"reps":        strconv.Itoa(sf.Reps),
			"xp":          strconv.Itoa(sf.XP),
			"duration_ms": strconv.FormatInt(sf.Duration.Milliseconds(), 10),
		},
	}
}

func NewLevelUpEvent(lu LevelUp) Event {
	return Event{
		Type:      EventTypeLevelUp,
		UserID:    lu.UserID,
		Timestamp: lu.Timestamp,
		Data: map[string]string{
			"session":  lu.SessionID,
			"from":     strconv.Itoa(lu.FromLevel),
			"to":       strconv.Itoa(lu.ToLevel),
			"total_xp": strconv.Itoa(lu.TotalXP),
		},
	}
}

// EventType can be one of:
//   - session_started
//   - session_finished
//   - level_up
type EventType string

const (
	EventTypeSessionStarted  EventType = "session_started"
	EventTypeSessionFinished EventType = "session_finished"
	EventTypeLevelUp         EventType = "level_up"
)

func (et EventType) String() string {
	return string(et)
}

func (et EventType) IsValid() bool {
	switch et {
	case EventTypeSessionStarted,
		EventTypeSessionFinished,
		EventTypeLevelUp:
		return true
	default:
		return false
	}
}
