package repcount

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidThresholds = errors.New("invalid thresholds")

// Phase is the stable state of the tracked movement.
type Phase string

const (
	PhaseUnknown Phase = "unknown"
	// PhaseUp is the extended position (standing).
	PhaseUp Phase = "up"
	// PhaseDown is the flexed position (bottom of the squat).
	PhaseDown Phase = "down"
)

func (p Phase) String() string {
	return string(p)
}

// Thresholds form a hysteresis band: values at or below DownBelow are
// flexed, at or above UpAbove extended, anything in between keeps the
// current phase.
type Thresholds struct {
	DownBelow float64 `toml:"down_below" json:"downBelow"`
	UpAbove   float64 `toml:"up_above" json:"upAbove"`
}

func (t Thresholds) Validate() error {
	if t.DownBelow <= 0 || t.UpAbove > 180 || t.DownBelow >= t.UpAbove {
		return fmt.Errorf("%w: down below %.1f, up above %.1f", ErrInvalidThresholds, t.DownBelow, t.UpAbove)
	}
	return nil
}

// Zone classifies an angle against the band. PhaseUnknown means the value is
// inside the band.
func (t Thresholds) Zone(angle float64) Phase {
	switch {
	case angle <= t.DownBelow:
		return PhaseDown
	case angle >= t.UpAbove:
		return PhaseUp
	default:
		return PhaseUnknown
	}
}

type Transition struct {
	From Phase
	To   Phase
	Rep  bool
}

func (t Transition) Changed() bool {
	return t.From != t.To
}

// Machine counts repetitions: every down -> up transition is one rep.
type Machine struct {
	thresholds     Thresholds
	minRepInterval time.Duration
	maxLostFrames  int

	phase     Phase
	reps      int
	lost      int
	lastRepAt time.Time
}

func NewMachine(thresholds Thresholds, minRepInterval time.Duration, maxLostFrames int) (*Machine, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	return &Machine{
		thresholds:     thresholds,
		minRepInterval: minRepInterval,
		maxLostFrames:  maxLostFrames,
		phase:          PhaseUnknown,
	}, nil
}

// Observe feeds one smoothed angle. ok=false marks a frame without a usable
// measurement.
func (m *Machine) Observe(ts time.Time, angle float64, ok bool) Transition {
	if !ok {
		return m.miss()
	}
	return m.ObserveZone(ts, m.thresholds.Zone(angle))
}

// ObserveZone feeds an already classified observation. PhaseUnknown is an
// in-band observation and keeps the current phase.
func (m *Machine) ObserveZone(ts time.Time, zone Phase) Transition {
	m.lost = 0
	tr := Transition{From: m.phase, To: m.phase}
	if zone == PhaseUnknown || zone == m.phase {
		return tr
	}

	if m.phase == PhaseDown && zone == PhaseUp {
		if m.lastRepAt.IsZero() || ts.Sub(m.lastRepAt) >= m.minRepInterval {
			m.reps++
			m.lastRepAt = ts
			tr.Rep = true
		}
	}

	m.phase = zone
	tr.To = zone
	return tr
}

// Miss records a frame without a usable measurement.
func (m *Machine) Miss() Transition {
	return m.miss()
}

func (m *Machine) miss() Transition {
	m.lost++
	tr := Transition{From: m.phase, To: m.phase}
	if m.maxLostFrames > 0 && m.lost > m.maxLostFrames {
		m.phase = PhaseUnknown
		tr.To = PhaseUnknown
	}
	return tr
}

func (m *Machine) Phase() Phase {
	return m.phase
}

func (m *Machine) Reps() int {
	return m.reps
}

func (m *Machine) Reset() {
	m.phase = PhaseUnknown
	m.reps = 0
	m.lost = 0
	m.lastRepAt = time.Time{}
}
