package gamification

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidRules = errors.New("invalid xp rules")

// Rules turn counted repetitions into experience points and levels.
//
// Levels grow quadratically: reaching level n needs LevelBase*n*(n-1)/2 XP in
// total, so with the default base of 100 level 2 starts at 100 XP, level 3
// at 300, level 4 at 600.
type Rules struct {
	XPPerRep          int `toml:"xp_per_rep" json:"xpPerRep"`
	SetSize           int `toml:"set_size" json:"setSize"`
	SetBonus          int `toml:"set_bonus" json:"setBonus"`
	MaxRepsPerSession int `toml:"max_reps_per_session" json:"maxRepsPerSession"`
	LevelBase         int `toml:"level_base" json:"levelBase"`
}

func DefaultRules() Rules {
	return Rules{
		XPPerRep:          10,
		SetSize:           10,
		SetBonus:          25,
		MaxRepsPerSession: 500,
		LevelBase:         100,
	}
}

func (r Rules) Validate() error {
	if r.XPPerRep < 0 || r.SetBonus < 0 {
		return fmt.Errorf("%w: negative xp per rep or set bonus", ErrInvalidRules)
	}
	if r.SetSize <= 0 || r.MaxRepsPerSession <= 0 || r.LevelBase <= 0 {
		return fmt.Errorf("%w: set size, max reps and level base must be > 0", ErrInvalidRules)
	}
	return nil
}

// CappedReps clamps reps into [0, MaxRepsPerSession].
func (r Rules) CappedReps(reps int) int {
	if reps < 0 {
		return 0
	}
	if reps > r.MaxRepsPerSession {
		return r.MaxRepsPerSession
	}
	return reps
}

// AwardFor returns the XP earned by a session with the given rep count.
func (r Rules) AwardFor(reps int) int {
	reps = r.CappedReps(reps)
	xp := reps * r.XPPerRep
	if r.SetSize > 0 {
		xp += (reps / r.SetSize) * r.SetBonus
	}
	return xp
}

// XPForLevel is the total XP needed to reach level n. Level 1 is free.
func (r Rules) XPForLevel(n int) int {
	if n <= 1 {
		return 0
	}
	return r.LevelBase * n * (n - 1) / 2
}

func (r Rules) LevelFor(xp int) int {
	if xp <= 0 || r.LevelBase <= 0 {
		return 1
	}
	// inverse of XPForLevel, corrected for float rounding
	n := int((1 + math.Sqrt(1+8*float64(xp)/float64(r.LevelBase))) / 2)
	for n > 1 && r.XPForLevel(n) > xp {
		n--
	}
	for r.XPForLevel(n+1) <= xp {
		n++
	}
	return n
}

type LevelProgress struct {
	Level         int `json:"level"`
	XP            int `json:"xp"`
	XPIntoLevel   int `json:"xpIntoLevel"`
	XPToNextLevel int `json:"xpToNextLevel"`
}

func (r Rules) Progress(xp int) LevelProgress {
	if xp < 0 {
		xp = 0
	}
	level := r.LevelFor(xp)
	return LevelProgress{
		Level:         level,
		XP:            xp,
		XPIntoLevel:   xp - r.XPForLevel(level),
		XPToNextLevel: r.XPForLevel(level+1) - xp,
	}
}
