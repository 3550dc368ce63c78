package gamification

import (
	"errors"
	"time"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
	ErrInvalidProfile  = errors.New("invalid profile")
)

type Profile struct {
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	TotalXP     int       `json:"totalXp"`
	Level       int       `json:"level"`
	TotalReps   int       `json:"totalReps"`
	Sessions    int       `json:"sessions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Award is the outcome of crediting a finished workout to a profile.
type Award struct {
	XP            int      `json:"xp"`
	Reps          int      `json:"reps"`
	Profile       *Profile `json:"profile"`
	LevelUp       bool     `json:"levelUp"`
	PreviousLevel int      `json:"previousLevel"`
}

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID string `json:"userId"`
	XP     int    `json:"xp"`
}
