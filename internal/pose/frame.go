package pose

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ErrFrameNoTimestamp     = errors.New("frame timestamp not set")
	ErrFrameInvalidJoint    = errors.New("invalid joint")
	ErrFrameDuplicateJoint  = errors.New("duplicate joint")
	ErrFrameBadConfidence   = errors.New("confidence out of [0, 1]")
	ErrFrameNonFiniteCoords = errors.New("non-finite coordinates")
)

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) R3() r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// Vec2 is a point in normalized image coordinates.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) R2() r2.Vec {
	return r2.Vec{X: v.X, Y: v.Y}
}

func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

type Keypoint struct {
	Joint      Joint   `json:"joint"`
	Position   Vec3    `json:"position"`
	Image      Vec2    `json:"image"`
	Confidence float64 `json:"confidence"`
}

// Frame is one pose-model result for a single video frame.
type Frame struct {
	Seq       int        `json:"seq"`
	Timestamp time.Time  `json:"timestamp"`
	Keypoints []Keypoint `json:"keypoints"`
}

func (f Frame) Get(joint Joint) (Keypoint, bool) {
	for _, kp := range f.Keypoints {
		if kp.Joint == joint {
			return kp, true
		}
	}
	return Keypoint{}, false
}

func (f Frame) Validate() error {
	if f.Timestamp.IsZero() {
		return ErrFrameNoTimestamp
	}

	seen := make(map[Joint]bool, len(f.Keypoints))
	for _, kp := range f.Keypoints {
		if !kp.Joint.IsValid() {
			return fmt.Errorf("%w: %q", ErrFrameInvalidJoint, kp.Joint)
		}
		if seen[kp.Joint] {
			return fmt.Errorf("%w: %s", ErrFrameDuplicateJoint, kp.Joint)
		}
		seen[kp.Joint] = true

		if kp.Confidence < 0 || kp.Confidence > 1 || math.IsNaN(kp.Confidence) {
			return fmt.Errorf("%w: %s %f", ErrFrameBadConfidence, kp.Joint, kp.Confidence)
		}
		if !kp.Position.IsFinite() || !kp.Image.IsFinite() {
			return fmt.Errorf("%w: %s", ErrFrameNonFiniteCoords, kp.Joint)
		}
	}

	return nil
}

// Clone returns a deep copy, so filters can rewrite positions freely.
func (f Frame) Clone() Frame {
	c := f
	c.Keypoints = append([]Keypoint(nil), f.Keypoints...)
	return c
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
