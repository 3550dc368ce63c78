package filter

import (
	"time"

	"github.com/2beens/gymxp/internal/pose"
)

// Bank runs one Point filter per joint over a stream of frames.
type Bank struct {
	cfg    Config
	points map[pose.Joint]*Point
	lastTs time.Time
}

func NewBank(cfg Config) *Bank {
	return &Bank{
		cfg:    cfg,
		points: make(map[pose.Joint]*Point),
	}
}

// Apply filters the 3D positions of frame and returns the filtered copy.
// Visible joints (confidence >= MinConfidence) update their track; others
// coast on the prediction and keep their reported confidence. Image
// coordinates are passed through untouched.
func (b *Bank) Apply(frame pose.Frame) pose.Frame {
	out := frame.Clone()

	var dt time.Duration
	if !b.lastTs.IsZero() {
		dt = frame.Timestamp.Sub(b.lastTs)
	}
	if dt >= 0 {
		b.lastTs = frame.Timestamp
	}

	present := make(map[pose.Joint]bool, len(out.Keypoints))
	for i, kp := range out.Keypoints {
		present[kp.Joint] = true
		visible := kp.Confidence >= b.cfg.MinConfidence

		pt, ok := b.points[kp.Joint]
		if !ok {
			if visible {
				pt = NewPoint(b.cfg)
				pt.Init(kp.Position)
				b.points[kp.Joint] = pt
			}
			continue
		}

		pt.Predict(dt)
		// a rejected measurement counts as a missed one
		if visible && pt.Update(kp.Position) {
			pt.coasting = 0
		} else {
			pt.coasting++
		}

		if !pt.finite() || pt.coasting > b.cfg.MaxCoastFrames {
			delete(b.points, kp.Joint)
			continue
		}

		out.Keypoints[i].Position = pt.Position()
	}

	// tracks whose joint vanished from the frame coast as well
	for joint, pt := range b.points {
		if present[joint] {
			continue
		}
		pt.Predict(dt)
		pt.coasting++
		if !pt.finite() || pt.coasting > b.cfg.MaxCoastFrames {
			delete(b.points, joint)
		}
	}

	return out
}

func (b *Bank) Tracked() int {
	return len(b.points)
}

func (b *Bank) Reset() {
	b.points = make(map[pose.Joint]*Point)
	b.lastTs = time.Time{}
}
