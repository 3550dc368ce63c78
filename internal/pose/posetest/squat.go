// Package posetest builds synthetic pose frames with known joint angles.
package posetest

import (
	"math"
	"time"

	"github.com/2beens/gymxp/internal/pose"
)

const (
	shinLength  = 0.45
	thighLength = 0.45
	torsoLength = 0.55
)

// SquatFrame returns a frame where both knees bend to kneeDeg and both hips
// to hipDeg, every keypoint reported with the given confidence.
func SquatFrame(seq int, ts time.Time, kneeDeg, hipDeg, confidence float64) pose.Frame {
	frame := pose.Frame{
		Seq:       seq,
		Timestamp: ts,
	}
	for i, side := range pose.Sides {
		z := 0.15
		if i == 1 {
			z = -0.15
		}
		frame.Keypoints = append(frame.Keypoints, legKeypoints(side, z, kneeDeg, hipDeg, confidence)...)
	}
	return frame
}

func legKeypoints(side pose.Side, z, kneeDeg, hipDeg, confidence float64) []pose.Keypoint {
	knee := [2]float64{0, shinLength}
	ankle := [2]float64{0, 0}

	theta := kneeDeg * math.Pi / 180
	// knee->hip is the knee->ankle direction (straight down) rotated by theta
	hip := [2]float64{
		knee[0] + thighLength*math.Sin(theta),
		knee[1] - thighLength*math.Cos(theta),
	}

	// hip->knee direction, rotated by phi gives hip->shoulder
	dx, dy := (knee[0]-hip[0])/thighLength, (knee[1]-hip[1])/thighLength
	phi := hipDeg * math.Pi / 180
	shoulder := [2]float64{
		hip[0] + torsoLength*(dx*math.Cos(phi)-dy*math.Sin(phi)),
		hip[1] + torsoLength*(dx*math.Sin(phi)+dy*math.Cos(phi)),
	}

	kp := func(j pose.Joint, p [2]float64) pose.Keypoint {
		return pose.Keypoint{
			Joint:      j,
			Position:   pose.Vec3{X: p[0], Y: p[1], Z: z},
			Image:      pose.Vec2{X: 0.5 + p[0]*0.4, Y: 0.9 - p[1]*0.4},
			Confidence: confidence,
		}
	}

	return []pose.Keypoint{
		kp(side.Shoulder, shoulder),
		kp(side.Hip, hip),
		kp(side.Knee, knee),
		kp(side.Ankle, ankle),
	}
}

// SquatSequence emits reps full squats sampled at fps. Each rep starts
// standing, bends down to the bottom angles and comes back up. A couple of
// standing frames pad the start and the end of the sequence.
func SquatSequence(start time.Time, fps int, reps int, repDuration time.Duration, confidence float64) []pose.Frame {
	const (
		standKnee  = 172.0
		standHip   = 174.0
		bottomKnee = 75.0
		bottomHip  = 80.0
		padFrames  = 10
	)

	step := time.Second / time.Duration(fps)
	perRep := int(repDuration / step)
	if perRep < 2 {
		perRep = 2
	}

	frames := make([]pose.Frame, 0, reps*perRep+2*padFrames)
	ts := start
	seq := 0
	add := func(knee, hip float64) {
		frames = append(frames, SquatFrame(seq, ts, knee, hip, confidence))
		seq++
		ts = ts.Add(step)
	}

	for i := 0; i < padFrames; i++ {
		add(standKnee, standHip)
	}
	for r := 0; r < reps; r++ {
		for i := 0; i < perRep; i++ {
			// cosine profile: 0 -> 1 -> 0 depth over the rep
			depth := (1 - math.Cos(2*math.Pi*float64(i)/float64(perRep))) / 2
			add(
				standKnee-depth*(standKnee-bottomKnee),
				standHip-depth*(standHip-bottomHip),
			)
		}
	}
	for i := 0; i < padFrames; i++ {
		add(standKnee, standHip)
	}

	return frames
}
