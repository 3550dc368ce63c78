package pose

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ErrDegenerateAngle = errors.New("degenerate angle")
	ErrJointMissing    = errors.New("joint missing")
	ErrLowConfidence   = errors.New("joint confidence too low")
)

// minLimbLength guards against coincident points; coordinates from the pose
// model are in meters (3D) or normalized image units (2D).
const minLimbLength = 1e-9

// Angle3D returns the angle in degrees at vertex, formed by a-vertex-c.
func Angle3D(a, vertex, c Vec3) (float64, error) {
	if !a.IsFinite() || !vertex.IsFinite() || !c.IsFinite() {
		return 0, fmt.Errorf("%w: non-finite point", ErrDegenerateAngle)
	}
	u := r3.Sub(a.R3(), vertex.R3())
	v := r3.Sub(c.R3(), vertex.R3())
	return angleFromDot(r3.Dot(u, v), r3.Norm(u), r3.Norm(v))
}

// Angle2D returns the angle in degrees at vertex, formed by a-vertex-c.
func Angle2D(a, vertex, c Vec2) (float64, error) {
	if !a.IsFinite() || !vertex.IsFinite() || !c.IsFinite() {
		return 0, fmt.Errorf("%w: non-finite point", ErrDegenerateAngle)
	}
	u := r2.Sub(a.R2(), vertex.R2())
	v := r2.Sub(c.R2(), vertex.R2())
	return angleFromDot(r2.Dot(u, v), r2.Norm(u), r2.Norm(v))
}

func angleFromDot(dot, normU, normV float64) (float64, error) {
	if normU < minLimbLength || normV < minLimbLength {
		return 0, fmt.Errorf("%w: zero length limb", ErrDegenerateAngle)
	}
	cos := dot / (normU * normV)
	// rounding can push cos slightly outside [-1, 1]
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi, nil
}

// JointAngle computes the angle at vertex for the given frame. Every
// participating keypoint must be present and at least minConfidence.
func JointAngle(frame Frame, a, vertex, c Joint, minConfidence float64, use3D bool) (float64, error) {
	kps := make([]Keypoint, 0, 3)
	for _, j := range []Joint{a, vertex, c} {
		kp, ok := frame.Get(j)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrJointMissing, j)
		}
		if kp.Confidence < minConfidence {
			return 0, fmt.Errorf("%w: %s %.2f", ErrLowConfidence, j, kp.Confidence)
		}
		kps = append(kps, kp)
	}

	if use3D {
		return Angle3D(kps[0].Position, kps[1].Position, kps[2].Position)
	}
	return Angle2D(kps[0].Image, kps[1].Image, kps[2].Image)
}
