package pose_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/gymxp/internal/pose"
	"github.com/2beens/gymxp/internal/pose/posetest"
)

func TestAngle3D(t *testing.T) {
	testCases := []struct {
		name     string
		a        pose.Vec3
		vertex   pose.Vec3
		c        pose.Vec3
		expected float64
	}{
		{
			name:     "straight",
			a:        pose.Vec3{Y: 1},
			c:        pose.Vec3{Y: -1},
			expected: 180,
		},
		{
			name:     "right angle",
			a:        pose.Vec3{X: 1},
			c:        pose.Vec3{Z: 2},
			expected: 90,
		},
		{
			name:     "folded",
			a:        pose.Vec3{X: 1, Y: 1, Z: 1},
			vertex:   pose.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
			c:        pose.Vec3{X: 2, Y: 2, Z: 2},
			expected: 0,
		},
		{
			name:     "sixty",
			a:        pose.Vec3{X: 1},
			c:        pose.Vec3{X: 0.5, Y: math.Sqrt(3) / 2},
			expected: 60,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pose.Angle3D(tc.a, tc.vertex, tc.c)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, got, 1e-6)
		})
	}
}

func TestAngle2D(t *testing.T) {
	got, err := pose.Angle2D(pose.Vec2{X: 0, Y: 1}, pose.Vec2{}, pose.Vec2{X: 1, Y: 0})
	require.NoError(t, err)
	assert.InDelta(t, 90, got, 1e-9)

	// nearly collinear points must not produce NaN
	got, err = pose.Angle2D(pose.Vec2{X: 1e6, Y: 1e-9}, pose.Vec2{}, pose.Vec2{X: 2e6, Y: 2e-9})
	require.NoError(t, err)
	assert.False(t, math.IsNaN(got))
	assert.InDelta(t, 0, got, 1e-3)
}

func TestAngle_Degenerate(t *testing.T) {
	_, err := pose.Angle3D(pose.Vec3{}, pose.Vec3{}, pose.Vec3{X: 1})
	assert.ErrorIs(t, err, pose.ErrDegenerateAngle)

	_, err = pose.Angle3D(pose.Vec3{X: math.NaN()}, pose.Vec3{}, pose.Vec3{X: 1})
	assert.ErrorIs(t, err, pose.ErrDegenerateAngle)

	_, err = pose.Angle2D(pose.Vec2{X: 1}, pose.Vec2{X: 1}, pose.Vec2{Y: 1})
	assert.ErrorIs(t, err, pose.ErrDegenerateAngle)

	_, err = pose.Angle2D(pose.Vec2{X: math.Inf(1)}, pose.Vec2{}, pose.Vec2{Y: 1})
	assert.ErrorIs(t, err, pose.ErrDegenerateAngle)
}

func TestJointAngle_SyntheticSquat(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for _, knee := range []float64{170, 140, 95, 70} {
		frame := posetest.SquatFrame(0, ts, knee, 120, 0.9)

		got3D, err := pose.JointAngle(frame, pose.JointLeftHip, pose.JointLeftKnee, pose.JointLeftAnkle, 0.5, true)
		require.NoError(t, err)
		got2D, err := pose.JointAngle(frame, pose.JointRightHip, pose.JointRightKnee, pose.JointRightAnkle, 0.5, false)
		require.NoError(t, err)
		hip, err := pose.JointAngle(frame, pose.JointLeftShoulder, pose.JointLeftHip, pose.JointLeftKnee, 0.5, true)
		require.NoError(t, err)

		got := []float64{got3D, got2D, hip}
		want := []float64{knee, knee, 120}
		if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
			t.Errorf("knee %.0f: angles mismatch (-want +got):\n%s", knee, diff)
		}
	}
}

func TestJointAngle_Errors(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	frame := posetest.SquatFrame(0, ts, 120, 120, 0.3)

	_, err := pose.JointAngle(frame, pose.JointLeftHip, pose.JointLeftKnee, pose.JointLeftAnkle, 0.5, true)
	assert.ErrorIs(t, err, pose.ErrLowConfidence)

	_, err = pose.JointAngle(frame, pose.JointLeftHip, pose.JointLeftElbow, pose.JointLeftAnkle, 0.1, true)
	assert.ErrorIs(t, err, pose.ErrJointMissing)
}
