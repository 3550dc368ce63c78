// Package filter implements a constant-velocity Kalman filter over 3D joint
// positions. Each joint is tracked independently with state
// [x y z vx vy vz] and a full 6x6 covariance.
package filter

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/2beens/gymxp/internal/pose"
)

const (
	stateDim = 6
	measDim  = 3
)

var ErrInvalidConfig = errors.New("invalid filter config")

type Config struct {
	// ProcessNoise is the white acceleration spectral density (m^2/s^3).
	ProcessNoise float64 `toml:"process_noise" json:"processNoise"`
	// MeasurementNoise is the position measurement variance (m^2).
	MeasurementNoise        float64 `toml:"measurement_noise" json:"measurementNoise"`
	InitialPositionVariance float64 `toml:"initial_position_variance" json:"initialPositionVariance"`
	InitialVelocityVariance float64 `toml:"initial_velocity_variance" json:"initialVelocityVariance"`
	// MinConfidence gates measurement updates; less visible joints only coast.
	MinConfidence float64 `toml:"min_confidence" json:"minConfidence"`
	// MaxPredictDt caps a single prediction step, frame gaps beyond it are
	// predicted as if only MaxPredictDt had passed.
	MaxPredictDt   time.Duration `toml:"max_predict_dt" json:"maxPredictDt"`
	MaxCoastFrames int           `toml:"max_coast_frames" json:"maxCoastFrames"`
}

func DefaultConfig() Config {
	return Config{
		ProcessNoise:            50,
		MeasurementNoise:        1e-4,
		InitialPositionVariance: 1e-2,
		InitialVelocityVariance: 1,
		MinConfidence:           0.5,
		MaxPredictDt:            500 * time.Millisecond,
		MaxCoastFrames:          10,
	}
}

func (c Config) Validate() error {
	if c.ProcessNoise <= 0 || c.MeasurementNoise <= 0 {
		return fmt.Errorf("%w: noise must be positive", ErrInvalidConfig)
	}
	if c.InitialPositionVariance <= 0 || c.InitialVelocityVariance <= 0 {
		return fmt.Errorf("%w: initial variance must be positive", ErrInvalidConfig)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("%w: min confidence %.2f", ErrInvalidConfig, c.MinConfidence)
	}
	if c.MaxCoastFrames < 0 || c.MaxPredictDt < 0 {
		return fmt.Errorf("%w: negative coast frames or predict dt", ErrInvalidConfig)
	}
	return nil
}

// Point tracks one 3D joint.
type Point struct {
	cfg Config
	x   *mat.VecDense
	p   *mat.Dense

	initialized bool
	coasting    int
}

func NewPoint(cfg Config) *Point {
	return &Point{
		cfg: cfg,
		x:   mat.NewVecDense(stateDim, nil),
		p:   mat.NewDense(stateDim, stateDim, nil),
	}
}

// Init resets the state to a measured position at rest.
func (pt *Point) Init(z pose.Vec3) {
	pt.x = mat.NewVecDense(stateDim, []float64{z.X, z.Y, z.Z, 0, 0, 0})
	pt.p = mat.NewDense(stateDim, stateDim, nil)
	for i := 0; i < measDim; i++ {
		pt.p.Set(i, i, pt.cfg.InitialPositionVariance)
		pt.p.Set(i+measDim, i+measDim, pt.cfg.InitialVelocityVariance)
	}
	pt.initialized = true
	pt.coasting = 0
}

func (pt *Point) Initialized() bool {
	return pt.initialized
}

// Predict advances the state by dt: x' = F x, P' = F P F^T + Q.
func (pt *Point) Predict(dt time.Duration) {
	if !pt.initialized || dt <= 0 {
		return
	}
	if pt.cfg.MaxPredictDt > 0 && dt > pt.cfg.MaxPredictDt {
		dt = pt.cfg.MaxPredictDt
	}
	s := dt.Seconds()

	f := transition(s)

	var x mat.VecDense
	x.MulVec(f, pt.x)
	pt.x = &x

	var fp, fpft mat.Dense
	fp.Mul(f, pt.p)
	fpft.Mul(&fp, f.T())
	fpft.Add(&fpft, processNoise(s, pt.cfg.ProcessNoise))
	pt.p = &fpft
}

// Update corrects the state with a measured position.
// Returns false when the innovation covariance is singular.
func (pt *Point) Update(z pose.Vec3) bool {
	if !pt.initialized {
		pt.Init(z)
		return true
	}

	h := observation()
	zv := mat.NewVecDense(measDim, []float64{z.X, z.Y, z.Z})

	// innovation y = z - H x
	var hx, y mat.VecDense
	hx.MulVec(h, pt.x)
	y.SubVec(zv, &hx)

	// S = H P H^T + R
	var hp, s mat.Dense
	hp.Mul(h, pt.p)
	s.Mul(&hp, h.T())
	for i := 0; i < measDim; i++ {
		s.Set(i, i, s.At(i, i)+pt.cfg.MeasurementNoise)
	}

	var sInv mat.Dense
	if err := sInv.Inverse(&s); err != nil {
		return false
	}

	// K = P H^T S^-1
	var pht, k mat.Dense
	pht.Mul(pt.p, h.T())
	k.Mul(&pht, &sInv)

	var ky, x mat.VecDense
	ky.MulVec(&k, &y)
	x.AddVec(pt.x, &ky)
	pt.x = &x

	// P = (I - K H) P, then symmetrised against rounding
	var kh, ikh, p mat.Dense
	kh.Mul(&k, h)
	ikh.Sub(identity(stateDim), &kh)
	p.Mul(&ikh, pt.p)
	var pt2 mat.Dense
	pt2.Add(&p, p.T())
	pt2.Scale(0.5, &pt2)
	pt.p = &pt2

	return true
}

func (pt *Point) Position() pose.Vec3 {
	return pose.Vec3{X: pt.x.AtVec(0), Y: pt.x.AtVec(1), Z: pt.x.AtVec(2)}
}

func (pt *Point) Velocity() pose.Vec3 {
	return pose.Vec3{X: pt.x.AtVec(3), Y: pt.x.AtVec(4), Z: pt.x.AtVec(5)}
}

// PositionVariance is the trace of the position block of the covariance.
func (pt *Point) PositionVariance() float64 {
	return pt.p.At(0, 0) + pt.p.At(1, 1) + pt.p.At(2, 2)
}

func (pt *Point) finite() bool {
	for i := 0; i < stateDim; i++ {
		v := pt.x.AtVec(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
		d := pt.p.At(i, i)
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return false
		}
	}
	return true
}

// transition is the constant velocity model:
//
//	[I3 dt*I3]
//	[0  I3   ]
func transition(dt float64) *mat.Dense {
	f := identity(stateDim)
	for i := 0; i < measDim; i++ {
		f.Set(i, i+measDim, dt)
	}
	return f
}

// processNoise is the discretised white-acceleration noise, per axis
// q * [dt^3/3 dt^2/2; dt^2/2 dt].
func processNoise(dt, q float64) *mat.Dense {
	m := mat.NewDense(stateDim, stateDim, nil)
	for i := 0; i < measDim; i++ {
		m.Set(i, i, q*dt*dt*dt/3)
		m.Set(i, i+measDim, q*dt*dt/2)
		m.Set(i+measDim, i, q*dt*dt/2)
		m.Set(i+measDim, i+measDim, q*dt)
	}
	return m
}

func observation() *mat.Dense {
	h := mat.NewDense(measDim, stateDim, nil)
	for i := 0; i < measDim; i++ {
		h.Set(i, i, 1)
	}
	return h
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}
