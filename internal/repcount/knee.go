package repcount

import (
	"github.com/2beens/gymxp/internal/pose"
	"github.com/2beens/gymxp/internal/pose/filter"
	"github.com/2beens/gymxp/internal/pose/smoothing"
)

const KneeAnalyzerName = "knee3d"

// KneeAnalyzer counts squats from the 3D knee angle (hip-knee-ankle),
// averaged over the visible legs. 3D positions optionally go through the
// Kalman filter bank first.
type KneeAnalyzer struct {
	cfg      Config
	bank     *filter.Bank
	smoother *smoothing.MovingAverage
	machine  *Machine
}

func NewKneeAnalyzer(cfg Config) (*KneeAnalyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	smoother, err := smoothing.NewMovingAverage(cfg.WindowSize)
	if err != nil {
		return nil, err
	}
	machine, err := NewMachine(cfg.Knee, cfg.MinRepInterval, cfg.MaxLostFrames)
	if err != nil {
		return nil, err
	}

	a := &KneeAnalyzer{
		cfg:      cfg,
		smoother: smoother,
		machine:  machine,
	}
	if cfg.UseFilter {
		a.bank = filter.NewBank(cfg.Filter)
	}
	return a, nil
}

func (a *KneeAnalyzer) Name() string {
	return KneeAnalyzerName
}

func (a *KneeAnalyzer) Process(frame pose.Frame) Result {
	if a.bank != nil {
		frame = a.bank.Apply(frame)
	}

	res := Result{
		Seq:       frame.Seq,
		Timestamp: frame.Timestamp,
	}

	knee, ok := averageAngle(frame, kneeJoints, a.cfg.MinConfidence, true)
	var tr Transition
	if ok {
		smoothed := a.smoother.Add(knee)
		tr = a.machine.Observe(frame.Timestamp, smoothed, true)
		res.Tracked = true
		res.Angles = map[string]float64{
			"knee_raw": knee,
			"knee":     smoothed,
		}
	} else {
		tr = a.machine.Miss()
		if tr.Changed() && tr.To == PhaseUnknown {
			// tracking lost for too long, stale angles must not leak into the next rep
			a.smoother.Reset()
		}
	}

	res.Phase = tr.To
	res.NewRep = tr.Rep
	res.Reps = a.machine.Reps()
	return res
}

func (a *KneeAnalyzer) Phase() Phase {
	return a.machine.Phase()
}

func (a *KneeAnalyzer) Reps() int {
	return a.machine.Reps()
}

func (a *KneeAnalyzer) Reset() {
	a.smoother.Reset()
	a.machine.Reset()
	if a.bank != nil {
		a.bank.Reset()
	}
}
