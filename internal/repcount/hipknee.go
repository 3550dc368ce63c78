package repcount

import (
	"github.com/2beens/gymxp/internal/pose"
	"github.com/2beens/gymxp/internal/pose/smoothing"
)

const HipKneeAnalyzerName = "hipknee2d"

// HipKneeAnalyzer works on 2D image coordinates and needs the knee and the
// hip angle to agree: a squat is only down when both joints are flexed and
// only up when both are extended. It is the variant for clients whose pose
// model does not report usable depth.
type HipKneeAnalyzer struct {
	cfg          Config
	kneeSmoother *smoothing.MovingAverage
	hipSmoother  *smoothing.MovingAverage
	machine      *Machine
}

func NewHipKneeAnalyzer(cfg Config) (*HipKneeAnalyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	kneeSmoother, err := smoothing.NewMovingAverage(cfg.WindowSize)
	if err != nil {
		return nil, err
	}
	hipSmoother, err := smoothing.NewMovingAverage(cfg.WindowSize)
	if err != nil {
		return nil, err
	}
	// the machine is fed combined zones, its own band is only used for validation
	machine, err := NewMachine(cfg.Knee, cfg.MinRepInterval, cfg.MaxLostFrames)
	if err != nil {
		return nil, err
	}

	return &HipKneeAnalyzer{
		cfg:          cfg,
		kneeSmoother: kneeSmoother,
		hipSmoother:  hipSmoother,
		machine:      machine,
	}, nil
}

func (a *HipKneeAnalyzer) Name() string {
	return HipKneeAnalyzerName
}

func (a *HipKneeAnalyzer) Process(frame pose.Frame) Result {
	res := Result{
		Seq:       frame.Seq,
		Timestamp: frame.Timestamp,
	}

	knee, kneeOK := averageAngle(frame, kneeJoints, a.cfg.MinConfidence, false)
	hip, hipOK := averageAngle(frame, hipJoints, a.cfg.MinConfidence, false)

	var tr Transition
	if kneeOK && hipOK {
		kneeSmoothed := a.kneeSmoother.Add(knee)
		hipSmoothed := a.hipSmoother.Add(hip)
		zone := combineZones(a.cfg.Knee.Zone(kneeSmoothed), a.cfg.Hip.Zone(hipSmoothed))
		tr = a.machine.ObserveZone(frame.Timestamp, zone)
		res.Tracked = true
		res.Angles = map[string]float64{
			"knee_raw": knee,
			"knee":     kneeSmoothed,
			"hip_raw":  hip,
			"hip":      hipSmoothed,
		}
	} else {
		tr = a.machine.Miss()
		if tr.Changed() && tr.To == PhaseUnknown {
			a.kneeSmoother.Reset()
			a.hipSmoother.Reset()
		}
	}

	res.Phase = tr.To
	res.NewRep = tr.Rep
	res.Reps = a.machine.Reps()
	return res
}

func combineZones(knee, hip Phase) Phase {
	if knee == hip {
		return knee
	}
	return PhaseUnknown
}

func (a *HipKneeAnalyzer) Phase() Phase {
	return a.machine.Phase()
}

func (a *HipKneeAnalyzer) Reps() int {
	return a.machine.Reps()
}

func (a *HipKneeAnalyzer) Reset() {
	a.kneeSmoother.Reset()
	a.hipSmoother.Reset()
	a.machine.Reset()
}
