package repcount

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/2beens/gymxp/internal/pose"
)

var ErrUnknownAnalyzer = errors.New("unknown analyzer")

// Result is the outcome of processing a single frame.
type Result struct {
	Seq       int                `json:"seq"`
	Timestamp time.Time          `json:"timestamp"`
	Phase     Phase              `json:"phase"`
	Reps      int                `json:"reps"`
	NewRep    bool               `json:"newRep"`
	Tracked   bool               `json:"tracked"`
	Angles    map[string]float64 `json:"angles,omitempty"`
}

// Analyzer turns a stream of pose frames into repetition counts.
// Implementations are not safe for concurrent use.
type Analyzer interface {
	Name() string
	Process(frame pose.Frame) Result
	Phase() Phase
	Reps() int
	Reset()
}

type analyzerFactory func(cfg Config) (Analyzer, error)

var analyzers = map[string]analyzerFactory{
	KneeAnalyzerName: func(cfg Config) (Analyzer, error) {
		return NewKneeAnalyzer(cfg)
	},
	HipKneeAnalyzerName: func(cfg Config) (Analyzer, error) {
		return NewHipKneeAnalyzer(cfg)
	},
}

// DefaultAnalyzer is used when a client does not pick one.
const DefaultAnalyzer = KneeAnalyzerName

func NewAnalyzer(name string, cfg Config) (Analyzer, error) {
	factory, ok := analyzers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAnalyzer, name)
	}
	return factory(cfg)
}

func AnalyzerNames() []string {
	names := make([]string, 0, len(analyzers))
	for name := range analyzers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func IsValidAnalyzer(name string) bool {
	_, ok := analyzers[name]
	return ok
}

// averageAngle averages the angle at vertex over the sides where all three
// joints pass the confidence gate.
func averageAngle(frame pose.Frame, joints func(pose.Side) (pose.Joint, pose.Joint, pose.Joint), minConfidence float64, use3D bool) (float64, bool) {
	var sum float64
	var n int
	for _, side := range pose.Sides {
		a, vertex, c := joints(side)
		angle, err := pose.JointAngle(frame, a, vertex, c, minConfidence, use3D)
		if err != nil {
			continue
		}
		sum += angle
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func kneeJoints(s pose.Side) (pose.Joint, pose.Joint, pose.Joint) {
	return s.Hip, s.Knee, s.Ankle
}

func hipJoints(s pose.Side) (pose.Joint, pose.Joint, pose.Joint) {
	return s.Shoulder, s.Hip, s.Knee
}
