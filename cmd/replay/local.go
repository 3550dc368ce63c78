package main

import (
	"fmt"
	"io"

	"github.com/2beens/gymxp/internal/pose"
	"github.com/2beens/gymxp/internal/repcount"
	"github.com/2beens/gymxp/internal/workout"
)

// replayLocal runs the frames through a fresh analyzer and prints every rep
// followed by the session statistics.
func replayLocal(analyzerName string, cfg repcount.Config, frames []pose.Frame, out io.Writer) error {
	analyzer, err := repcount.NewAnalyzer(analyzerName, cfg)
	if err != nil {
		return err
	}

	session := workout.Session{
		Analyzer: analyzer.Name(),
		Status:   workout.StatusFinished,
	}

	invalid := 0
	for _, frame := range frames {
		if err := frame.Validate(); err != nil {
			invalid++
			continue
		}
		if session.StartedAt.IsZero() {
			session.StartedAt = frame.Timestamp
		}
		if session.LastFrameAt != nil && frame.Timestamp.Before(*session.LastFrameAt) {
			session.StaleFrames++
			continue
		}

		res := analyzer.Process(frame)
		ts := frame.Timestamp
		session.LastFrameAt = &ts
		session.Frames++
		if res.NewRep {
			session.RepTimestamps = append(session.RepTimestamps, res.Timestamp)
			fmt.Fprintf(out, "rep %d at frame %d (%s)\n", res.Reps, res.Seq, res.Timestamp.Format("15:04:05.000"))
		}
	}
	session.Reps = analyzer.Reps()

	// offline the frame clock is the only clock
	end := session.StartedAt
	if session.LastFrameAt != nil {
		end = *session.LastFrameAt
	}
	summary := workout.Summarize(session, end)
	printSummary(out, summary)
	if invalid > 0 {
		fmt.Fprintf(out, "skipped %d invalid frame(s)\n", invalid)
	}
	return nil
}

func printSummary(out io.Writer, s workout.Summary) {
	fmt.Fprintf(out, "analyzer:  %s\n", s.Analyzer)
	fmt.Fprintf(out, "reps:      %d\n", s.Reps)
	fmt.Fprintf(out, "frames:    %d (stale %d)\n", s.Frames, s.StaleFrames)
	fmt.Fprintf(out, "duration:  %s\n", s.Duration())
	if s.CadencePerMin > 0 {
		fmt.Fprintf(out, "cadence:   %.1f reps/min (interval %.0f ms ± %.0f)\n",
			s.CadencePerMin, s.MeanRepIntervalMs, s.StdDevRepIntervalMs)
	}
	if s.XP > 0 {
		fmt.Fprintf(out, "xp:        %d\n", s.XP)
	}
	if s.Award != nil && s.Award.LevelUp {
		fmt.Fprintf(out, "level up:  %d -> %d\n", s.Award.PreviousLevel, s.Award.Profile.Level)
	}
}
