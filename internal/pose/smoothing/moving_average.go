// Package smoothing holds the per-angle temporal smoothing used before
// angles reach the repetition state machine.
package smoothing

import (
	"errors"
	"math"
)

var ErrInvalidWindow = errors.New("window size must be > 0")

// MovingAverage is a fixed-size simple moving average over a ring buffer.
// Until the window fills up, the average is taken over the values seen so far.
type MovingAverage struct {
	values []float64
	index  int
	count  int
	sum    float64
}

func NewMovingAverage(size int) (*MovingAverage, error) {
	if size <= 0 {
		return nil, ErrInvalidWindow
	}
	return &MovingAverage{
		values: make([]float64, size),
	}, nil
}

// Add pushes v into the window and returns the new average.
// Non-finite values are dropped.
func (m *MovingAverage) Add(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return m.Value()
	}

	if m.count == len(m.values) {
		m.sum -= m.values[m.index]
	} else {
		m.count++
	}
	m.values[m.index] = v
	m.sum += v

	m.index++
	if m.index == len(m.values) {
		m.index = 0
		// re-sum once per lap so float drift never accumulates
		m.sum = 0
		for _, x := range m.values[:m.count] {
			m.sum += x
		}
	}

	return m.Value()
}

func (m *MovingAverage) Value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

func (m *MovingAverage) Len() int {
	return m.count
}

func (m *MovingAverage) Size() int {
	return len(m.values)
}

func (m *MovingAverage) Full() bool {
	return m.count == len(m.values)
}

func (m *MovingAverage) Reset() {
	for i := range m.values {
		m.values[i] = 0
	}
	m.index = 0
	m.count = 0
	m.sum = 0
}
