package gauge

import (
	"gauge-cam/pkg/angles"
)

// TareState accumulates paired pointer angles while tare mode is active,
// as a running baseline for a later zero-offset calibration. It is a
// parallel diagnostic accumulator and never alters the live reading.
type TareState struct {
	active bool
	black  *angles.History
	red    *angles.History
}

// NewTareState creates an inactive tare accumulator with the given capacity.
func NewTareState(capacity int) *TareState {
	return &TareState{
		black: angles.NewHistory(capacity),
		red:   angles.NewHistory(capacity),
	}
}

// Toggle flips tare mode and clears the accumulator on every transition,
// in either direction. Returns the new state.
func (t *TareState) Toggle() bool {
	t.black.Reset()
	t.red.Reset()
	t.active = !t.active
	return t.active
}

// Active reports whether tare samples are being accumulated.
func (t *TareState) Active() bool {
	return t.active
}

// Add appends one (black, red) smoothed-angle pair. Ignored when inactive.
func (t *TareState) Add(thetaBlack, thetaRed float64) {
	if !t.active {
		return
	}
	t.black.Push(thetaBlack)
	t.red.Push(thetaRed)
}

// TareBaseline is the circular mean of the accumulated angle pairs.
type TareBaseline struct {
	ThetaBlack float64
	ThetaRed   float64
	Samples    int
}

// Baseline returns the running baseline; false until a sample has been
// accumulated.
func (t *TareState) Baseline() (TareBaseline, bool) {
	tb, okB := t.black.Mean()
	tr, okR := t.red.Mean()
	if !okB || !okR {
		return TareBaseline{}, false
	}
	return TareBaseline{ThetaBlack: tb, ThetaRed: tr, Samples: t.black.Len()}, true
}
