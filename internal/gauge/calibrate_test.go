package gauge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalibrateSpanStart(t *testing.T) {
	cfg := DefaultConfig()

	// Fine hand at zero, coarse hand at the very start of its span:
	// everything cancels and only the ball-radius shift remains.
	m := Calibrate(0, cfg.RedSpanStart, cfg)

	assert.InDelta(t, 0, m.MMBlack, 1e-9)
	assert.InDelta(t, 0, m.MMRed, 1e-9)
	assert.InDelta(t, -cfg.BallDiameter/2, m.MMFinal, 1e-9)
	assert.InDelta(t, -2.0, m.MMFinal, 1e-9)
}

func TestCalibrateMidSpan(t *testing.T) {
	cfg := DefaultConfig()

	// Coarse hand at half span (2.0 mm, fraction 0), fine hand at a
	// quarter turn: the blend preserves the coarse turn count and takes
	// the fine hand's 0.25 fraction.
	thetaRed := cfg.RedSpanStart + 0.5*(cfg.RedSpanEnd-cfg.RedSpanStart)
	m := Calibrate(math.Pi/2, thetaRed, cfg)

	assert.InDelta(t, 0.25, m.MMBlack, 1e-9)
	assert.InDelta(t, 2.0, m.MMRed, 1e-9)
	assert.InDelta(t, 0.25, m.MMFinal, 1e-9)
}

func TestCalibrateNormalizesInputs(t *testing.T) {
	cfg := DefaultConfig()

	// Angles arriving as atan2 output below zero are mapped into
	// [0, 2π) before any linear math.
	a := Calibrate(-math.Pi/2, cfg.RedSpanStart, cfg)
	b := Calibrate(3*math.Pi/2, cfg.RedSpanStart, cfg)

	assert.InDelta(t, b.ThetaBlack, a.ThetaBlack, 1e-12)
	assert.InDelta(t, b.MMFinal, a.MMFinal, 1e-12)
	require.GreaterOrEqual(t, a.ThetaBlack, 0.0)
	require.Less(t, a.ThetaBlack, 2*math.Pi)
}

func TestCalibrateDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	a := Calibrate(1.234, 2.345, cfg)
	b := Calibrate(1.234, 2.345, cfg)
	assert.Equal(t, a, b, "same inputs must give bit-identical readings")
}
