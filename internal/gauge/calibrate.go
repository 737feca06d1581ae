package gauge

import (
	"math"

	"gauge-cam/pkg/angles"
)

// Measurement is one cycle's fused reading.
type Measurement struct {
	ThetaBlack float64 // smoothed fine-hand angle, [0, 2π)
	ThetaRed   float64 // smoothed coarse-hand angle, [0, 2π)
	MMBlack    float64 // fine hand's fraction of one turn, millimeters
	MMRed      float64 // coarse hand mapped onto its span, millimeters
	MMFinal    float64 // blended reading less the probe-ball radius
}

// Calibrate fuses the smoothed coarse and fine angles into one millimeter
// reading. The coarse hand supplies the integer-turn count; its fractional
// part is then corrected toward the fine hand's more precise phase by the
// minimal circular offset between the two estimates, so the result has the
// coarse hand's range with the fine hand's resolution.
func Calibrate(thetaBlack, thetaRed float64, cfg Config) Measurement {
	tb := angles.Normalize(thetaBlack)
	tr := angles.Normalize(thetaRed)

	// The fine hand covers one millimeter per full turn.
	mmBlack := tb / angles.TwoPi

	// The coarse hand's span maps onto the full ball-diameter travel.
	// Near the span edges this may land slightly outside [0, diameter).
	mmRed := (tr - cfg.RedSpanStart) / (cfg.RedSpanEnd - cfg.RedSpanStart) * cfg.BallDiameter

	// Correct the coarse reading's own sub-unit fraction with the fine
	// hand's phase, treating both fractions as angles so the comparison
	// is wraparound-safe.
	_, redFraction := math.Modf(mmRed)
	offset := angles.Diff(tb, redFraction*angles.TwoPi) / angles.TwoPi
	blended := mmRed + offset

	return Measurement{
		ThetaBlack: tb,
		ThetaRed:   tr,
		MMBlack:    mmBlack,
		MMRed:      mmRed,
		MMFinal:    blended - cfg.BallDiameter/2,
	}
}
