// Package gauge fuses the two pointer angles of an analog dial indicator
// into a millimeter reading. A Session owns one camera stream's state:
// per-pointer smoothing histories, the tare accumulator, and the mutable
// geometry configuration.
package gauge

import (
	"image"

	"gauge-cam/internal/arrow"
)

// Config carries the instrument geometry and detection constants. The
// coarse hand's angular span and the probe-ball diameter are empirically
// fitted, per-instrument calibration data, so they live here rather than
// in the algorithms.
type Config struct {
	// PivotOffset shifts the dial pivot from the frame center, in pixels.
	PivotOffset image.Point

	// Rotation brings the incoming raster into the dial's canonical
	// orientation, radians.
	Rotation float64

	// RedSpanStart and RedSpanEnd are the coarse hand's angles at 0 and
	// BallDiameter millimeters of travel.
	RedSpanStart float64
	RedSpanEnd   float64

	// BallDiameter is the probe ball diameter in millimeters. The final
	// reading is shifted by half of it, the fixed mechanical offset of
	// the contact point from the measured axis.
	BallDiameter float64

	// HistoryCap bounds the per-pointer smoothing windows and the tare
	// accumulator.
	HistoryCap int

	// Per-pointer detection chains.
	Black arrow.Options
	Red   arrow.Options

	// KeepDebug retains per-cycle masks, skeletons and an annotated
	// overlay for an external debug view.
	KeepDebug bool

	// Overlay geometry, pixels.
	DialOuterRadius int
	BlackRayLength  int
	RedRayLength    int
}

// DefaultConfig returns the calibration for the reference instrument unit.
func DefaultConfig() Config {
	return Config{
		PivotOffset:     image.Point{X: 18, Y: -6},
		Rotation:        -0.07513945576152618,
		RedSpanStart:    1.9170124625343092,
		RedSpanEnd:      1.9170124625343092 + 2.5120631002707458,
		BallDiameter:    4.0,
		HistoryCap:      200,
		Black:           arrow.BlackOptions(),
		Red:             arrow.RedOptions(),
		DialOuterRadius: 220,
		BlackRayLength:  200,
		RedRayLength:    140,
	}
}

// Pivot returns the dial pivot for a frame of the given dimensions.
func (c Config) Pivot(cols, rows int) image.Point {
	return image.Point{X: cols/2 + c.PivotOffset.X, Y: rows/2 + c.PivotOffset.Y}
}
