// Package arrow turns the pixels of one dial pointer into an angle. It
// segments the pointer inside an annular region around the pivot, thins the
// blob to a skeleton, extracts line segments with a probabilistic Hough
// transform, filters them against the pivot, and summarizes the survivors
// into one circular-mean angle.
package arrow

import (
	"image"
	"math"

	"gauge-cam/pkg/geometry"

	"gocv.io/x/gocv"
)

// Pointer identifies which hand of the dial is being detected.
type Pointer int

const (
	// PointerBlack is the fine hand: one millimeter of travel per full turn.
	PointerBlack Pointer = iota
	// PointerRed is the coarse hand: the full probe travel over part of a turn.
	PointerRed
)

func (p Pointer) String() string {
	switch p {
	case PointerBlack:
		return "black"
	case PointerRed:
		return "red"
	default:
		return "unknown"
	}
}

// Options configures the detection chain for one pointer.
type Options struct {
	Pointer Pointer

	// Region of interest around the pivot.
	HubRadius   int         // exclusion disk over the hub joint
	OuterRadius int         // circular outer boundary
	OuterAxes   image.Point // elliptical outer boundary; overrides OuterRadius when non-zero

	// Adaptive threshold separating pointer pixels from the dial face.
	AdaptiveBlock int
	AdaptiveC     float32

	// Hue/saturation gate, used for the coarse hand. A HueHalfWidth of
	// zero disables the gate and selects the adaptive-threshold strategy.
	HueHalfWidth float64 // accepted band around hue 0 on the 0-179 wheel
	SatMin       float64

	// Segmentation of the other pointer, morphologically opened and
	// dilated, is subtracted before intersecting with the region. The
	// fine hand uses this to avoid picking up the coarse hand's body
	// where the two overlap.
	Subtract *Options

	// Probabilistic Hough transform over the skeleton.
	RhoRes     float32
	ThetaRes   float32
	HoughVotes int
	MinLineLen float32
	MaxLineGap float32

	// Segment filtering.
	PivotCutoff float64 // max perpendicular line distance from the pivot
	MaxAngleDev float64 // max deviation from the longest segment's direction
}

// BlackOptions returns the detection options for the fine (black) hand.
// The minimum line length must exceed the height of the dial's label text,
// which the Hough transform otherwise picks up as short line segments.
func BlackOptions() Options {
	red := RedOptions()
	return Options{
		Pointer:       PointerBlack,
		HubRadius:     20,
		OuterAxes:     image.Point{X: 120, Y: 130},
		AdaptiveBlock: 13,
		AdaptiveC:     5,
		Subtract:      &red,
		RhoRes:        0.5,
		ThetaRes:      float32(math.Pi / 720),
		HoughVotes:    5,
		MinLineLen:    42,
		MaxLineGap:    5,
		PivotCutoff:   5,
		MaxAngleDev:   math.Pi / 8,
	}
}

// RedOptions returns the detection options for the coarse (red) hand.
func RedOptions() Options {
	return Options{
		Pointer:       PointerRed,
		HubRadius:     20,
		OuterRadius:   88,
		AdaptiveBlock: 13,
		AdaptiveC:     5,
		HueHalfWidth:  10,
		SatMin:        80,
		RhoRes:        0.5,
		ThetaRes:      float32(math.Pi / 720),
		HoughVotes:    5,
		MinLineLen:    10,
		MaxLineGap:    2,
		PivotCutoff:   5,
		MaxAngleDev:   math.Pi / 8,
	}
}

// Result holds one pointer's per-frame detection output. Seg and Skel are
// populated only when keepImages is set and must then be closed by the
// caller.
type Result struct {
	Pointer    Pointer
	Theta      float64 // pivot-relative pointer angle, [0, 2π)
	OK         bool    // false when no usable lines were found this frame
	Segments   []Segment
	Iterations int // thinning iterations consumed, diagnostic only
	Seg        gocv.Mat
	Skel       gocv.Mat

	retained bool
}

// Detect runs the full chain for one pointer on a canonically oriented
// frame. Finding no lines is not an error; the Result simply reports OK
// false and the pointer's history is left untouched for this cycle.
func Detect(frame gocv.Mat, pivot image.Point, o Options, keepImages bool) Result {
	seg := SegmentPointer(frame, pivot, o)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: 3, Y: 3})
	defer kernel.Close()
	opened := gocv.NewMat()
	defer opened.Close()
	gocv.MorphologyEx(seg, &opened, gocv.MorphOpen, kernel)

	skel, iterations := Skeletonize(opened)

	pivotF := geometry.Point2D{X: float64(pivot.X), Y: float64(pivot.Y)}
	segments := FilterSegments(ExtractSegments(skel, o), pivotF, o)
	theta, ok := SummarizeAngle(segments, pivotF)

	r := Result{
		Pointer:    o.Pointer,
		Theta:      theta,
		OK:         ok,
		Segments:   segments,
		Iterations: iterations,
	}
	if keepImages {
		r.Seg = seg
		r.Skel = skel
		r.retained = true
	} else {
		seg.Close()
		skel.Close()
	}
	return r
}

// Close releases the retained debug images, if any.
func (r *Result) Close() {
	if r.retained {
		r.Seg.Close()
		r.Skel.Close()
		r.retained = false
	}
}
