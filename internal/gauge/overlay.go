package gauge

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"gauge-cam/internal/arrow"
)

var (
	overlayGreen    = color.RGBA{G: 200, A: 255}
	overlayIncluded = color.RGBA{R: 255, A: 255}
	overlayExcluded = color.RGBA{B: 255, A: 255}
	overlayText     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// renderOverlay draws the region geometry, candidate segments and smoothed
// pointer rays onto a copy of the oriented frame. Window composition and
// recording are the caller's concern; this only produces the image.
func renderOverlay(oriented gocv.Mat, pivot image.Point, cfg Config, m *Measurement, blackSegs, redSegs []arrow.Segment) gocv.Mat {
	img := oriented.Clone()

	gocv.Circle(&img, pivot, cfg.DialOuterRadius, overlayGreen, 2)

	hub := cfg.Black.HubRadius
	gocv.Line(&img, image.Pt(pivot.X-hub, pivot.Y-hub), image.Pt(pivot.X+hub, pivot.Y+hub), overlayGreen, 1)
	gocv.Line(&img, image.Pt(pivot.X-hub, pivot.Y+hub), image.Pt(pivot.X+hub, pivot.Y-hub), overlayGreen, 1)
	gocv.Circle(&img, pivot, hub, overlayGreen, 2)

	if cfg.Black.OuterAxes.X > 0 && cfg.Black.OuterAxes.Y > 0 {
		gocv.Ellipse(&img, pivot, cfg.Black.OuterAxes, 0, 0, 360, overlayGreen, 2)
	}
	gocv.Circle(&img, pivot, cfg.Red.OuterRadius, overlayGreen, 2)

	drawSegments(&img, blackSegs)
	drawSegments(&img, redSegs)

	if m != nil {
		drawRay(&img, pivot, m.ThetaBlack, cfg.BlackRayLength)
		drawRay(&img, pivot, m.ThetaRed, cfg.RedRayLength)
		gocv.PutText(&img, fmt.Sprintf("%6.3f mm", m.MMFinal),
			image.Pt(20, 30), gocv.FontHersheySimplex, 0.8, overlayText, 2)
	}

	return img
}

func drawSegments(img *gocv.Mat, segs []arrow.Segment) {
	for _, s := range segs {
		c := overlayExcluded
		if s.Included {
			c = overlayIncluded
		}
		gocv.Line(img, image.Pt(s.P1.X, s.P1.Y), image.Pt(s.P2.X, s.P2.Y), c, 3)
	}
}

// drawRay draws a smoothed pointer direction from the pivot. Under the
// radial angle convention the on-screen direction is (sin θ, −cos θ).
func drawRay(img *gocv.Mat, pivot image.Point, theta float64, length int) {
	end := image.Pt(
		pivot.X+int(math.Round(float64(length)*math.Sin(theta))),
		pivot.Y-int(math.Round(float64(length)*math.Cos(theta))),
	)
	gocv.Line(img, pivot, end, overlayGreen, 2)
}
