package arrow

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocv.io/x/gocv"
)

func TestRegionMaskAnnulus(t *testing.T) {
	pivot := image.Point{X: 120, Y: 120}
	o := Options{HubRadius: 20, OuterRadius: 88}

	mask := regionMask(240, 240, pivot, o)
	defer mask.Close()

	assert.EqualValues(t, 0, mask.GetUCharAt(120, 120), "hub center excluded")
	assert.EqualValues(t, 0, mask.GetUCharAt(120, 130), "inside hub radius excluded")
	assert.EqualValues(t, 255, mask.GetUCharAt(120, 170), "annulus included")
	assert.EqualValues(t, 0, mask.GetUCharAt(120, 230), "outside outer radius excluded")
}

func TestRegionMaskEllipse(t *testing.T) {
	pivot := image.Point{X: 200, Y: 200}
	o := Options{HubRadius: 20, OuterAxes: image.Point{X: 120, Y: 130}}

	mask := regionMask(400, 400, pivot, o)
	defer mask.Close()

	assert.EqualValues(t, 255, mask.GetUCharAt(200, 310), "inside x semi-axis")
	assert.EqualValues(t, 255, mask.GetUCharAt(322, 200), "inside y semi-axis")
	assert.EqualValues(t, 0, mask.GetUCharAt(200, 328), "outside x semi-axis")
	assert.EqualValues(t, 0, mask.GetUCharAt(200, 200), "hub excluded")
}

func TestSegmentPointerBlankFrame(t *testing.T) {
	// A featureless frame segments to an empty mask; that is a valid
	// result, not an error.
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()
	pivot := image.Point{X: 338, Y: 234}

	for _, o := range []Options{BlackOptions(), RedOptions()} {
		seg := SegmentPointer(frame, pivot, o)
		assert.Equal(t, 0, gocv.CountNonZero(seg), "pointer %s", o.Pointer)
		seg.Close()
	}
}

func TestSegmentPointerRedHand(t *testing.T) {
	// Gray dial face with a saturated red stroke radiating from the
	// pivot: the hue-gated segmentation must pick up the stroke inside
	// the annulus and nothing else.
	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(200, 200, 200, 0),
		480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	pivot := image.Point{X: 320, Y: 240}
	red := color.RGBA{R: 255, G: 0, B: 0, A: 255}
	gocv.Line(&frame, pivot, image.Point{X: pivot.X + 80, Y: pivot.Y}, red, 4)

	seg := SegmentPointer(frame, pivot, RedOptions())
	defer seg.Close()

	require.Greater(t, gocv.CountNonZero(seg), 0)

	// All segmented pixels lie on the stroke, between hub and outer radius.
	rows, cols := seg.Rows(), seg.Cols()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if seg.GetUCharAt(y, x) == 0 {
				continue
			}
			dx, dy := x-pivot.X, y-pivot.Y
			r2 := dx*dx + dy*dy
			assert.True(t, r2 >= 20*20 && r2 <= 88*88,
				"segmented pixel (%d,%d) outside annulus", x, y)
			assert.True(t, dx > 0 && dy >= -4 && dy <= 4,
				"segmented pixel (%d,%d) off the stroke", x, y)
		}
	}
}
