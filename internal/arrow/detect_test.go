package arrow

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocv.io/x/gocv"
)

// dialFrame returns a plain gray dial face.
func dialFrame() gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(200, 200, 200, 0),
		480, 640, gocv.MatTypeCV8UC3)
}

func TestDetectBlackHand(t *testing.T) {
	frame := dialFrame()
	defer frame.Close()

	pivot := image.Point{X: 320, Y: 240}
	black := color.RGBA{A: 255}
	gocv.Line(&frame,
		image.Point{X: pivot.X + 22, Y: pivot.Y},
		image.Point{X: pivot.X + 115, Y: pivot.Y},
		black, 5)

	r := Detect(frame, pivot, BlackOptions(), true)
	defer r.Close()

	require.True(t, r.OK, "expected a sample for a clearly drawn pointer")
	require.Greater(t, r.Iterations, 0)
	require.NotEmpty(t, r.Segments)

	// Pointer extends toward +x: radial convention reports π/2.
	assert.InDelta(t, math.Pi/2, r.Theta, 0.15)

	included := 0
	for _, s := range r.Segments {
		if s.Included {
			included++
		}
	}
	assert.Greater(t, included, 0)
}

func TestDetectRedHand(t *testing.T) {
	frame := dialFrame()
	defer frame.Close()

	pivot := image.Point{X: 320, Y: 240}
	red := color.RGBA{R: 255, A: 255}
	gocv.Line(&frame,
		image.Point{X: pivot.X, Y: pivot.Y + 22},
		image.Point{X: pivot.X, Y: pivot.Y + 80},
		red, 4)

	r := Detect(frame, pivot, RedOptions(), false)

	require.True(t, r.OK)
	// Pointer extends toward +y: radial convention reports π/2 + π/2 = π.
	assert.InDelta(t, math.Pi, r.Theta, 0.15)
}

func TestDetectEmptyFrameYieldsNoSample(t *testing.T) {
	frame := dialFrame()
	defer frame.Close()

	r := Detect(frame, image.Point{X: 320, Y: 240}, BlackOptions(), false)
	assert.False(t, r.OK, "a frame without a pointer yields no sample, not an error")
	assert.Empty(t, r.Segments)
}
