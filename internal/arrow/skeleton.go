package arrow

import (
	"image"

	"gocv.io/x/gocv"
)

// Skeletonize reduces a binary mask to a one-pixel-wide skeleton that
// preserves the mask's topology, via iterative morphological thinning with
// a cross-shaped structuring element. Each iteration erodes the working
// image, dilates the eroded copy back, subtracts that from the pre-erosion
// image, and ORs the difference into the accumulating skeleton; the eroded
// image becomes the next iteration's input. The loop terminates because the
// foreground pixel count shrinks with every erosion.
//
// Edge detection on a wedge-shaped pointer yields edges pointing at neither
// the pivot nor the dial value; the skeleton follows the pointer's midline,
// which does.
//
// Returns the skeleton and the number of iterations consumed. The count is
// diagnostic only and never drives control flow.
func Skeletonize(mask gocv.Mat) (gocv.Mat, int) {
	skeleton := gocv.NewMatWithSize(mask.Rows(), mask.Cols(), gocv.MatTypeCV8U)

	work := mask.Clone()
	defer work.Close()
	eroded := gocv.NewMat()
	defer eroded.Close()

	element := gocv.GetStructuringElement(gocv.MorphCross, image.Point{X: 3, Y: 3})
	defer element.Close()

	iterations := 0
	for gocv.CountNonZero(work) > 0 {
		gocv.Erode(work, &eroded, element)

		dilated := gocv.NewMat()
		gocv.Dilate(eroded, &dilated, element)

		diff := gocv.NewMat()
		gocv.Subtract(work, dilated, &diff)
		dilated.Close()

		gocv.BitwiseOr(skeleton, diff, &skeleton)
		diff.Close()

		eroded.CopyTo(&work)
		iterations++
	}

	return skeleton, iterations
}
