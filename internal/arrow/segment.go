package arrow

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// SegmentPointer produces a binary mask of pixels believed to belong to the
// configured pointer, restricted to the annular region around the pivot.
// An empty mask is a valid (if uninformative) result; there is no error
// path. The strategy is selected by the options: a hue/saturation gate for
// the coarse hand, adaptive thresholding with cross-talk subtraction for
// the fine hand.
func SegmentPointer(frame gocv.Mat, pivot image.Point, o Options) gocv.Mat {
	if o.HueHalfWidth > 0 {
		return segmentHueGated(frame, pivot, o)
	}
	return segmentAdaptive(frame, pivot, o)
}

// segmentAdaptive isolates the fine hand: adaptive local thresholding picks
// dark pointer pixels off the bright dial face, then the coarse hand's own
// segmentation (opened to drop specks, dilated to cover its shadow) is
// subtracted so the coarse hand's body is not mistaken for the fine hand
// where the two overlap.
func segmentAdaptive(frame gocv.Mat, pivot image.Point, o Options) gocv.Mat {
	region := regionMask(frame.Rows(), frame.Cols(), pivot, o)
	defer region.Close()

	roi := gocv.NewMat()
	defer roi.Close()
	gocv.BitwiseAndWithMask(frame, frame, &roi, region)

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(roi, &gray, gocv.ColorBGRToGray)

	thres := gocv.NewMat()
	defer thres.Close()
	gocv.AdaptiveThreshold(gray, &thres, 255, gocv.AdaptiveThresholdGaussian,
		gocv.ThresholdBinaryInv, o.AdaptiveBlock, o.AdaptiveC)

	if o.Subtract != nil {
		other := SegmentPointer(frame, pivot, *o.Subtract)
		defer other.Close()

		kernel := gocv.GetStructuringElement(gocv.MorphCross, image.Point{X: 3, Y: 3})
		defer kernel.Close()
		gocv.MorphologyExWithParams(other, &other, gocv.MorphOpen, kernel, 1, gocv.BorderConstant)
		gocv.MorphologyExWithParams(other, &other, gocv.MorphDilate, kernel, 2, gocv.BorderConstant)

		gocv.Subtract(thres, other, &thres)
	}

	seg := gocv.NewMat()
	gocv.BitwiseAnd(thres, region, &seg)
	return seg
}

// segmentHueGated isolates the coarse hand. Adaptive thresholding first
// drops the dial face, then the surviving color pixels are gated to a hue
// band around red, wrapping across the 0/179 hue boundary, with a minimum
// saturation that also rejects the masked-out black background.
func segmentHueGated(frame gocv.Mat, pivot image.Point, o Options) gocv.Mat {
	region := regionMask(frame.Rows(), frame.Cols(), pivot, o)
	defer region.Close()

	roi := gocv.NewMat()
	defer roi.Close()
	gocv.BitwiseAndWithMask(frame, frame, &roi, region)

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(roi, &gray, gocv.ColorBGRToGray)

	thres := gocv.NewMat()
	defer thres.Close()
	gocv.AdaptiveThreshold(gray, &thres, 255, gocv.AdaptiveThresholdGaussian,
		gocv.ThresholdBinaryInv, o.AdaptiveBlock, o.AdaptiveC)

	colored := gocv.NewMat()
	defer colored.Close()
	gocv.BitwiseAndWithMask(roi, roi, &colored, thres)

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(colored, &hsv, gocv.ColorBGRToHSV)

	low := gocv.NewMat()
	defer low.Close()
	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(0, o.SatMin, 1, 0),
		gocv.NewScalar(o.HueHalfWidth, 255, 255, 0),
		&low)

	high := gocv.NewMat()
	defer high.Close()
	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(179-o.HueHalfWidth, o.SatMin, 1, 0),
		gocv.NewScalar(179, 255, 255, 0),
		&high)

	band := gocv.NewMat()
	defer band.Close()
	gocv.BitwiseOr(low, high, &band)

	seg := gocv.NewMat()
	gocv.BitwiseAnd(band, region, &seg)
	return seg
}

// regionMask builds the annular region of interest for one pointer: the
// outer circle (or ellipse) around the pivot minus the hub exclusion disk,
// which covers glare and joint artifacts at the pointer mount.
func regionMask(rows, cols int, pivot image.Point, o Options) gocv.Mat {
	mask := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8U)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	if o.OuterAxes.X > 0 && o.OuterAxes.Y > 0 {
		gocv.Ellipse(&mask, pivot, o.OuterAxes, 0, 0, 360, white, -1)
	} else {
		gocv.Circle(&mask, pivot, o.OuterRadius, white, -1)
	}
	gocv.Circle(&mask, pivot, o.HubRadius, color.RGBA{}, -1)
	return mask
}
