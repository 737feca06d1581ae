package arrow

import (
	"math"

	"gauge-cam/pkg/angles"
	"gauge-cam/pkg/geometry"

	"gocv.io/x/gocv"
)

// Segment is a candidate line segment from the Hough transform, carrying
// the verdict assigned by FilterSegments.
type Segment struct {
	P1, P2   geometry.PointInt
	Included bool
}

// Length returns the segment's Euclidean length.
func (s Segment) Length() float64 {
	return s.P1.ToFloat().Distance(s.P2.ToFloat())
}

// lineAngle returns the radial-convention orientation of the direction from
// pt1 to pt2. The detected chord runs along the pointer's midline, which is
// perpendicular to the radial direction near the tip, hence the 90° offset.
func lineAngle(pt1, pt2 geometry.Point2D) float64 {
	return math.Atan2(pt2.Y-pt1.Y, pt2.X-pt1.X) + math.Pi/2
}

// ExtractSegments runs the probabilistic Hough transform over a skeleton
// image and returns the candidate segments, none yet included.
func ExtractSegments(skel gocv.Mat, o Options) []Segment {
	lines := gocv.NewMat()
	defer lines.Close()
	gocv.HoughLinesPWithParams(skel, &lines, o.RhoRes, o.ThetaRes,
		o.HoughVotes, o.MinLineLen, o.MaxLineGap)

	segments := make([]Segment, 0, lines.Rows())
	for i := 0; i < lines.Rows(); i++ {
		v := lines.GetVeciAt(i, 0)
		segments = append(segments, Segment{
			P1: geometry.PointInt{X: int(v[0]), Y: int(v[1])},
			P2: geometry.PointInt{X: int(v[2]), Y: int(v[3])},
		})
	}
	return segments
}

// FilterSegments marks which candidate segments belong to the pointer.
//
// A segment is included when its supporting line passes within PivotCutoff
// of the pivot, regardless of the segment's length, and its orientation
// deviates from the longest near-pivot segment's orientation by less than
// MaxAngleDev. Pivot distance rejects unrelated detections such as dial
// markings; the angular clustering rejects near-pivot noise crossing the
// pointer, such as the other hand's stub. A zero-length segment defines no
// line and is never included.
func FilterSegments(segments []Segment, pivot geometry.Point2D, o Options) []Segment {
	for i := range segments {
		d, ok := geometry.PointToLineDistance(pivot, segments[i].P1.ToFloat(), segments[i].P2.ToFloat())
		segments[i].Included = ok && d < o.PivotCutoff
	}

	// Orientation reference: the longest of the near-pivot segments.
	longest := -1
	var longestLen float64
	for i, s := range segments {
		if !s.Included {
			continue
		}
		if l := s.Length(); longest < 0 || l > longestLen {
			longest, longestLen = i, l
		}
	}
	if longest < 0 {
		return segments
	}

	ref := lineAngle(segments[longest].P1.ToFloat(), segments[longest].P2.ToFloat())
	for i := range segments {
		if !segments[i].Included {
			continue
		}
		a := lineAngle(segments[i].P1.ToFloat(), segments[i].P2.ToFloat())
		if math.Abs(angles.Diff(ref, a)) >= o.MaxAngleDev {
			segments[i].Included = false
		}
	}
	return segments
}

// SummarizeAngle pools the pivot-relative angles of every included
// segment's endpoints and returns their circular mean in [0, 2π). The
// second return is false when no segment survived filtering — not an
// error, the pointer may simply be occluded this frame.
func SummarizeAngle(segments []Segment, pivot geometry.Point2D) (float64, bool) {
	var thetas []float64
	for _, s := range segments {
		if !s.Included {
			continue
		}
		thetas = append(thetas,
			lineAngle(pivot, s.P1.ToFloat()),
			lineAngle(pivot, s.P2.ToFloat()))
	}
	if len(thetas) == 0 {
		return 0, false
	}
	return angles.Mean(thetas), true
}
