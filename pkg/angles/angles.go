// Package angles provides circular statistics for pointer-angle estimation.
// Angles are radians; results are normalized into [0, 2π) so they can feed
// linear calibration formulas without wraparound surprises.
package angles

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TwoPi is one full turn in radians.
const TwoPi = 2 * math.Pi

// Normalize maps theta into [0, 2π).
func Normalize(theta float64) float64 {
	theta = math.Mod(theta, TwoPi)
	if theta < 0 {
		theta += TwoPi
	}
	return theta
}

// Mean returns the circular mean of thetas, normalized into [0, 2π).
// An arithmetic mean of raw radians would average 0 and 2π−ε to π; the
// circular mean averages their unit vectors instead.
func Mean(thetas []float64) float64 {
	return Normalize(stat.CircularMean(thetas, nil))
}

// Diff returns the signed minimal circular difference a−b in (−π, π].
// The sign exactly at a difference of π follows the branch cut of the
// two-argument arctangent.
func Diff(a, b float64) float64 {
	d := a - b
	return math.Atan2(math.Sin(d), math.Cos(d))
}
