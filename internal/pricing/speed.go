// Package pricing implements the cost and margin rules of the quote engine:
// the base cost formula, the thickness/time boost curves and the advisory
// geometry margin curves.
package pricing

import "sort"

// point is one anchor of a piecewise-linear curve.
type point struct {
	x, y float64
}

// speedAnchors maps sheet thickness (mm) to cutting speed (m/min).
var speedAnchors = []point{
	{1, 18},
	{1.5, 18},
	{2, 14},
	{3, 4},
	{5, 3.5},
	{6, 3},
	{8, 2.7},
	{10, 2.1},
	{12, 2.1},
	{15, 2.1},
}

// Thresholds of the time-boost ramp, interpolated over thickness [1,15] mm.
const (
	minThicknessMM = 1.0
	maxThicknessMM = 15.0

	tMinAtThin  = 1.0  // minutes at 1 mm
	tMinAtThick = 5.0  // minutes at 15 mm
	tNeutralAtThin  = 45.0
	tNeutralAtThick = 90.0
)

// interpolate evaluates a piecewise-linear curve, clamping outside the
// anchor range instead of extrapolating.
func interpolate(x float64, pts []point) float64 {
	if len(pts) == 0 {
		return 0
	}
	sorted := make([]point, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].x < sorted[j].x })

	if x <= sorted[0].x {
		return sorted[0].y
	}
	if x >= sorted[len(sorted)-1].x {
		return sorted[len(sorted)-1].y
	}
	for i := 1; i < len(sorted); i++ {
		p0, p1 := sorted[i-1], sorted[i]
		if x <= p1.x {
			if p1.x == p0.x {
				return p0.y
			}
			t := (x - p0.x) / (p1.x - p0.x)
			return p0.y + t*(p1.y-p0.y)
		}
	}
	return sorted[len(sorted)-1].y
}

// SpeedMPM returns the cutting speed in m/min for a thickness, clamped to
// the anchor range.
func SpeedMPM(thicknessMM float64) float64 {
	return interpolate(thicknessMM, speedAnchors)
}

// TimeThresholds returns (tMin, tNeutral) in minutes for a thickness.
// Thickness clamps to [1,15] mm; the thresholds ramp 1->5 and 45->90 min.
func TimeThresholds(thicknessMM float64) (tMin, tNeutral float64) {
	thk := clamp(thicknessMM, minThicknessMM, maxThicknessMM)
	frac := (thk - minThicknessMM) / (maxThicknessMM - minThicknessMM)
	tMin = tMinAtThin + (tMinAtThick-tMinAtThin)*frac
	tNeutral = tNeutralAtThin + (tNeutralAtThick-tNeutralAtThin)*frac
	return tMin, tNeutral
}

// EffectiveMinutes estimates the machine time of a job: the cut length
// divided by the thickness speed, never less than the declared cut time.
// When either operand is zero the other stands alone.
func EffectiveMinutes(thicknessMM, totalCutLengthM, cutTimeHours float64) float64 {
	var fromLength float64
	if speed := SpeedMPM(thicknessMM); speed > 0 && totalCutLengthM > 0 {
		fromLength = totalCutLengthM / speed
	}
	fromCell := cutTimeHours * 60
	if fromLength <= 0 {
		return fromCell
	}
	if fromCell <= 0 {
		return fromLength
	}
	if fromLength > fromCell {
		return fromLength
	}
	return fromCell
}

// BoostFactor maps effective minutes to a multiplier in [1, maxBoost]:
// maxBoost at or below tMin, 1.0 at or beyond tNeutral, linear between.
// Short jobs carry the machine setup overhead, hence the boost.
func BoostFactor(thicknessMM, effectiveMinutes, maxBoost float64) float64 {
	tMin, tNeutral := TimeThresholds(thicknessMM)
	if effectiveMinutes <= tMin {
		return maxBoost
	}
	if effectiveMinutes >= tNeutral {
		return 1.0
	}
	alpha := (tNeutral - effectiveMinutes) / (tNeutral - tMin)
	return 1.0 + (maxBoost-1.0)*alpha
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
