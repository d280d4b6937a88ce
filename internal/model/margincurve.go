package model

// MarginCurve is a linear ramp from MaxMarginPct at MinX down to zero at
// MaxX. Values outside [MinX, MaxX] clamp to the nearest endpoint, so the
// margin is monotonically non-increasing and bounded to [0, MaxMarginPct].
type MarginCurve struct {
	MinX         float64 `json:"min_x"`
	MaxX         float64 `json:"max_x"`
	MaxMarginPct float64 `json:"max_margin_pct"`
}

// MarginAt returns the suggested margin percentage for x.
func (c MarginCurve) MarginAt(x float64) float64 {
	if x <= c.MinX {
		return c.MaxMarginPct
	}
	if x >= c.MaxX {
		return 0
	}
	span := c.MaxX - c.MinX
	if span <= 0 {
		return 0
	}
	return c.MaxMarginPct * (c.MaxX - x) / span
}

// DefaultMaterialMarginCurve suggests 250% at 0 m2 of plate area tapering to
// 0% at 1 m2 and above.
func DefaultMaterialMarginCurve() MarginCurve {
	return MarginCurve{MinX: 0, MaxX: 1.0, MaxMarginPct: 250}
}

// DefaultCuttingMarginCurve suggests 200% at 0 mm of cut length tapering to
// 0% at 5000 mm and above.
func DefaultCuttingMarginCurve() MarginCurve {
	return MarginCurve{MinX: 0, MaxX: 5000, MaxMarginPct: 200}
}
