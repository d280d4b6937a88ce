package pricing

import "github.com/piwi3910/laserquote/internal/model"

// PlateRow is one nesting row's contribution to the material margin
// suggestion: the plate area in m2 weighted by how many sheets are cut.
type PlateRow struct {
	AreaM2 float64
	Sheets int
}

// CutRow is one part row's contribution to the cutting margin suggestion:
// the per-unit cut length in mm weighted by total length cut.
type CutRow struct {
	LengthMM float64
	Quantity int
}

// SuggestMaterialMargin computes the sheet-count-weighted average of the
// material margin curve over a job's plates. Zero or negative areas clamp
// to the curve maximum. Returns 0 when no plates carry weight.
func SuggestMaterialMargin(curve model.MarginCurve, rows []PlateRow) float64 {
	var weighted, weight float64
	for _, r := range rows {
		if r.Sheets <= 0 {
			continue
		}
		w := float64(r.Sheets)
		weighted += curve.MarginAt(r.AreaM2) * w
		weight += w
	}
	if weight == 0 {
		return 0
	}
	return weighted / weight
}

// SuggestCuttingMargin computes the length-weighted average of the cutting
// margin curve over a job's part rows. Each row weighs in by the total
// length it cuts (unit length times quantity).
func SuggestCuttingMargin(curve model.MarginCurve, rows []CutRow) float64 {
	var weighted, weight float64
	for _, r := range rows {
		w := r.LengthMM * float64(r.Quantity)
		if w <= 0 {
			continue
		}
		weighted += curve.MarginAt(r.LengthMM) * w
		weight += w
	}
	if weight == 0 {
		return 0
	}
	return weighted / weight
}
