package pricing

// CostInputs is everything the base cost formula needs for one part.
// Rate lookups that defaulted to 0 on a price-list miss flow through
// unchanged; the resulting zero cost component is the caller's warning to
// surface, not ours to special-case.
type CostInputs struct {
	AdjustedWeightKG float64
	PricePerKG       float64
	CutLengthM       float64
	RatePerM         float64
	ContourCount     float64
	RatePerContour   float64
	MarkingLengthM   float64
	RatePerMarking   float64
	DefilmLengthM    float64
	RatePerDefilm    float64
}

// CostBreakdown is the per-unit cost of one part split by component.
type CostBreakdown struct {
	MaterialCost float64
	CuttingCost  float64
	ContourCost  float64
	MarkingCost  float64
	DefilmCost   float64
	Total        float64
}

// UnitCost computes the margin-free unit cost of a part.
func UnitCost(in CostInputs) CostBreakdown {
	b := CostBreakdown{
		MaterialCost: in.AdjustedWeightKG * in.PricePerKG,
		CuttingCost:  in.CutLengthM * in.RatePerM,
		ContourCost:  in.ContourCount * in.RatePerContour,
		MarkingCost:  in.MarkingLengthM * in.RatePerMarking,
		DefilmCost:   in.DefilmLengthM * in.RatePerDefilm,
	}
	b.Total = b.MaterialCost + b.CuttingCost + b.ContourCost + b.MarkingCost + b.DefilmCost
	return b
}
