package pricing

import (
	"math"
	"testing"
)

func TestUnitCostReferenceJob(t *testing.T) {
	// 2.0 kg at 0.8 utilization -> 2.5 kg adjusted; 10 PLN/kg and
	// 5 m at 20 PLN/m.
	in := CostInputs{
		AdjustedWeightKG: 2.0 / 0.8,
		PricePerKG:       10,
		CutLengthM:       5,
		RatePerM:         20,
	}
	b := UnitCost(in)
	if math.Abs(b.MaterialCost-25.0) > 1e-9 {
		t.Errorf("material cost = %v, want 25.0", b.MaterialCost)
	}
	if math.Abs(b.CuttingCost-100.0) > 1e-9 {
		t.Errorf("cutting cost = %v, want 100.0", b.CuttingCost)
	}
	if math.Abs(b.Total-125.0) > 1e-9 {
		t.Errorf("total = %v, want 125.0", b.Total)
	}
}

func TestUnitCostAllComponents(t *testing.T) {
	in := CostInputs{
		AdjustedWeightKG: 2,
		PricePerKG:       3,
		CutLengthM:       4,
		RatePerM:         5,
		ContourCount:     6,
		RatePerContour:   0.5,
		MarkingLengthM:   2,
		RatePerMarking:   0.25,
		DefilmLengthM:    8,
		RatePerDefilm:    0.125,
	}
	b := UnitCost(in)
	want := 2*3.0 + 4*5.0 + 6*0.5 + 2*0.25 + 8*0.125
	if math.Abs(b.Total-want) > 1e-9 {
		t.Errorf("total = %v, want %v", b.Total, want)
	}
}

func TestUnitCostZeroRatesFromPriceMiss(t *testing.T) {
	// A price-list miss substitutes 0 rates; the formula propagates the
	// zeros without special-casing.
	in := CostInputs{AdjustedWeightKG: 2.5, CutLengthM: 5}
	b := UnitCost(in)
	if b.MaterialCost != 0 || b.CuttingCost != 0 || b.Total != 0 {
		t.Errorf("expected zero breakdown, got %+v", b)
	}
}
