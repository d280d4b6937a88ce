package model

import (
	"math"

	"github.com/google/uuid"
)

// Gas identifies the assist gas used for a cutting job.
type Gas string

const (
	GasOxygen   Gas = "O"
	GasNitrogen Gas = "N"
	GasUnknown  Gas = "" // unsupported gas name; fatal for the job
)

func (g Gas) String() string {
	switch g {
	case GasOxygen:
		return "Oxygen"
	case GasNitrogen:
		return "Nitrogen"
	default:
		return "Unknown"
	}
}

// Job describes one input workbook: a single material/thickness/gas
// combination cut from one or more sheets. Immutable once extracted.
type Job struct {
	File            string  `json:"file"`
	GroupID         int     `json:"group_id"` // increments per processed file
	Material        string  `json:"material"` // normalized uppercase code
	ThicknessMM     float64 `json:"thickness_mm"`
	Gas             Gas     `json:"gas"`
	CutTimeHours    float64 `json:"cut_time_hours"`
	TotalCutLengthM float64 `json:"total_cut_length_m"`
	UtilizationRate float64 `json:"utilization_rate"` // fraction in (0,1]; out-of-range is a warning
	SheetCount      int     `json:"sheet_count"`

	// Advisory margins from the geometry curves. Surfaced for operator
	// approval, never applied to costs automatically.
	SuggestedMaterialMarginPct float64 `json:"suggested_material_margin_pct"`
	SuggestedCuttingMarginPct  float64 `json:"suggested_cutting_margin_pct"`
}

// PartLineItem is one priced part row. Created during extraction; only the
// overhead allocator and reconciliation mutate the cost fields afterwards.
type PartLineItem struct {
	ID          int     `json:"id"`       // 1-based within the job
	GroupID     int     `json:"group_id"` // job the part belongs to
	Name        string  `json:"name"`
	Material    string  `json:"material"`
	ThicknessMM float64 `json:"thickness_mm"`
	Quantity    int     `json:"quantity"`

	RawWeightKG      float64 `json:"raw_weight_kg"`
	AdjustedWeightKG float64 `json:"adjusted_weight_kg"` // raw weight / utilization
	CutLengthM       float64 `json:"cut_length_m"`
	ContourCount     float64 `json:"contour_count"`
	MarkingLengthM   float64 `json:"marking_length_m"`
	DefilmLengthM    float64 `json:"defilm_length_m"`

	BasePricePerKG float64 `json:"base_price_per_kg"` // price-list rate, no margin
	BaseRatePerM   float64 `json:"base_rate_per_m"`

	BaseUnitCost float64 `json:"base_unit_cost"` // margin-free unit cost, post-overhead
	UnitCost     float64 `json:"unit_cost"`      // policy-adjusted unit cost, post-overhead

	BendingPerUnit    float64 `json:"bending_per_unit"`    // operator-editable, default 0
	AdditionalPerUnit float64 `json:"additional_per_unit"` // operator-editable, default 0
}

// UnitTotal is the full per-piece price including bending and additional work.
func (p PartLineItem) UnitTotal() float64 {
	return p.UnitCost + p.BendingPerUnit + p.AdditionalPerUnit
}

// LineTotal is the part's contribution to the batch grand total.
func (p PartLineItem) LineTotal() float64 {
	return p.UnitTotal() * float64(p.Quantity)
}

// BatchTotals aggregates a completed analysis run.
type BatchTotals struct {
	TotalSheets       int     `json:"total_sheets"`
	TotalPartQuantity int     `json:"total_part_quantity"`
	GrandTotal        float64 `json:"grand_total"`
	TotalMaterialCost float64 `json:"total_material_cost"` // at base price-list rates
	OxygenCutHours    float64 `json:"oxygen_cut_hours"`
	NitrogenCutHours  float64 `json:"nitrogen_cut_hours"`
	OxygenCutCost     float64 `json:"oxygen_cut_cost"` // hours x configured hourly rate
	NitrogenCutCost   float64 `json:"nitrogen_cut_cost"`
}

// BatchResult is the engine output: the ordered part list plus aggregates,
// consumed by the report exporters and the history store.
type BatchResult struct {
	ID       string         `json:"id"`
	Folder   string         `json:"folder"`
	Jobs     []Job          `json:"jobs"`
	Parts    []PartLineItem `json:"parts"`
	Totals   BatchTotals    `json:"totals"`
	Warnings []string       `json:"warnings,omitempty"`
}

func NewBatchResult(folder string) *BatchResult {
	return &BatchResult{
		ID:     uuid.New().String(),
		Folder: folder,
	}
}

// Warn records a non-fatal condition the operator must review.
func (r *BatchResult) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// RecomputeGrandTotal re-sums all line totals into Totals.GrandTotal.
// Called after every stage that mutates unit costs.
func (r *BatchResult) RecomputeGrandTotal() float64 {
	var total float64
	for _, p := range r.Parts {
		total += p.LineTotal()
	}
	r.Totals.GrandTotal = total
	return total
}

// Round2 rounds a PLN amount to grosze.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
