package model

// AppConfig holds the operator-editable quoting parameters applied to every
// analysis run.
type AppConfig struct {
	// Fixed costs spread across the batch (PLN)
	OpCostPerSheet         float64 `json:"op_cost_per_sheet"`
	TechCostPerOrder       float64 `json:"tech_cost_per_order"`
	AdditionalCostPerOrder float64 `json:"additional_cost_per_order"`

	// Hourly machine rates per assist gas (PLN/h)
	OxygenRatePerHour   float64 `json:"oxygen_rate_per_hour"`
	NitrogenRatePerHour float64 `json:"nitrogen_rate_per_hour"`

	// Pricing policy: "boost" (time-dependent multiplier) or "floor"
	// (flat +7% on material only)
	Policy   string  `json:"policy"`
	MaxBoost float64 `json:"max_boost"`

	// Advisory margin curves
	MaterialMarginCurve MarginCurve `json:"material_margin_curve"`
	CuttingMarginCurve  MarginCurve `json:"cutting_margin_curve"`

	// Price list locations
	MaterialPricesPath string `json:"material_prices_path"`
	CuttingPricesPath  string `json:"cutting_prices_path"`
}

// DefaultAppConfig mirrors the defaults the quoting team has always used.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		OpCostPerSheet:         40.0,
		TechCostPerOrder:       50.0,
		AdditionalCostPerOrder: 0.0,
		OxygenRatePerHour:      300.0,
		NitrogenRatePerHour:    350.0,
		Policy:                 "boost",
		MaxBoost:               3.5,
		MaterialMarginCurve:    DefaultMaterialMarginCurve(),
		CuttingMarginCurve:     DefaultCuttingMarginCurve(),
		MaterialPricesPath:     "materials prices.xlsx",
		CuttingPricesPath:      "cutting prices.xlsx",
	}
}
