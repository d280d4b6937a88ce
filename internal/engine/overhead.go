package engine

import "github.com/piwi3910/laserquote/internal/model"

// AllocateOverhead spreads the batch-wide overhead evenly over every part
// unit. The operational share scales with the total sheet count; the fixed
// share (technology preparation plus any additional order cost) is charged
// once per order. Returns the two per-unit shares so callers can report
// them. A batch with zero total quantity takes no overhead.
func AllocateOverhead(res *model.BatchResult, cfg model.AppConfig) (perUnitOperational, perUnitFixed float64) {
	qty := res.Totals.TotalPartQuantity
	if qty <= 0 {
		return 0, 0
	}

	perUnitOperational = float64(res.Totals.TotalSheets) * cfg.OpCostPerSheet / float64(qty)
	perUnitFixed = (cfg.TechCostPerOrder + cfg.AdditionalCostPerOrder) / float64(qty)
	perUnit := perUnitOperational + perUnitFixed

	for i := range res.Parts {
		p := &res.Parts[i]
		p.BaseUnitCost = model.Round2(p.BaseUnitCost + perUnit)
		p.UnitCost = model.Round2(p.UnitCost + perUnit)
	}
	return perUnitOperational, perUnitFixed
}
