package engine

import (
	"fmt"

	"github.com/piwi3910/laserquote/internal/model"
)

// Reconcile rescales every part's unit cost proportionally so the batch
// grand total matches a negotiated target. Per-unit bending and additional
// charges are preserved; only the unit cost absorbs the adjustment, floored
// at zero. When flooring fires the achieved total can stay above the target,
// which is recorded as a warning. Running it twice with the same target is a
// no-op.
func Reconcile(res *model.BatchResult, targetTotal float64) error {
	if targetTotal <= 0 {
		return fmt.Errorf("target total must be positive, got %.2f", targetTotal)
	}
	current := res.RecomputeGrandTotal()
	if current <= 0 {
		return fmt.Errorf("cannot reconcile a batch with grand total %.2f", current)
	}

	scale := targetTotal / current
	floored := false
	for i := range res.Parts {
		p := &res.Parts[i]
		if p.Quantity <= 0 {
			continue
		}
		unit := p.UnitTotal()*scale - p.BendingPerUnit - p.AdditionalPerUnit
		if unit < 0 {
			unit = 0
			floored = true
		}
		p.UnitCost = unit
	}

	achieved := res.RecomputeGrandTotal()
	if floored {
		res.Warn(fmt.Sprintf("reconciliation floored some unit costs at 0; achieved %.2f against target %.2f",
			achieved, targetTotal))
	}
	return nil
}
