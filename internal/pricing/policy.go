package pricing

import (
	"fmt"

	"github.com/piwi3910/laserquote/internal/model"
)

// The material multiplier never drops below +7% over the purchase price,
// whatever the boost curve says.
const materialFloor = 1.07

// Policy converts a job's geometry and timing into the multiplicative
// factors applied to its base material price and cutting rate. Exactly one
// policy is selected per batch through configuration.
type Policy interface {
	Name() string
	Factors(job model.Job) (materialFactor, cuttingFactor float64)
}

// BoostPolicy is the canonical rule: a time-dependent boost multiplier on
// both components, with the 7% floor on material.
type BoostPolicy struct {
	MaxBoost float64
}

func (p BoostPolicy) Name() string { return "boost" }

func (p BoostPolicy) Factors(job model.Job) (float64, float64) {
	minutes := EffectiveMinutes(job.ThicknessMM, job.TotalCutLengthM, job.CutTimeHours)
	boost := BoostFactor(job.ThicknessMM, minutes, p.MaxBoost)

	material := boost
	if material < materialFloor {
		material = materialFloor
	}
	return material, boost
}

// FloorPolicy is the oldest rule still in use for legacy quotes: a flat +7%
// on material, cutting at the list rate.
type FloorPolicy struct{}

func (FloorPolicy) Name() string { return "floor" }

func (FloorPolicy) Factors(model.Job) (float64, float64) {
	return materialFloor, 1.0
}

// ForName resolves a configured policy name.
func ForName(name string, maxBoost float64) (Policy, error) {
	switch name {
	case "", "boost":
		if maxBoost <= 1 {
			maxBoost = 3.5
		}
		return BoostPolicy{MaxBoost: maxBoost}, nil
	case "floor":
		return FloorPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown pricing policy %q", name)
	}
}
