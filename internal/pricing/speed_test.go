package pricing

import (
	"math"
	"testing"
)

func TestSpeedClampsOutsideRange(t *testing.T) {
	if got := SpeedMPM(0); got != SpeedMPM(1) {
		t.Errorf("SpeedMPM(0) = %v, want boundary %v", got, SpeedMPM(1))
	}
	if got := SpeedMPM(100); got != SpeedMPM(15) {
		t.Errorf("SpeedMPM(100) = %v, want boundary %v", got, SpeedMPM(15))
	}
	if SpeedMPM(1) != 18 || SpeedMPM(15) != 2.1 {
		t.Error("unexpected boundary speeds")
	}
}

func TestSpeedAnchorsExact(t *testing.T) {
	cases := map[float64]float64{
		1: 18, 1.5: 18, 2: 14, 3: 4, 5: 3.5, 6: 3, 8: 2.7, 10: 2.1, 12: 2.1, 15: 2.1,
	}
	for thk, want := range cases {
		if got := SpeedMPM(thk); math.Abs(got-want) > 1e-9 {
			t.Errorf("SpeedMPM(%v) = %v, want %v", thk, got, want)
		}
	}
}

func TestSpeedInterpolatesBetweenAnchors(t *testing.T) {
	// Halfway between (2,14) and (3,4).
	if got := SpeedMPM(2.5); math.Abs(got-9) > 1e-9 {
		t.Errorf("SpeedMPM(2.5) = %v, want 9", got)
	}
}

func TestSpeedMonotonicNonIncreasing(t *testing.T) {
	// Non-increasing over [1,15] including the flat [1,1.5] segment.
	prev := math.Inf(1)
	for thk := 1.0; thk <= 15.0; thk += 0.1 {
		got := SpeedMPM(thk)
		if got > prev+1e-9 {
			t.Fatalf("speed increased at %.1f mm: %v > %v", thk, got, prev)
		}
		prev = got
	}
}

func TestTimeThresholds(t *testing.T) {
	tMin, tNeutral := TimeThresholds(1)
	if tMin != 1 || tNeutral != 45 {
		t.Errorf("thresholds at 1mm = (%v, %v), want (1, 45)", tMin, tNeutral)
	}
	tMin, tNeutral = TimeThresholds(15)
	if tMin != 5 || tNeutral != 90 {
		t.Errorf("thresholds at 15mm = (%v, %v), want (5, 90)", tMin, tNeutral)
	}
	// Thickness clamps, never extrapolates.
	tMin, tNeutral = TimeThresholds(40)
	if tMin != 5 || tNeutral != 90 {
		t.Errorf("thresholds at 40mm = (%v, %v), want clamp to (5, 90)", tMin, tNeutral)
	}
	tMin, tNeutral = TimeThresholds(8)
	if tMin <= 1 || tMin >= 5 || tNeutral <= 45 || tNeutral >= 90 {
		t.Errorf("mid-range thresholds out of band: (%v, %v)", tMin, tNeutral)
	}
}

func TestEffectiveMinutes(t *testing.T) {
	// 312.51 m at 3 mm (4 m/min) = 78.13 min, longer than 1.0 h declared.
	got := EffectiveMinutes(3, 312.51, 1.0)
	if math.Abs(got-312.51/4) > 1e-9 {
		t.Errorf("EffectiveMinutes = %v, want %v", got, 312.51/4)
	}

	// Declared time wins when it is longer.
	got = EffectiveMinutes(3, 10, 2.0)
	if got != 120 {
		t.Errorf("EffectiveMinutes = %v, want 120", got)
	}

	// One-sided when either operand is missing.
	if got := EffectiveMinutes(3, 0, 1.5); got != 90 {
		t.Errorf("length missing: %v, want 90", got)
	}
	if got := EffectiveMinutes(3, 8, 0); math.Abs(got-2) > 1e-9 {
		t.Errorf("time missing: %v, want 2", got)
	}
	if got := EffectiveMinutes(3, 0, 0); got != 0 {
		t.Errorf("both missing: %v, want 0", got)
	}
}

func TestBoostFactorBounds(t *testing.T) {
	const maxBoost = 3.5

	tMin, tNeutral := TimeThresholds(3)
	if got := BoostFactor(3, tMin, maxBoost); got != maxBoost {
		t.Errorf("boost at tMin = %v, want %v", got, maxBoost)
	}
	if got := BoostFactor(3, tMin/2, maxBoost); got != maxBoost {
		t.Errorf("boost below tMin = %v, want %v", got, maxBoost)
	}
	if got := BoostFactor(3, tNeutral, maxBoost); got != 1.0 {
		t.Errorf("boost at tNeutral = %v, want 1.0", got)
	}
	if got := BoostFactor(3, tNeutral*2, maxBoost); got != 1.0 {
		t.Errorf("boost beyond tNeutral = %v, want 1.0", got)
	}

	mid := (tMin + tNeutral) / 2
	if got := BoostFactor(3, mid, maxBoost); math.Abs(got-(1+(maxBoost-1)/2)) > 1e-9 {
		t.Errorf("boost at midpoint = %v", got)
	}
}

func TestBoostFactorMonotonicNonIncreasing(t *testing.T) {
	prev := math.Inf(1)
	for m := 0.0; m <= 120; m += 0.5 {
		got := BoostFactor(5, m, 3.5)
		if got > prev+1e-9 {
			t.Fatalf("boost increased at %v min: %v > %v", m, got, prev)
		}
		if got < 1.0-1e-9 || got > 3.5+1e-9 {
			t.Fatalf("boost out of range at %v min: %v", m, got)
		}
		prev = got
	}
}
