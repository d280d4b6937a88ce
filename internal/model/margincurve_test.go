package model

import (
	"math"
	"testing"
)

func TestMaterialMarginCurveDefaults(t *testing.T) {
	c := DefaultMaterialMarginCurve()

	if got := c.MarginAt(0); got != 250 {
		t.Errorf("expected 250%% at zero area, got %.2f", got)
	}
	if got := c.MarginAt(1.0); got != 0 {
		t.Errorf("expected 0%% at 1 m2, got %.2f", got)
	}
	if got := c.MarginAt(3.0); got != 0 {
		t.Errorf("expected 0%% above 1 m2, got %.2f", got)
	}
	if got := c.MarginAt(0.5); math.Abs(got-125) > 1e-9 {
		t.Errorf("expected 125%% at 0.5 m2, got %.2f", got)
	}
}

func TestCuttingMarginCurveDefaults(t *testing.T) {
	c := DefaultCuttingMarginCurve()

	if got := c.MarginAt(0); got != 200 {
		t.Errorf("expected 200%% at zero length, got %.2f", got)
	}
	if got := c.MarginAt(2500); math.Abs(got-100) > 1e-9 {
		t.Errorf("expected 100%% at 2500 mm, got %.2f", got)
	}
	if got := c.MarginAt(5000); got != 0 {
		t.Errorf("expected 0%% at 5000 mm, got %.2f", got)
	}
}

func TestMarginCurveClampsNegativeInput(t *testing.T) {
	c := DefaultMaterialMarginCurve()
	if got := c.MarginAt(-2); got != c.MaxMarginPct {
		t.Errorf("negative input should clamp to max margin, got %.2f", got)
	}
}

func TestMarginCurveMonotonicNonIncreasing(t *testing.T) {
	c := DefaultCuttingMarginCurve()
	prev := math.Inf(1)
	for x := -100.0; x <= 6000; x += 50 {
		got := c.MarginAt(x)
		if got > prev+1e-9 {
			t.Fatalf("margin increased at x=%.0f: %.4f > %.4f", x, got, prev)
		}
		if got < 0 || got > c.MaxMarginPct {
			t.Fatalf("margin out of bounds at x=%.0f: %.4f", x, got)
		}
		prev = got
	}
}

func TestMarginCurveDegenerateSpan(t *testing.T) {
	c := MarginCurve{MinX: 1, MaxX: 1, MaxMarginPct: 100}
	if got := c.MarginAt(0.5); got != 100 {
		t.Errorf("at or below MinX should yield max, got %.2f", got)
	}
	if got := c.MarginAt(1.5); got != 0 {
		t.Errorf("at or above MaxX should yield 0, got %.2f", got)
	}
}
