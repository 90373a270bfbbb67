package calculator

import (
	"math"
	"testing"
)

func TestCalculateSMA(t *testing.T) {
	got, err := CalculateSMA([]float64{1, 2, 3, 4, 5, 6}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5 {
		t.Errorf("expected 5, got %.4f", got)
	}
	if _, err := CalculateSMA([]float64{1, 2}, 3); err == nil {
		t.Error("expected error for short input")
	}
	if _, err := CalculateSMA([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for zero period")
	}
}

func TestRollingMean_FullWindowsOnly(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50, 60}
	means, ok := RollingMean(values, 5)

	for i := 0; i < 4; i++ {
		if ok[i] {
			t.Errorf("index %d should have no mean", i)
		}
	}
	if !ok[4] || means[4] != 30 {
		t.Errorf("index 4: expected 30, got %.4f (ok=%v)", means[4], ok[4])
	}
	if !ok[5] || means[5] != 40 {
		t.Errorf("index 5: expected 40, got %.4f (ok=%v)", means[5], ok[5])
	}
}

func TestRollingMean_MatchesDefinition(t *testing.T) {
	values := make([]float64, 60)
	for i := range values {
		values[i] = 5000 + 30*math.Sin(float64(i)/3)
	}
	means, ok := RollingMean(values, 20)
	for i := range values {
		if i < 19 {
			if ok[i] {
				t.Fatalf("index %d: partial window averaged", i)
			}
			continue
		}
		want, _ := CalculateSMA(values[:i+1], 20)
		if math.Abs(means[i]-want) > 1e-9 {
			t.Fatalf("index %d: expected %.6f, got %.6f", i, want, means[i])
		}
	}
}

func TestPricing(t *testing.T) {
	perGram := PricePerUnit(2000, 83, GramsPerTroyOunce)
	if math.Abs(perGram-2000*83/31.1034768) > 1e-9 {
		t.Errorf("unexpected per-gram price %.6f", perGram)
	}
	taxed := TaxAdjusted(perGram, DefaultTaxRate)
	want := 2000 * 83 * 1.03 / 31.1034768
	if math.Abs(taxed-want) > 1e-9 {
		t.Errorf("expected %.6f, got %.6f", want, taxed)
	}
}
