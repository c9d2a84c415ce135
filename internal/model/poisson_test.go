package model

import (
	"math"
	"testing"
)

func TestPoissonPmf_KnownValues(t *testing.T) {
	tests := []struct {
		lambda float64
		k      int
		want   float64
	}{
		{1, 0, 1 / math.E},
		{1, 1, 1 / math.E},
		{2.5, 0, math.Exp(-2.5)},
		{2.5, 2, math.Exp(-2.5) * 2.5 * 2.5 / 2},
	}
	for _, tt := range tests {
		got, err := PoissonPmf(tt.lambda, tt.k)
		if err != nil {
			t.Fatalf("PoissonPmf(%v, %d) unexpected error: %v", tt.lambda, tt.k, err)
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("PoissonPmf(%v, %d) = %v, want %v", tt.lambda, tt.k, got, tt.want)
		}
	}
}

func TestPoissonPmf_InvalidInput(t *testing.T) {
	if _, err := PoissonPmf(0, 1); err == nil {
		t.Error("expected error for lambda = 0")
	}
	if _, err := PoissonPmf(-1.5, 1); err == nil {
		t.Error("expected error for negative lambda")
	}
	if _, err := PoissonPmf(1, -1); err == nil {
		t.Error("expected error for negative k")
	}
}

func TestOverUnderComplementary(t *testing.T) {
	lambdas := []float64{0.1, 0.5, 1, 1.7, 2.64, 3.1465, 5, 9.9}
	for _, lambda := range lambdas {
		for threshold := 0; threshold <= 8; threshold++ {
			over, err := ProbabilityOver(lambda, threshold)
			if err != nil {
				t.Fatalf("ProbabilityOver(%v, %d): %v", lambda, threshold, err)
			}
			under, err := ProbabilityUnder(lambda, threshold)
			if err != nil {
				t.Fatalf("ProbabilityUnder(%v, %d): %v", lambda, threshold, err)
			}
			if sum := over + under; math.Abs(sum-1) > 1e-9 {
				t.Errorf("over+under = %v for lambda=%v threshold=%d, want 1", sum, lambda, threshold)
			}
			if over < 0 || over > 1 || under < 0 || under > 1 {
				t.Errorf("probabilities out of range: over=%v under=%v (lambda=%v threshold=%d)", over, under, lambda, threshold)
			}
		}
	}
}

func TestProbabilityOver_KnownValue(t *testing.T) {
	// Total rate 2.64 on the 2.5 goals line.
	got, err := ProbabilityOver(2.64, 2)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-0.4915652266646606) > 1e-9 {
		t.Errorf("ProbabilityOver(2.64, 2) = %v, want ~0.49157", got)
	}
}

func TestProbabilityOver_MonotoneInThreshold(t *testing.T) {
	prev := 1.0
	for threshold := 0; threshold <= 9; threshold++ {
		got, err := ProbabilityOver(2.7, threshold)
		if err != nil {
			t.Fatal(err)
		}
		if got >= prev {
			t.Errorf("ProbabilityOver(2.7, %d) = %v, not decreasing from %v", threshold, got, prev)
		}
		prev = got
	}
}

func TestProbabilityUnder_InvalidInput(t *testing.T) {
	if _, err := ProbabilityUnder(0, 2); err == nil {
		t.Error("expected error for lambda = 0")
	}
	if _, err := ProbabilityUnder(2.5, -1); err == nil {
		t.Error("expected error for negative threshold")
	}
	if _, err := ProbabilityOver(-0.1, 2); err == nil {
		t.Error("expected error for negative lambda")
	}
}
