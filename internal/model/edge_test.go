package model

import (
	"errors"
	"math"
	"testing"

	"github.com/agsports/valuepicks/internal/pkg/models"
)

func TestComputeEdge_FairOddGivesZeroEdge(t *testing.T) {
	tiers := DefaultTierThresholds()
	for _, p := range []float64{0.05, 0.25, 0.4916, 0.75, 0.99} {
		got, err := ComputeEdge(p, 1/p, tiers)
		if err != nil {
			t.Fatalf("ComputeEdge(%v, %v): %v", p, 1/p, err)
		}
		if math.Abs(got.EdgePercent) > 1e-9 {
			t.Errorf("edge at fair odd = %v for p=%v, want 0", got.EdgePercent, p)
		}
		if got.Tier != models.TierAvoid {
			t.Errorf("tier at zero edge = %q, want %q", got.Tier, models.TierAvoid)
		}
	}
}

func TestComputeEdge_MonotoneInMarketOdd(t *testing.T) {
	tiers := DefaultTierThresholds()
	prev := math.Inf(-1)
	for odd := 1.1; odd < 5; odd += 0.1 {
		got, err := ComputeEdge(0.5, odd, tiers)
		if err != nil {
			t.Fatal(err)
		}
		if got.EdgePercent <= prev {
			t.Errorf("edge %v at odd %v not increasing from %v", got.EdgePercent, odd, prev)
		}
		prev = got.EdgePercent
	}
}

func TestComputeEdge_KnownCase(t *testing.T) {
	// Total rate 2.64, over 2.5 priced at 2.12.
	p, err := ProbabilityOver(2.64, 2)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ComputeEdge(p, 2.12, DefaultTierThresholds())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got.FairOdd-2.034318) > 1e-4 {
		t.Errorf("fair odd = %v, want ~2.0343", got.FairOdd)
	}
	if math.Abs(got.EdgePercent-4.2118) > 1e-3 {
		t.Errorf("edge = %v, want ~4.21", got.EdgePercent)
	}
	if got.Tier != models.TierModerate {
		t.Errorf("tier = %q, want %q", got.Tier, models.TierModerate)
	}
}

func TestComputeEdge_InvalidInput(t *testing.T) {
	tiers := DefaultTierThresholds()
	tests := []struct {
		name    string
		p, odd  float64
		wantErr error
	}{
		{"zero probability", 0, 2.0, ErrInvalidProbability},
		{"negative probability", -0.2, 2.0, ErrInvalidProbability},
		{"probability above one", 1.01, 2.0, ErrInvalidProbability},
		{"odd of one", 0.5, 1.0, ErrInvalidOdd},
		{"odd below one", 0.5, 0.9, ErrInvalidOdd},
	}
	for _, tt := range tests {
		_, err := ComputeEdge(tt.p, tt.odd, tiers)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: got err %v, want %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestTierThresholds(t *testing.T) {
	tiers := DefaultTierThresholds()
	tests := []struct {
		edge float64
		want string
	}{
		{7.2, models.TierStrong},
		{5.01, models.TierStrong},
		{5, models.TierModerate},
		{4.21, models.TierModerate},
		{3, models.TierWeak},
		{0.5, models.TierWeak},
		{0, models.TierAvoid},
		{-4, models.TierAvoid},
	}
	for _, tt := range tests {
		if got := tiers.Tier(tt.edge); got != tt.want {
			t.Errorf("Tier(%v) = %q, want %q", tt.edge, got, tt.want)
		}
	}
}

func TestRounding(t *testing.T) {
	if got := RoundProbability(0.4915652266); got != 0.4916 {
		t.Errorf("RoundProbability = %v, want 0.4916", got)
	}
	if got := RoundOdd(2.034318); got != 2.03 {
		t.Errorf("RoundOdd = %v, want 2.03", got)
	}
	if got := RoundEdge(4.211828); got != 4.21 {
		t.Errorf("RoundEdge = %v, want 4.21", got)
	}
}
