package policy

import (
	"math"
	"testing"
)

func TestDefault_EmbeddedPolicyParses(t *testing.T) {
	p := Default()

	sum := p.Weights.Semantic + p.Weights.Domain + p.Weights.Eligibility + p.Weights.Strategic
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("weights must sum to 1.0, got %f", sum)
	}
	if p.Weights.Semantic != 0.40 || p.Weights.Domain != 0.25 ||
		p.Weights.Eligibility != 0.20 || p.Weights.Strategic != 0.15 {
		t.Fatalf("unexpected fusion weights: %+v", p.Weights)
	}
	if p.StatusThresholds.Eligible != 0.8 || p.StatusThresholds.NeedsAction != 0.5 {
		t.Fatalf("unexpected status thresholds: %+v", p.StatusThresholds)
	}
}

func TestTierFor_CutoffsTopDown(t *testing.T) {
	c := Default().Competitiveness

	cases := []struct {
		score      int
		label      string
		multiplier float64
	}{
		{95, "high", 1.5},
		{85, "high", 1.5},
		{84, "medium-high", 1.2},
		{70, "medium-high", 1.2},
		{60, "medium", 1.0},
		{55, "medium", 1.0},
		{54, "low", 0.7},
		{0, "low", 0.7},
	}
	for _, tc := range cases {
		tier := c.TierFor(tc.score)
		if tier.Label != tc.label || tier.Multiplier != tc.multiplier {
			t.Fatalf("TierFor(%d) = %s/%.1f, want %s/%.1f",
				tc.score, tier.Label, tier.Multiplier, tc.label, tc.multiplier)
		}
	}
}
