package leads

import "testing"

func TestScoreReferenceLead(t *testing.T) {
	rec := Record{Industry: IndustrySaaS, EstimatedSpend: 1.5, GrowthRate: 25, ChurnRisk: 60}
	if got := Score(rec); got != 58 {
		t.Fatalf("expected 58, got %v", got)
	}
}

func TestScoreSpendTiers(t *testing.T) {
	cases := []struct {
		spend float64
		want  float64
	}{
		{0, 10},
		{0.5, 10},
		{0.51, 30},
		{1.0, 30},
		{1.0001, 40},
		{250, 40},
	}
	for _, tc := range cases {
		rec := Record{Industry: IndustryECommerce, EstimatedSpend: tc.spend}
		if got := Score(rec); got != tc.want {
			t.Fatalf("spend %v: expected %v, got %v", tc.spend, tc.want, got)
		}
	}
}

func TestScoreGrowthBonusIsMonotonic(t *testing.T) {
	cases := []struct {
		growth int
		bonus  float64
	}{
		{0, 0},
		{10, 0},
		{11, 10},
		{20, 10},
		{21, 20},
		{100, 20},
	}
	prev := -1.0
	for _, tc := range cases {
		rec := Record{Industry: IndustryGaming, EstimatedSpend: 0.8, GrowthRate: tc.growth}
		got := Score(rec)
		if got != 30+tc.bonus {
			t.Fatalf("growth %d: expected %v, got %v", tc.growth, 30+tc.bonus, got)
		}
		if got < prev {
			t.Fatalf("score decreased at growth %d", tc.growth)
		}
		prev = got
	}
}

func TestScoreChurnPenalty(t *testing.T) {
	base := Record{Industry: IndustrySaaS, EstimatedSpend: 2, GrowthRate: 15}
	atLimit := base
	atLimit.ChurnRisk = 50
	over := base
	over.ChurnRisk = 51

	if Score(atLimit) != Score(base) {
		t.Fatalf("churn 50 must not be penalized")
	}
	if diff := Score(atLimit) - Score(over); diff != 10 {
		t.Fatalf("expected penalty of exactly 10, got %v", diff)
	}
}

func TestScoreIndustryWeights(t *testing.T) {
	cases := []struct {
		industry Industry
		want     float64
	}{
		{IndustrySaaS, 48},
		{IndustryFinTech, 44},
		{IndustryECommerce, 40},
		{IndustryGaming, 40},
		{IndustryOther, 32},
		{Industry("Healthcare"), 40},
		{Industry(""), 40},
	}
	for _, tc := range cases {
		rec := Record{Industry: tc.industry, EstimatedSpend: 5}
		if got := Score(rec); got != tc.want {
			t.Fatalf("industry %q: expected %v, got %v", tc.industry, tc.want, got)
		}
	}
}

func TestScoreIsExactForFractionalWeights(t *testing.T) {
	rec := Record{Industry: IndustryFinTech, EstimatedSpend: 0.2}
	if got := Score(rec); got != 11 {
		t.Fatalf("expected exactly 11, got %v", got)
	}
}

func TestScoreAllDoesNotMutateInput(t *testing.T) {
	in := []Record{{Industry: IndustrySaaS, EstimatedSpend: 2, LeadScore: -1}}
	out := ScoreAll(in)
	if in[0].LeadScore != -1 {
		t.Fatalf("input was mutated")
	}
	if out[0].LeadScore != 48 {
		t.Fatalf("expected 48, got %v", out[0].LeadScore)
	}
}
