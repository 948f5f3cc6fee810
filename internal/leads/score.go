package leads

import "github.com/shopspring/decimal"

// Score components.
var (
	spendBaseHigh   = decimal.NewFromInt(40)
	spendBaseMedium = decimal.NewFromInt(30)
	spendBaseLow    = decimal.NewFromInt(10)

	growthBonusHigh   = decimal.NewFromInt(20)
	growthBonusMedium = decimal.NewFromInt(10)

	churnPenalty = decimal.NewFromInt(10)

	neutralWeight = decimal.NewFromInt(1)
)

// Thresholds are exclusive lower bounds.
const (
	spendHighThreshold    = 1.0
	spendMediumThreshold  = 0.5
	growthHighThreshold   = 20
	growthMediumThreshold = 10
	churnRiskThreshold    = 50
)

var industryWeights = map[Industry]decimal.Decimal{
	IndustrySaaS:      decimal.RequireFromString("1.2"),
	IndustryFinTech:   decimal.RequireFromString("1.1"),
	IndustryECommerce: decimal.RequireFromString("1.0"),
	IndustryGaming:    decimal.RequireFromString("1.0"),
	IndustryOther:     decimal.RequireFromString("0.8"),
}

// IndustryWeight returns the multiplier for ind. Industries outside the table get the
// neutral weight 1.0, not the "Other" weight.
func IndustryWeight(ind Industry) decimal.Decimal {
	if w, ok := industryWeights[ind]; ok {
		return w
	}
	return neutralWeight
}

// Score computes the lead score:
//
//	base(spend) * weight(industry) + bonus(growth) - penalty(churn)
//
// Decimal arithmetic keeps e.g. 10 * 1.1 at exactly 11.
func Score(r Record) float64 {
	score := spendBase(r.EstimatedSpend).Mul(IndustryWeight(r.Industry))
	score = score.Add(growthBonus(r.GrowthRate))
	if r.ChurnRisk > churnRiskThreshold {
		score = score.Sub(churnPenalty)
	}
	return score.InexactFloat64()
}

// ScoreAll returns a copy of records with LeadScore filled in.
func ScoreAll(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		r.LeadScore = Score(r)
		out[i] = r
	}
	return out
}

func spendBase(spend float64) decimal.Decimal {
	switch {
	case spend > spendHighThreshold:
		return spendBaseHigh
	case spend > spendMediumThreshold:
		return spendBaseMedium
	default:
		return spendBaseLow
	}
}

func growthBonus(growth int) decimal.Decimal {
	switch {
	case growth > growthHighThreshold:
		return growthBonusHigh
	case growth > growthMediumThreshold:
		return growthBonusMedium
	default:
		return decimal.Zero
	}
}
