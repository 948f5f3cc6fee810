package leads

import (
	"sort"
	"strings"
)

// DefaultTopN is how many leads the prioritized view shows.
const DefaultTopN = 5

// Rank returns a sorted copy: score, spend and growth descending. Leads equal on all three
// are ordered by company name, then larger company, then lower churn risk, so the result
// never depends on upload order.
func Rank(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return rankBefore(out[i], out[j])
	})
	return out
}

// Top returns the n highest ranked leads, or all of them when there are fewer.
func Top(records []Record, n int) []Record {
	ranked := Rank(records)
	if n < 0 {
		n = 0
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func rankBefore(a, b Record) bool {
	if a.LeadScore != b.LeadScore {
		return a.LeadScore > b.LeadScore
	}
	if a.EstimatedSpend != b.EstimatedSpend {
		return a.EstimatedSpend > b.EstimatedSpend
	}
	if a.GrowthRate != b.GrowthRate {
		return a.GrowthRate > b.GrowthRate
	}
	an, bn := strings.ToLower(a.CompanyName), strings.ToLower(b.CompanyName)
	if an != bn {
		return an < bn
	}
	if a.CompanySize != b.CompanySize {
		return a.CompanySize > b.CompanySize
	}
	return a.ChurnRisk < b.ChurnRisk
}
