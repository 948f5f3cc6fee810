package leads

import (
	"sort"

	"github.com/shopspring/decimal"
)

const (
	churnBinWidth = 10
	churnBinCount = 10
)

// Summary is the headline block of the report.
type Summary struct {
	TotalLeads   int     `json:"totalLeads"`
	AverageScore float64 `json:"averageScore"`
}

// CountBucket is one slice of a distribution chart.
type CountBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// HistogramBin covers [Min, Max); the last bin also includes Max.
type HistogramBin struct {
	Min   int `json:"min"`
	Max   int `json:"max"`
	Count int `json:"count"`
}

// ScatterPoint places one lead on the spend vs growth chart.
type ScatterPoint struct {
	CompanyName    string   `json:"companyName"`
	Industry       Industry `json:"industry"`
	EstimatedSpend float64  `json:"estimatedSpend"`
	GrowthRate     int      `json:"growthRate"`
	LeadScore      float64  `json:"leadScore"`
}

// Charts holds the data behind the four report charts.
type Charts struct {
	ByIndustry     []CountBucket  `json:"byIndustry"`
	ByProvider     []CountBucket  `json:"byProvider"`
	ChurnHistogram []HistogramBin `json:"churnHistogram"`
	SpendVsGrowth  []ScatterPoint `json:"spendVsGrowth"`
}

// Summarize counts the leads and averages their scores to two decimals.
func Summarize(records []Record) Summary {
	if len(records) == 0 {
		return Summary{}
	}
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(decimal.NewFromFloat(r.LeadScore))
	}
	avg := total.Div(decimal.NewFromInt(int64(len(records)))).Round(2)
	return Summary{TotalLeads: len(records), AverageScore: avg.InexactFloat64()}
}

// BuildCharts derives chart data from scored records.
func BuildCharts(records []Record) Charts {
	industries := make([]string, len(records))
	providers := make([]string, len(records))
	points := make([]ScatterPoint, 0, len(records))
	for i, r := range records {
		industries[i] = string(r.Industry)
		providers[i] = string(r.CloudProvider)
		points = append(points, ScatterPoint{
			CompanyName:    r.CompanyName,
			Industry:       r.Industry,
			EstimatedSpend: r.EstimatedSpend,
			GrowthRate:     r.GrowthRate,
			LeadScore:      r.LeadScore,
		})
	}
	industryOrder := make([]string, len(Industries))
	for i, ind := range Industries {
		industryOrder[i] = string(ind)
	}
	providerOrder := make([]string, len(CloudProviders))
	for i, p := range CloudProviders {
		providerOrder[i] = string(p)
	}
	return Charts{
		ByIndustry:     countBy(industries, industryOrder),
		ByProvider:     countBy(providers, providerOrder),
		ChurnHistogram: churnHistogram(records),
		SpendVsGrowth:  points,
	}
}

// countBy counts non-empty categories, known ones in their display order and the rest
// alphabetically after them.
func countBy(values []string, order []string) []CountBucket {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	out := make([]CountBucket, 0, len(counts))
	known := make(map[string]bool, len(order))
	for _, label := range order {
		known[label] = true
		if n := counts[label]; n > 0 {
			out = append(out, CountBucket{Label: label, Count: n})
		}
	}
	var extra []string
	for label := range counts {
		if !known[label] {
			extra = append(extra, label)
		}
	}
	sort.Strings(extra)
	for _, label := range extra {
		out = append(out, CountBucket{Label: label, Count: counts[label]})
	}
	return out
}

func churnHistogram(records []Record) []HistogramBin {
	bins := make([]HistogramBin, churnBinCount)
	for i := range bins {
		bins[i] = HistogramBin{Min: i * churnBinWidth, Max: (i + 1) * churnBinWidth}
	}
	for _, r := range records {
		idx := r.ChurnRisk / churnBinWidth
		if r.ChurnRisk < 0 {
			idx = 0
		}
		if idx >= churnBinCount {
			idx = churnBinCount - 1
		}
		bins[idx].Count++
	}
	return bins
}
