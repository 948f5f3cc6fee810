// Package charts renders lead and savings charts as standalone ECharts HTML pages.
package charts

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"cloud-savings/internal/leads"
	"cloud-savings/internal/savings"
)

const (
	minSymbolSize = 6
	maxSymbolSize = 40
)

// Renderer implements leads.ChartRenderer and savings.ComparisonRenderer.
type Renderer struct {
	PageTitle string
}

// NewRenderer constructs a Renderer.
func NewRenderer(pageTitle string) *Renderer {
	return &Renderer{PageTitle: pageTitle}
}

// RenderLeads writes the industry pie, provider bar, churn histogram and spend/growth scatter.
func (r *Renderer) RenderLeads(w io.Writer, data leads.Charts) error {
	page := components.NewPage()
	page.PageTitle = r.title("Lead Prioritization")
	page.AddCharts(
		industryPie(data.ByIndustry),
		providerBar(data.ByProvider),
		churnHistogram(data.ChurnHistogram),
		spendGrowthScatter(data.SpendVsGrowth),
	)
	return page.Render(w)
}

// RenderComparison writes the grouped current vs optimized cost bar.
func (r *Renderer) RenderComparison(w io.Writer, cfg savings.ResourceConfig, cmp savings.Comparison) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: r.title("Savings Visualization")}),
		charts.WithTitleOpts(opts.Title{Title: "Savings Visualization", Subtitle: cfg.ServiceType.Label()}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Cost ($)"}),
	)
	bar.SetXAxis([]string{"Cost"}).
		AddSeries("Current Cost", []opts.BarData{{Value: cmp.CurrentCost.InexactFloat64()}}).
		AddSeries("Optimized Cost", []opts.BarData{{Value: cmp.OptimizedCost.InexactFloat64()}})
	return bar.Render(w)
}

func (r *Renderer) title(fallback string) string {
	if r.PageTitle != "" {
		return r.PageTitle
	}
	return fallback
}

func industryPie(buckets []leads.CountBucket) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Leads by Industry"}))
	items := make([]opts.PieData, 0, len(buckets))
	for _, b := range buckets {
		items = append(items, opts.PieData{Name: b.Label, Value: b.Count})
	}
	pie.AddSeries("Industry", items)
	return pie
}

func providerBar(buckets []leads.CountBucket) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Leads by Cloud Provider"}))
	labels := make([]string, 0, len(buckets))
	items := make([]opts.BarData, 0, len(buckets))
	for _, b := range buckets {
		labels = append(labels, b.Label)
		items = append(items, opts.BarData{Value: b.Count})
	}
	bar.SetXAxis(labels).AddSeries("Leads", items)
	return bar
}

func churnHistogram(bins []leads.HistogramBin) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Churn Risk Distribution"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Churn Risk (%)"}),
	)
	labels := make([]string, 0, len(bins))
	items := make([]opts.BarData, 0, len(bins))
	for _, b := range bins {
		labels = append(labels, fmt.Sprintf("%d-%d", b.Min, b.Max))
		items = append(items, opts.BarData{Value: b.Count})
	}
	bar.SetXAxis(labels).AddSeries("Leads", items)
	return bar
}

// spendGrowthScatter draws one series per industry; point size follows the lead score.
func spendGrowthScatter(points []leads.ScatterPoint) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Estimated Spend vs Growth Rate"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Estimated Spend ($M/year)"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Growth Rate (%)"}),
	)
	var order []leads.Industry
	grouped := make(map[leads.Industry][]opts.ScatterData)
	for _, p := range points {
		if _, seen := grouped[p.Industry]; !seen {
			order = append(order, p.Industry)
		}
		grouped[p.Industry] = append(grouped[p.Industry], opts.ScatterData{
			Name:       p.CompanyName,
			Value:      []interface{}{p.EstimatedSpend, p.GrowthRate, p.LeadScore},
			SymbolSize: symbolSize(p.LeadScore),
		})
	}
	for _, ind := range order {
		scatter.AddSeries(string(ind), grouped[ind])
	}
	return scatter
}

func symbolSize(score float64) int {
	size := int(math.Round(score / 2))
	if size < minSymbolSize {
		return minSymbolSize
	}
	if size > maxSymbolSize {
		return maxSymbolSize
	}
	return size
}
