package leads

// Industry is the lead's market segment. Values outside the known set are kept verbatim.
type Industry string

const (
	IndustrySaaS      Industry = "SaaS"
	IndustryFinTech   Industry = "FinTech"
	IndustryECommerce Industry = "E-Commerce"
	IndustryGaming    Industry = "Gaming"
	IndustryOther     Industry = "Other"
)

// Industries lists the selectable industries in display order.
var Industries = []Industry{IndustrySaaS, IndustryFinTech, IndustryECommerce, IndustryGaming, IndustryOther}

// CloudProvider is the lead's primary cloud.
type CloudProvider string

const (
	ProviderAWS   CloudProvider = "AWS"
	ProviderAzure CloudProvider = "Azure"
	ProviderGCP   CloudProvider = "GCP"
	ProviderOther CloudProvider = "Other"
)

// CloudProviders lists the selectable providers in display order.
var CloudProviders = []CloudProvider{ProviderAWS, ProviderAzure, ProviderGCP, ProviderOther}

// Record is one prospective customer. LeadScore is derived and overwritten on every rescoring.
type Record struct {
	CompanyName    string        `json:"companyName"`
	Industry       Industry      `json:"industry"`
	CloudProvider  CloudProvider `json:"cloudProvider"`
	CompanySize    int           `json:"companySize"`
	EstimatedSpend float64       `json:"estimatedSpend"`
	GrowthRate     int           `json:"growthRate"`
	ChurnRisk      int           `json:"churnRisk"`
	LeadScore      float64       `json:"leadScore"`
}

// ParseIndustry reports whether raw is exactly one of the known industries. Any other
// spelling, "saas" or " SaaS" included, comes back verbatim with ok=false and scores
// with the neutral weight.
func ParseIndustry(raw string) (Industry, bool) {
	for _, ind := range Industries {
		if raw == string(ind) {
			return ind, true
		}
	}
	return Industry(raw), false
}

// ParseCloudProvider reports whether raw is exactly one of the known providers.
func ParseCloudProvider(raw string) (CloudProvider, bool) {
	for _, p := range CloudProviders {
		if raw == string(p) {
			return p, true
		}
	}
	return CloudProvider(raw), false
}
