package leads

// AddLeadRequest is the manual entry form. Omitted growth and churn fall back to the form
// defaults of 10 and 50.
type AddLeadRequest struct {
	CompanyName    string  `json:"companyName" binding:"max=200"`
	Industry       string  `json:"industry" binding:"required,oneof=SaaS FinTech E-Commerce Gaming Other"`
	CloudProvider  string  `json:"cloudProvider" binding:"required,oneof=AWS Azure GCP Other"`
	CompanySize    int     `json:"companySize" binding:"required,min=1"`
	EstimatedSpend float64 `json:"estimatedSpend" binding:"min=0"`
	GrowthRate     *int    `json:"growthRate" binding:"omitempty,min=0,max=100"`
	ChurnRisk      *int    `json:"churnRisk" binding:"omitempty,min=0,max=100"`
}

const (
	defaultGrowthRate = 10
	defaultChurnRisk  = 50
)

func (r AddLeadRequest) toRecord() Record {
	rec := Record{
		CompanyName:    r.CompanyName,
		Industry:       Industry(r.Industry),
		CloudProvider:  CloudProvider(r.CloudProvider),
		CompanySize:    r.CompanySize,
		EstimatedSpend: r.EstimatedSpend,
		GrowthRate:     defaultGrowthRate,
		ChurnRisk:      defaultChurnRisk,
	}
	if r.GrowthRate != nil {
		rec.GrowthRate = *r.GrowthRate
	}
	if r.ChurnRisk != nil {
		rec.ChurnRisk = *r.ChurnRisk
	}
	return rec
}

// LeadsResponse wraps a list of scored leads.
type LeadsResponse struct {
	Leads []Record `json:"leads"`
	Total int      `json:"total"`
}

func toLeadsResponse(records []Record) LeadsResponse {
	if records == nil {
		records = []Record{}
	}
	return LeadsResponse{Leads: records, Total: len(records)}
}
