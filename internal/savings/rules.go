package savings

import "github.com/shopspring/decimal"

// SavingsRatio is the flat share of current cost reported as potential savings.
var SavingsRatio = decimal.RequireFromString("0.6")

const (
	RecComputeUpgradeMicro    = "Consider upgrading to t2.small or t2.medium if performance requirements increase."
	RecComputeDownsizeM5      = "Consider downsizing to m5.large if usage is lower than expected."
	RecComputeSwitchC5        = "Consider switching to m5.xlarge or lower if compute needs decrease."
	RecComputeLowUtilization  = "Consider downsizing the EC2 instance to reduce costs."
	RecComputeReserved        = "Switch to Reserved Instances or Savings Plans for better rates."
	RecComputeSpot            = "Consider switching to an EC2 Spot Instance to reduce costs."
	RecStorageGlacierArchive  = "Move unused data to S3 Glacier or Glacier Deep Archive for reduced costs."
	RecStorageInfrequent      = "Consider moving data to S3 Infrequent Access for lower storage costs."
	RecStorageTiering         = "Use S3 Intelligent-Tiering to automatically move data between access tiers."
	RecStorageGlacier         = "Switch to S3 Glacier for long-term storage to reduce costs."
	RecDatabaseSwitchM5       = "Consider switching to db.m5.medium or db.t3.medium to save costs if utilization is low."
	RecDatabaseDownsizeR5     = "Consider downsizing to db.r5.large if memory requirements are lower."
	RecDatabaseUpgradeMicro   = "Consider upgrading to db.t3.small or db.m5.large if performance needs increase."
	RecDatabaseLowUtilization = "Consider scaling down your RDS instance."
	RecDatabaseReserved       = "Switch to Reserved Instances or Savings Plans for long-term cost savings."
	RecDatabaseMultiAZ        = "Consider using a multi-AZ deployment for high availability if needed."
)

// Utilization thresholds; a rule fires strictly below its threshold.
const (
	computeLowUtilization  = 40
	storageArchiveUtil     = 20
	storageInfrequentUtil  = 40
	databaseLowUtilization = 50
)

var computeInstanceHints = map[string]string{
	"t2.micro":  RecComputeUpgradeMicro,
	"m5.xlarge": RecComputeDownsizeM5,
	"c5.xlarge": RecComputeSwitchC5,
}

var databaseInstanceHints = map[string]string{
	"db.m5.large":  RecDatabaseSwitchM5,
	"db.r5.xlarge": RecDatabaseDownsizeR5,
	"db.t3.micro":  RecDatabaseUpgradeMicro,
}

// Analyze runs the rule engine. Recommendations are ordered instance hint, utilization,
// billing. Savings are always CurrentCost * SavingsRatio, even with no recommendations.
func Analyze(cfg ResourceConfig) Result {
	recs := make([]string, 0, 4)
	switch cfg.ServiceType {
	case ServiceCompute:
		if hint, ok := computeInstanceHints[cfg.InstanceType]; ok {
			recs = append(recs, hint)
		}
		if cfg.Utilization < computeLowUtilization {
			recs = append(recs, RecComputeLowUtilization)
		}
		recs = appendBilling(recs, cfg.BillingFrequency, RecComputeReserved, RecComputeSpot)
	case ServiceStorage:
		if cfg.Utilization < storageArchiveUtil {
			recs = append(recs, RecStorageGlacierArchive)
		}
		if cfg.Utilization < storageInfrequentUtil {
			recs = append(recs, RecStorageInfrequent)
		}
		recs = appendBilling(recs, cfg.BillingFrequency, RecStorageTiering, RecStorageGlacier)
	case ServiceDatabase:
		if hint, ok := databaseInstanceHints[cfg.InstanceType]; ok {
			recs = append(recs, hint)
		}
		if cfg.Utilization < databaseLowUtilization {
			recs = append(recs, RecDatabaseLowUtilization)
		}
		recs = appendBilling(recs, cfg.BillingFrequency, RecDatabaseReserved, RecDatabaseMultiAZ)
	}
	return Result{
		Recommendations:  recs,
		PotentialSavings: PotentialSavings(cfg.CurrentCost),
	}
}

// PotentialSavings applies the flat savings ratio.
func PotentialSavings(cost decimal.Decimal) decimal.Decimal {
	return cost.Mul(SavingsRatio)
}

// Compare returns the current cost next to the cost after the potential savings.
func Compare(cfg ResourceConfig) Comparison {
	return Comparison{
		CurrentCost:   cfg.CurrentCost,
		OptimizedCost: cfg.CurrentCost.Sub(PotentialSavings(cfg.CurrentCost)),
	}
}

func appendBilling(recs []string, billing BillingFrequency, hourly, monthly string) []string {
	switch billing {
	case BillingHourly:
		return append(recs, hourly)
	case BillingMonthly:
		return append(recs, monthly)
	}
	return recs
}
