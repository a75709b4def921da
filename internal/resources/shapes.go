package resources

import "github.com/irevlogix/irevlogix-console/internal/gateway/shape"

var contaminantShape = shape.Map(
	shape.Field{From: "Name", To: "name", Default: ""},
	shape.Field{From: "Occurrences", To: "occurrences", Default: 0},
	shape.Field{From: "Percentage", To: "percentage", Default: 0},
)

var weeklyRateShape = shape.Map(
	shape.Field{From: "WeekStart", To: "weekStart", Default: nil},
	shape.Field{From: "ContaminationRate", To: "contaminationRate", Default: 0},
	shape.Field{From: "LotCount", To: "lotCount", Default: 0},
)

// ContaminationInsightShape maps the processing contamination analysis.
var ContaminationInsightShape = shape.Map(
	shape.Field{From: "MaterialTypeId", To: "materialTypeId", Default: nil},
	shape.Field{From: "MaterialTypeName", To: "materialTypeName", Default: nil},
	shape.Field{From: "PeriodWeeks", To: "periodWeeks", Default: 4},
	shape.Field{From: "TotalLots", To: "totalLots", Default: 0},
	shape.Field{From: "TotalWeightLbs", To: "totalWeightLbs", Default: 0},
	shape.Field{From: "AverageContaminationRate", To: "averageContaminationRate", Default: 0},
	shape.Field{From: "CommonContaminants", To: "commonContaminants", Default: []any{}, Items: &contaminantShape},
	shape.Field{From: "WeeklyTrend", To: "weeklyTrend", Default: []any{}, Items: &weeklyRateShape},
	shape.Field{From: "Recommendations", To: "recommendations", Default: []any{}},
	shape.Field{From: "GeneratedAt", To: "generatedAt", Default: nil},
)

var scorecardMetricShape = shape.Map(
	shape.Field{From: "Metric", To: "metric", Default: ""},
	shape.Field{From: "Value", To: "value", Default: 0},
	shape.Field{From: "Target", To: "target", Default: nil},
)

// VendorScorecardShape maps downstream vendor performance rows. Several
// upstream names (VendorID, KPIScore, ESGRating) have no symmetric camel form.
var VendorScorecardShape = shape.Map(
	shape.Field{From: "VendorID", To: "vendorId", Default: nil},
	shape.Field{From: "VendorName", To: "vendorName", Default: ""},
	shape.Field{From: "KPIScore", To: "kpiScore", Default: 0},
	shape.Field{From: "ESGRating", To: "esgRating", Default: nil},
	shape.Field{From: "OnTimePickupPct", To: "onTimePickupPercent", Default: 0},
	shape.Field{From: "CertificatesOnFile", To: "certificatesOnFile", Default: []any{}},
	shape.Field{From: "Metrics", To: "metrics", Default: []any{}, Items: &scorecardMetricShape},
	shape.Field{From: "PeriodWeeks", To: "periodWeeks", Default: 4},
)
