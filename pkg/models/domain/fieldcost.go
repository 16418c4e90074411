package domain

type FieldCostInput struct {
	SampleSize       int64
	CostPerInterview float64
	IncidenceRate    float64 // percent in (0, 100]
	DurationMinutes  float64
}

// Efficiency classifies how expensive it is to find qualifying respondents.
type Efficiency string

const (
	EfficiencyCritical Efficiency = "critical"
	EfficiencyMedium   Efficiency = "medium"
	EfficiencyHigh     Efficiency = "high"
)

type FieldCostEstimate struct {
	TotalCost         float64
	ContactsNeeded    int64
	ScreenedOut       int64
	TotalHours        int64
	Efficiency        Efficiency
	HighScreeningCost bool
}
