package api

// Z may be given directly or derived from ConfidenceLevel (e.g. 0.95). When
// both are omitted the 95% critical value is used.
type SampleSizeRequest struct {
	Z               *float64 `json:"z,omitempty" validate:"omitempty,gt=0"`
	ConfidenceLevel *float64 `json:"confidence_level,omitempty" validate:"omitempty,gt=0,lt=1"`
	Heterogeneity   *float64 `json:"heterogeneity,omitempty" validate:"omitempty,gte=0,lte=1"`
	MarginOfError   float64  `json:"margin_of_error"`
	Population      int64    `json:"population,omitempty" validate:"gte=0"`
}

type SampleSizeResponse struct {
	SampleSize    int64   `json:"sample_size"`
	Z             float64 `json:"z"`
	Heterogeneity float64 `json:"heterogeneity"`
	MarginOfError float64 `json:"margin_of_error"`
	Population    int64   `json:"population,omitempty"`
}

type MarginOfErrorRequest struct {
	Z               *float64 `json:"z,omitempty" validate:"omitempty,gt=0"`
	ConfidenceLevel *float64 `json:"confidence_level,omitempty" validate:"omitempty,gt=0,lt=1"`
	Heterogeneity   *float64 `json:"heterogeneity,omitempty" validate:"omitempty,gte=0,lte=1"`
	Sample          int64    `json:"sample" validate:"gte=0"`
	Population      int64    `json:"population,omitempty" validate:"gte=0"`
	Observed        *float64 `json:"observed,omitempty" validate:"omitempty,gte=0,lte=100"`
}

type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

type MarginOfErrorResponse struct {
	MarginOfError float64   `json:"margin_of_error"`
	Precision     string    `json:"precision"`
	Z             float64   `json:"z"`
	Interval      *Interval `json:"interval,omitempty"`
}

type ABGroup struct {
	Sample    int64 `json:"sample" validate:"gte=0"`
	Successes int64 `json:"successes" validate:"gte=0,ltefield=Sample"`
}

type ABTestRequest struct {
	A ABGroup `json:"a"`
	B ABGroup `json:"b"`
}

type ABTestResponse struct {
	RateA       float64 `json:"rate_a"`
	RateB       float64 `json:"rate_b"`
	ZScore      float64 `json:"z_score"`
	PValue      float64 `json:"p_value"`
	Confidence  string  `json:"confidence"`
	Significant bool    `json:"significant"`
}

type Stratum struct {
	ID         string  `json:"id,omitempty"`
	Name       string  `json:"name"`
	Population float64 `json:"population" validate:"gte=0"`
}

type StratifiedRequest struct {
	TargetSample int64     `json:"target_sample" validate:"gte=0"`
	Method       string    `json:"method,omitempty" validate:"omitempty,oneof=proportional largest_remainder"`
	Strata       []Stratum `json:"strata" validate:"dive"`
}

type StratumAllocation struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Population float64 `json:"population"`
	Weight     float64 `json:"weight"`
	Allocation int64   `json:"allocation"`
}

type AllocationResponse struct {
	Method           string              `json:"method"`
	TargetSample     int64               `json:"target_sample"`
	TotalPopulation  float64             `json:"total_population"`
	SamplingFraction float64             `json:"sampling_fraction"`
	Allocated        int64               `json:"allocated"`
	Drift            int64               `json:"drift"`
	Strata           []StratumAllocation `json:"strata"`
}

type FieldCostRequest struct {
	SampleSize       int64   `json:"sample_size" validate:"gte=0"`
	CostPerInterview float64 `json:"cost_per_interview" validate:"gte=0"`
	IncidenceRate    float64 `json:"incidence_rate"`
	DurationMinutes  float64 `json:"duration_minutes" validate:"gte=0"`
}

type FieldCostResponse struct {
	TotalCost         float64 `json:"total_cost"`
	ContactsNeeded    int64   `json:"contacts_needed"`
	ScreenedOut       int64   `json:"screened_out"`
	TotalHours        int64   `json:"total_hours"`
	Efficiency        string  `json:"efficiency"`
	HighScreeningCost bool    `json:"high_screening_cost"`
}

// Percentages outside [0, 100] and negative universe or frequency are clamped
// rather than rejected.
type DemandRequest struct {
	Universe      int64   `json:"universe"`
	PotentialPct  float64 `json:"potential_pct"`
	AvailablePct  float64 `json:"available_pct"`
	TargetPct     float64 `json:"target_pct"`
	PenetratedPct float64 `json:"penetrated_pct"`
	Frequency     float64 `json:"frequency"`
}

type FunnelLayer struct {
	Name  string  `json:"name"`
	Size  int64   `json:"size"`
	Share float64 `json:"share"`
}

type DemandResponse struct {
	Universe int64         `json:"universe"`
	Layers   []FunnelLayer `json:"layers"`
	Demand   float64       `json:"demand"`
}

type ConfidenceLevel struct {
	Label string  `json:"label"`
	Level float64 `json:"level"`
	Z     float64 `json:"z"`
}

type Preset struct {
	Name          string  `json:"name"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	Z             float64 `json:"z"`
	Heterogeneity float64 `json:"heterogeneity"`
	MarginOfError float64 `json:"margin_of_error"`
	Population    int64   `json:"population,omitempty"`
	SampleSize    int64   `json:"sample_size"`
}
