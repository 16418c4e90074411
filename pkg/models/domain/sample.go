package domain

// DefaultHeterogeneity is the most conservative proportion for variance estimates.
const DefaultHeterogeneity = 0.5

// SampleSizeInput describes a sample size request. A Population of zero or
// less means the population is unbounded.
type SampleSizeInput struct {
	Z             float64
	P             float64
	MarginOfError float64 // percent, e.g. 5 for ±5%
	Population    int64
}

// MarginOfErrorInput describes a reverse calculation from an achieved sample.
type MarginOfErrorInput struct {
	Z          float64
	P          float64
	Sample     int64
	Population int64
}

// Precision is a qualitative label for an achieved margin of error.
type Precision string

const (
	PrecisionHigh     Precision = "high"
	PrecisionStandard Precision = "standard"
	PrecisionLow      Precision = "low"
)

// MarginOfErrorResult is the achieved margin of error and its reading.
type MarginOfErrorResult struct {
	MarginOfError float64 // percent, 2 decimals
	Precision     Precision
}

// Interval is a confidence interval around an observed percentage.
type Interval struct {
	Lower float64
	Upper float64
}

// ConfidenceLevel pairs a confidence level with its two-tailed critical value.
type ConfidenceLevel struct {
	Label string
	Level float64 // e.g. 0.95
	Z     float64
}
