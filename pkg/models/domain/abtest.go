package domain

// ABGroup is one arm of a two-proportion comparison.
type ABGroup struct {
	Sample    int64
	Successes int64
}

// Confidence is the verdict band of a significance test.
type Confidence string

const (
	Confidence99  Confidence = "99%"
	Confidence95  Confidence = "95%"
	ConfidenceLow Confidence = "low"
)

type ABTestResult struct {
	RateA       float64 // percent, 2 decimals
	RateB       float64 // percent, 2 decimals
	ZScore      float64 // 2 decimals
	PValue      float64 // two-tailed
	Confidence  Confidence
	Significant bool
}
