package domain

// Report represents a complete calculator report
type Report struct {
	Title       string
	Calculator  string
	Sections    []ReportSection
	TotalAmount float64
	Currency    string
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Details []ReportDetail
}

// ReportDetail represents detailed information within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
