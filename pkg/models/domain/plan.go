package domain

import "time"

// Plan is a stratification workspace: a target sample and editable strata.
type Plan struct {
	ID           string
	Name         string
	TargetSample int64
	Strata       []Stratum
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
