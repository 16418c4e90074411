package store

import "time"

type Plan struct {
	ID           string
	Name         string
	TargetSample int64
	Strata       []Stratum
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Stratum struct {
	ID         string
	Name       string
	Population float64
}
