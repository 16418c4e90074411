package api

import "time"

type CreatePlanRequest struct {
	Name         string    `json:"name"`
	TargetSample int64     `json:"target_sample" validate:"gte=0"`
	Strata       []Stratum `json:"strata" validate:"dive"`
}

type UpdatePlanRequest struct {
	Name         *string `json:"name,omitempty"`
	TargetSample *int64  `json:"target_sample,omitempty" validate:"omitempty,gte=0"`
}

type AddStratumRequest struct {
	Name       string  `json:"name"`
	Population float64 `json:"population" validate:"gte=0"`
}

type UpdateStratumRequest struct {
	Name       *string  `json:"name,omitempty"`
	Population *float64 `json:"population,omitempty" validate:"omitempty,gte=0"`
}

type Plan struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	TargetSample    int64     `json:"target_sample"`
	TotalPopulation float64   `json:"total_population"`
	Strata          []Stratum `json:"strata"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
