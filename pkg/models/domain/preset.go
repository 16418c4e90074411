package domain

import "fmt"

// Preset is a named survey scenario with ready-made sample size parameters.
type Preset struct {
	Name        string
	Title       string
	Description string
	Input       SampleSizeInput
}

func (p Preset) String() string {
	return fmt.Sprintf("%s:%s", p.Name, p.Title)
}
