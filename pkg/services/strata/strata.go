package strata

import (
	"errors"
	"fmt"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/services/formula"
	"github.com/google/uuid"
)

const (
	DefaultName       = "New group"
	DefaultPopulation = 100
)

var ErrStratumNotFound = errors.New("stratum not found")

// Set is an ordered, editable collection of strata keyed by generated IDs.
// It is not safe for concurrent use.
type Set struct {
	items []domain.Stratum
	newID func() string
}

// NewSet creates a set holding copies of the given strata. Strata without an
// ID are assigned one. IDs must be unique within the set.
func NewSet(initial ...domain.Stratum) (*Set, error) {
	s := &Set{newID: uuid.NewString}
	seen := make(map[string]struct{}, len(initial))
	for _, st := range initial {
		if st.ID == "" {
			st.ID = s.newID()
		}
		if _, ok := seen[st.ID]; ok {
			return nil, fmt.Errorf("duplicate stratum id %q: %w", st.ID, formula.ErrInvalidInput)
		}
		seen[st.ID] = struct{}{}
		s.items = append(s.items, st)
	}
	return s, nil
}

// Add appends a stratum. An empty name and a zero population fall back to the
// defaults for a fresh row.
func (s *Set) Add(name string, population float64) domain.Stratum {
	if name == "" {
		name = DefaultName
	}
	if population == 0 {
		population = DefaultPopulation
	}

	st := domain.Stratum{ID: s.newID(), Name: name, Population: population}
	s.items = append(s.items, st)
	return st
}

func (s *Set) Remove(id string) error {
	for i, st := range s.items {
		if st.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrStratumNotFound, id)
}

func (s *Set) Update(id string, patch domain.StratumPatch) (domain.Stratum, error) {
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if patch.Name != nil {
			s.items[i].Name = *patch.Name
		}
		if patch.Population != nil {
			s.items[i].Population = *patch.Population
		}
		return s.items[i], nil
	}
	return domain.Stratum{}, fmt.Errorf("%w: %s", ErrStratumNotFound, id)
}

func (s *Set) Get(id string) (domain.Stratum, bool) {
	for _, st := range s.items {
		if st.ID == id {
			return st, true
		}
	}
	return domain.Stratum{}, false
}

// List returns a copy of the strata in insertion order.
func (s *Set) List() []domain.Stratum {
	out := make([]domain.Stratum, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Set) Len() int {
	return len(s.items)
}

// TotalPopulation is the sum of all stratum populations.
func (s *Set) TotalPopulation() float64 {
	var total float64
	for _, st := range s.items {
		total += st.Population
	}
	return total
}
