package plan

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/de-tools/survey-atlas/pkg/models/store"
)

var (
	ErrPlanNotFound = errors.New("plan not found")
	ErrPlanExists   = errors.New("plan already exists")
)

// Store keeps stratification plans for the lifetime of the process.
type Store interface {
	ListPlans(ctx context.Context) ([]*store.Plan, error)
	GetPlan(ctx context.Context, id string) (*store.Plan, error)
	CreatePlan(ctx context.Context, plan *store.Plan) error
	// UpdatePlan applies fn to a copy of the plan and saves the copy if fn
	// returns nil. Updates of the same plan are serialized.
	UpdatePlan(ctx context.Context, id string, fn func(plan *store.Plan) error) (*store.Plan, error)
	DeletePlan(ctx context.Context, id string) error
}

type memoryStore struct {
	mu    sync.RWMutex
	plans map[string]*store.Plan
	now   func() time.Time
}

func NewStore() Store {
	return &memoryStore{
		plans: make(map[string]*store.Plan),
		now:   time.Now,
	}
}

func (s *memoryStore) ListPlans(_ context.Context) ([]*store.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plans := make([]*store.Plan, 0, len(s.plans))
	for _, p := range s.plans {
		plans = append(plans, clonePlan(p))
	}
	sort.Slice(plans, func(i, j int) bool {
		if plans[i].CreatedAt.Equal(plans[j].CreatedAt) {
			return plans[i].ID < plans[j].ID
		}
		return plans[i].CreatedAt.Before(plans[j].CreatedAt)
	})
	return plans, nil
}

func (s *memoryStore) GetPlan(_ context.Context, id string) (*store.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.plans[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	return clonePlan(p), nil
}

func (s *memoryStore) CreatePlan(_ context.Context, plan *store.Plan) error {
	if plan == nil || plan.ID == "" {
		return fmt.Errorf("plan must have an id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.plans[plan.ID]; exists {
		return fmt.Errorf("%w: %s", ErrPlanExists, plan.ID)
	}

	saved := clonePlan(plan)
	now := s.now()
	saved.CreatedAt = now
	saved.UpdatedAt = now
	s.plans[plan.ID] = saved

	plan.CreatedAt = now
	plan.UpdatedAt = now
	return nil
}

func (s *memoryStore) UpdatePlan(
	_ context.Context,
	id string,
	fn func(plan *store.Plan) error,
) (*store.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.plans[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}

	next := clonePlan(current)
	if err := fn(next); err != nil {
		return nil, err
	}
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = s.now()
	s.plans[id] = next

	return clonePlan(next), nil
}

func (s *memoryStore) DeletePlan(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plans[id]; !ok {
		return fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	delete(s.plans, id)
	return nil
}

func clonePlan(p *store.Plan) *store.Plan {
	c := *p
	c.Strata = slices.Clone(p.Strata)
	return &c
}
