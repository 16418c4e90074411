package presets

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
)

var ErrPresetNotFound = errors.New("preset not found")

// Registry manages named survey scenarios
type Registry interface {
	// Register adds a new preset
	Register(preset domain.Preset) error
	// Get returns the preset with the given name
	Get(name string) (domain.Preset, error)
	// List returns all presets sorted by name
	List() []domain.Preset
}

type registry struct {
	mu      sync.RWMutex
	presets map[string]domain.Preset
}

// NewRegistry creates a registry holding the given presets
func NewRegistry(presets ...domain.Preset) (Registry, error) {
	r := &registry{
		presets: make(map[string]domain.Preset),
	}
	for _, p := range presets {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *registry) Register(preset domain.Preset) error {
	if preset.Name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if preset.Input.MarginOfError <= 0 {
		return fmt.Errorf("preset %q needs a positive margin of error", preset.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.presets[preset.Name]; exists {
		return fmt.Errorf("preset %q is already registered", preset.Name)
	}

	r.presets[preset.Name] = preset
	return nil
}

func (r *registry) Get(name string) (domain.Preset, error) {
	r.mu.RLock()
	p, exists := r.presets[name]
	r.mu.RUnlock()

	if !exists {
		return domain.Preset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	return p, nil
}

func (r *registry) List() []domain.Preset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	presets := make([]domain.Preset, 0, len(r.presets))
	for _, p := range r.presets {
		presets = append(presets, p)
	}
	sort.Slice(presets, func(i, j int) bool {
		return presets[i].Name < presets[j].Name
	})
	return presets
}
