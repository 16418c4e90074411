package presets

import (
	"fmt"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/services/formula"
	"gopkg.in/ini.v1"
)

// LoadFile reads presets from an ini file with one section per scenario:
//
//	[panel]
//	title         = Consumer panel
//	confidence    = 0.95
//	error         = 4
//	heterogeneity = 0.5
//	population    = 20000
//
// z may be given instead of confidence. Sections without keys are skipped.
func LoadFile(path string) ([]domain.Preset, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load presets file: %w", err)
	}

	var presets []domain.Preset
	for _, section := range cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		p, err := parseSection(section)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", section.Name(), err)
		}
		presets = append(presets, p)
	}
	return presets, nil
}

func parseSection(section *ini.Section) (domain.Preset, error) {
	p := domain.Preset{
		Name:        section.Name(),
		Title:       section.Key("title").MustString(section.Name()),
		Description: section.Key("description").String(),
	}

	z := formula.Z95
	switch {
	case section.HasKey("z"):
		v, err := section.Key("z").Float64()
		if err != nil {
			return domain.Preset{}, fmt.Errorf("invalid z: %w", err)
		}
		z = v
	case section.HasKey("confidence"):
		level, err := section.Key("confidence").Float64()
		if err != nil {
			return domain.Preset{}, fmt.Errorf("invalid confidence: %w", err)
		}
		z, err = formula.ZForConfidence(level)
		if err != nil {
			return domain.Preset{}, err
		}
	}

	e, err := section.Key("error").Float64()
	if err != nil {
		return domain.Preset{}, fmt.Errorf("invalid error: %w", err)
	}

	p.Input = domain.SampleSizeInput{
		Z:             z,
		P:             section.Key("heterogeneity").MustFloat64(domain.DefaultHeterogeneity),
		MarginOfError: e,
		Population:    section.Key("population").MustInt64(0),
	}
	return p, nil
}

// LoadInto registers every preset in path with r. It stops at the first
// preset r rejects.
func LoadInto(r Registry, path string) error {
	loaded, err := LoadFile(path)
	if err != nil {
		return err
	}
	for _, p := range loaded {
		if err := r.Register(p); err != nil {
			return fmt.Errorf("failed to register preset from %s: %w", path, err)
		}
	}
	return nil
}

// NewRegistryFromFile creates a registry with the stock scenarios followed by
// the ones in path.
func NewRegistryFromFile(path string) (Registry, error) {
	r := NewDefaultRegistry()
	if err := LoadInto(r, path); err != nil {
		return nil, err
	}
	return r, nil
}
