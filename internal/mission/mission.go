// Package mission scores declarative mission objectives against the live
// simulation state each tick.
package mission

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sonarsim/internal/contact"
)

// ObjectiveKind names the condition an objective waits for.
type ObjectiveKind string

const (
	// KindTrackContacts is satisfied while at least Count contacts are
	// in the TRACKED state.
	KindTrackContacts ObjectiveKind = "track_contacts"
	// KindConfirmClassification requires a confirmed classification of a
	// contact of TargetType.
	KindConfirmClassification ObjectiveKind = "confirm_classification"
	// KindManualSolution requires a recorded firing solution at or above
	// MinConfidence (percent).
	KindManualSolution ObjectiveKind = "manual_solution"
	// KindEnvironmentAdvantage requires a positive environmental SNR
	// modifier on the currently selected contact.
	KindEnvironmentAdvantage ObjectiveKind = "environment_advantage"
)

// Objective is one completion condition.
type Objective struct {
	ID            string        `yaml:"id"`
	Kind          ObjectiveKind `yaml:"kind"`
	Description   string        `yaml:"description,omitempty"`
	Count         int           `yaml:"count,omitempty"`
	TargetType    contact.Type  `yaml:"target_type,omitempty"`
	MinConfidence float64       `yaml:"min_confidence,omitempty"`
}

// Mission is a named set of objectives; it completes when every objective
// has been met at least once.
type Mission struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Objectives  []Objective `yaml:"objectives"`
}

// Load reads a YAML mission definition.
func Load(path string) (*Mission, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mission: %w", err)
	}
	var m Mission
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse mission: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Mission) validate() error {
	if m.Name == "" {
		return fmt.Errorf("mission: name is required")
	}
	seen := make(map[string]bool, len(m.Objectives))
	for i, o := range m.Objectives {
		if o.ID == "" {
			return fmt.Errorf("mission: objectives[%d].id is required", i)
		}
		if seen[o.ID] {
			return fmt.Errorf("mission: duplicate objective id %q", o.ID)
		}
		seen[o.ID] = true
		switch o.Kind {
		case KindTrackContacts, KindConfirmClassification, KindManualSolution, KindEnvironmentAdvantage:
		default:
			return fmt.Errorf("mission: objectives[%d].kind: unknown kind %q", i, o.Kind)
		}
	}
	return nil
}
