package scenario

import (
	"fmt"

	"sonarsim/internal/contact"
)

// ValidationError names the exact field that failed and why. Scenario
// validation failures are fatal to scenario load.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("scenario validation: %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks structural requirements: ids present and unique, placement
// given exactly one way, enumerations valid, and procedural ranges ordered.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return invalid("id", "scenario id is required")
	}
	seen := make(map[string]int, len(d.CoreTargets))
	for i, t := range d.CoreTargets {
		field := fmt.Sprintf("core_targets[%d]", i)
		if t.ID == "" {
			return invalid(field+".id", "target id is required")
		}
		if prev, dup := seen[t.ID]; dup {
			return invalid(field+".id", "duplicate id %q (first used at core_targets[%d])", t.ID, prev)
		}
		seen[t.ID] = i
		if !validType(t.Type) {
			return invalid(field+".type", "unknown type %q", t.Type)
		}
		cartesian := t.X != nil && t.Z != nil
		polar := t.Distance != nil && t.BearingDeg != nil
		if cartesian == polar {
			return invalid(field, "exactly one of cartesian (x, z) or polar (distance, bearing_deg) placement is required")
		}
		if t.Distance != nil && *t.Distance < 0 {
			return invalid(field+".distance", "must be non-negative, got %v", *t.Distance)
		}
		if t.Speed != nil && *t.Speed < 0 {
			return invalid(field+".speed", "must be non-negative, got %v", *t.Speed)
		}
		if t.ClassID != "" {
			if _, ok := contact.ProfileFor(t.ClassID); !ok {
				return invalid(field+".class_id", "unknown class %q", t.ClassID)
			}
		}
	}
	if p := d.Procedural; p != nil {
		if p.Count < 0 {
			return invalid("procedural.count", "must be non-negative, got %d", p.Count)
		}
		if p.Count > 0 && len(p.Types) == 0 {
			return invalid("procedural.types", "at least one weighted type is required")
		}
		for i, tw := range p.Types {
			field := fmt.Sprintf("procedural.types[%d]", i)
			if !validType(tw.Type) {
				return invalid(field+".type", "unknown type %q", tw.Type)
			}
			if tw.Weight <= 0 {
				return invalid(field+".weight", "must be positive, got %v", tw.Weight)
			}
		}
		ranges := []struct {
			field string
			r     Range
		}{
			{"procedural.distance", p.Distance},
			{"procedural.angle_rad", p.AngleRad},
			{"procedural.speed", p.Speed},
			{"procedural.rpm", p.RPM},
		}
		for _, rr := range ranges {
			if rr.r.Max <= rr.r.Min {
				return invalid(rr.field, "max (%v) must exceed min (%v)", rr.r.Max, rr.r.Min)
			}
		}
		if p.BladeCount.Max < p.BladeCount.Min {
			return invalid("procedural.blade_count", "max (%d) must not be below min (%d)", p.BladeCount.Max, p.BladeCount.Min)
		}
	}
	return nil
}

func validType(t contact.Type) bool {
	for _, v := range contact.ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}
