package contact

// Defaults carries per-type fallback values applied by the scenario factory
// when a field is neither drawn nor given explicitly. Merge precedence is
// type defaults, then class profile, then explicit fields.
type Defaults struct {
	Speed        float64
	TurnRate     float64
	RPM          float64
	BladeCount   int
	PatrolRadius float64
	Patrols      bool
}

var typeDefaults = map[Type]Defaults{
	TypeShip:       {Speed: 0.6, TurnRate: 0.05, RPM: 120, BladeCount: 4, PatrolRadius: 60, Patrols: true},
	TypeSubmarine:  {Speed: 0.3, TurnRate: 0.08, RPM: 80, BladeCount: 6, PatrolRadius: 45, Patrols: true},
	TypeBiological: {Speed: 0.2, TurnRate: 0.6, RPM: 20, BladeCount: 2, PatrolRadius: 25, Patrols: true},
	TypeStatic:     {Speed: 0, TurnRate: 0, RPM: 0, BladeCount: 2},
	TypeTorpedo:    {Speed: 2.5, TurnRate: 0.5, RPM: 300, BladeCount: 3},
}

// DefaultsFor returns the defaults table entry for a type. Unknown types get
// the ship profile.
func DefaultsFor(t Type) Defaults {
	if d, ok := typeDefaults[t]; ok {
		return d
	}
	return typeDefaults[TypeShip]
}

// ClassProfile describes one entry in the class signature table. Profiles
// refine type defaults for a specific hull class.
type ClassProfile struct {
	ID         string
	Type       Type
	RPM        float64
	BladeCount int
	ShaftRate  float64
}

var classProfiles = map[string]ClassProfile{
	"merchant":      {ID: "merchant", Type: TypeShip, RPM: 90, BladeCount: 4, ShaftRate: 1.5},
	"warship":       {ID: "warship", Type: TypeShip, RPM: 180, BladeCount: 5, ShaftRate: 3.0},
	"diesel-sub":    {ID: "diesel-sub", Type: TypeSubmarine, RPM: 60, BladeCount: 6, ShaftRate: 1.0},
	"nuclear-sub":   {ID: "nuclear-sub", Type: TypeSubmarine, RPM: 110, BladeCount: 7, ShaftRate: 1.8},
	"whale-pod":     {ID: "whale-pod", Type: TypeBiological, RPM: 0, BladeCount: 2},
	"snapping-bank": {ID: "snapping-bank", Type: TypeBiological, RPM: 0, BladeCount: 2},
}

// ProfileFor looks up a class profile by id.
func ProfileFor(classID string) (ClassProfile, bool) {
	p, ok := classProfiles[classID]
	return p, ok
}

// ClassIDsFor returns the class ids valid for a type, in a fixed order so a
// single RNG draw indexes them deterministically.
func ClassIDsFor(t Type) []string {
	switch t {
	case TypeShip:
		return []string{"merchant", "warship"}
	case TypeSubmarine:
		return []string{"diesel-sub", "nuclear-sub"}
	case TypeBiological:
		return []string{"whale-pod", "snapping-bank"}
	default:
		return nil
	}
}

// Clamp limits for acoustic fields applied during normalization.
const (
	MinRPM        = 0.0
	MaxRPM        = 400.0
	MinBladeCount = 2
	MaxBladeCount = 7
	MinShaftRate  = 0.0
	MaxShaftRate  = MaxRPM / 60.0
)
