package contact

import (
	"math"
	"math/rand"
)

// Turn behavior per type: how far a scheduled patrol turn may swing the
// course and how long a leg lasts before the next turn is rolled.
type turnProfile struct {
	spreadRad   float64
	minLegS     float64
	maxLegS     float64
	initialLegS float64
}

func turnProfileFor(t Type) turnProfile {
	switch t {
	case TypeBiological:
		return turnProfile{spreadRad: 2.0, minLegS: 4, maxLegS: 10, initialLegS: 6}
	default:
		return turnProfile{spreadRad: 0.8, minLegS: 15, maxLegS: 45, initialLegS: 20}
	}
}

// Target is one moving acoustic contact. Positions are world units relative
// to own ship at the origin, +X east and -Z north. Course is radians with
// 0 pointing east (+X), matching the integration below; compass bearing is
// derived, never stored.
type Target struct {
	ID      string
	Type    Type
	ClassID string

	X            float64
	Z            float64
	Course       float64
	TargetCourse float64
	Speed        float64
	TurnRate     float64

	RPM        float64
	BladeCount int
	ShaftRate  float64
	BioType    string
	BioRate    float64

	PatrolCenterX    float64
	PatrolCenterZ    float64
	PatrolRadius     float64
	Patrolling       bool
	TimeSinceTurn    float64
	NextTurnInterval float64

	SNR            float64
	Track          TrackState
	LastDetectedAt float64
	LastPulseID    int

	Classification Classification
	Behavior       BehaviorState
}

// New builds a runtime target from a normalized configuration. The patrol
// center is fixed at the spawn position.
func New(cfg Config) *Target {
	d := DefaultsFor(cfg.Type)
	patrols := d.Patrols && cfg.PatrolRadius > 0
	return &Target{
		ID:               cfg.ID,
		Type:             cfg.Type,
		ClassID:          cfg.ClassID,
		X:                cfg.X,
		Z:                cfg.Z,
		Course:           normalizeCourse(cfg.Course),
		TargetCourse:     normalizeCourse(cfg.Course),
		Speed:            math.Max(0, cfg.Speed),
		TurnRate:         cfg.TurnRate,
		RPM:              cfg.RPM,
		BladeCount:       cfg.BladeCount,
		ShaftRate:        cfg.ShaftRate,
		BioType:          cfg.BioType,
		BioRate:          cfg.BioRate,
		PatrolCenterX:    cfg.X,
		PatrolCenterZ:    cfg.Z,
		PatrolRadius:     cfg.PatrolRadius,
		Patrolling:       patrols,
		NextTurnInterval: turnProfileFor(cfg.Type).initialLegS,
		Track:            TrackUndetected,
		Classification:   Classification{State: ClassUndetected},
		Behavior:         BehaviorNormal,
	}
}

// Update advances the target by dt seconds: patrol AI, turn-rate limited
// heading control, then Euler position integration. A non-finite or
// non-positive dt leaves the target untouched.
func (t *Target) Update(dt float64, rng *rand.Rand) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return
	}

	if t.Patrolling && rng != nil {
		t.updatePatrol(dt, rng)
	}

	diff := shortestAngle(t.TargetCourse - t.Course)
	step := t.TurnRate * dt
	switch {
	case math.Abs(diff) <= step:
		t.Course = t.TargetCourse
	case diff > 0:
		t.Course = normalizeCourse(t.Course + step)
	default:
		t.Course = normalizeCourse(t.Course - step)
	}

	t.X += math.Cos(t.Course) * t.Speed * dt
	t.Z += math.Sin(t.Course) * t.Speed * dt
}

// updatePatrol steers the target back toward its patrol center when it
// strays past the radius; otherwise it schedules random course changes.
// Boundary correction takes priority over scheduled turns.
func (t *Target) updatePatrol(dt float64, rng *rand.Rand) {
	dx := t.PatrolCenterX - t.X
	dz := t.PatrolCenterZ - t.Z
	if math.Hypot(dx, dz) > t.PatrolRadius {
		t.TargetCourse = normalizeCourse(math.Atan2(dz, dx))
		t.TimeSinceTurn = 0
		return
	}

	t.TimeSinceTurn += dt
	if t.TimeSinceTurn < t.NextTurnInterval {
		return
	}
	p := turnProfileFor(t.Type)
	t.TargetCourse = normalizeCourse(t.Course + (rng.Float64()*2-1)*p.spreadRad)
	t.NextTurnInterval = p.minLegS + rng.Float64()*(p.maxLegS-p.minLegS)
	t.TimeSinceTurn = 0
}

// AcousticSignature returns the source level in dB. Strictly increasing in
// both rpm and speed for a fixed type; the speed term models cavitation and
// flow noise growing super-linearly.
func (t *Target) AcousticSignature() float64 {
	base := 0.0
	switch t.Type {
	case TypeShip:
		base = 135
	case TypeSubmarine:
		base = 118
	case TypeBiological:
		base = 95
	case TypeStatic:
		base = 88
	case TypeTorpedo:
		base = 142
	}
	speed := math.Max(0, t.Speed)
	return base + 0.05*t.RPM + 8*math.Pow(speed, 1.5)
}

// ReactToPing sets the behavior state for a contact illuminated by an active
// pulse. Submarines evade, torpedoes turn in, everything else stays normal.
func (t *Target) ReactToPing() {
	switch t.Type {
	case TypeSubmarine:
		t.Behavior = BehaviorEvade
	case TypeTorpedo:
		t.Behavior = BehaviorIntercept
	default:
		t.Behavior = BehaviorNormal
	}
}

// Distance is the horizontal range from own ship (the origin) in world units.
func (t *Target) Distance() float64 {
	return math.Hypot(t.X, t.Z)
}

// Angle is the math-convention angle of the target from own ship in radians.
func (t *Target) Angle() float64 {
	return math.Atan2(t.Z, t.X)
}

// Bearing is the compass bearing in degrees: 0 north, 90 east, in [0, 360).
func (t *Target) Bearing() float64 {
	deg := t.Angle()*180/math.Pi + 90
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Row snapshots the target into a TrackRow, leaving run metadata and the
// timestamp to the caller.
func (t *Target) Row() TrackRow {
	return TrackRow{
		TargetID:        t.ID,
		Type:            t.Type,
		X:               t.X,
		Z:               t.Z,
		CourseRad:       t.Course,
		SpeedU:          t.Speed,
		BearingDeg:      t.Bearing(),
		DistanceU:       t.Distance(),
		SNRDb:           t.SNR,
		Track:           t.Track,
		ClassState:      t.Classification.State,
		ClassProgress:   t.Classification.Progress,
		IdentifiedClass: t.Classification.IdentifiedClass,
		Confirmed:       t.Classification.Confirmed,
		Behavior:        t.Behavior,
	}
}

// normalizeCourse wraps an angle into [0, 2π).
func normalizeCourse(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// shortestAngle wraps a difference into (-π, π].
func shortestAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
