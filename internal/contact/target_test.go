package contact

import (
	"math"
	"math/rand"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestBearing_CompassConvention(t *testing.T) {
	cases := []struct {
		x, z float64
		want float64
	}{
		{1, 0, 90},
		{0, 1, 180},
		{-1, 0, 270},
		{0, -1, 0},
	}
	for _, c := range cases {
		tgt := &Target{X: c.x, Z: c.z}
		if got := tgt.Bearing(); !almostEqual(got, c.want, 1e-9) {
			t.Errorf("Bearing at (%v, %v) = %v, want %v", c.x, c.z, got, c.want)
		}
	}
}

func TestDerivedGetters(t *testing.T) {
	tgt := &Target{X: 3, Z: 4}
	if got := tgt.Distance(); !almostEqual(got, 5, 1e-12) {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := tgt.Angle(); !almostEqual(got, math.Atan2(4, 3), 1e-12) {
		t.Errorf("Angle = %v, want %v", got, math.Atan2(4, 3))
	}
}

func TestUpdate_TurnRateCap(t *testing.T) {
	tgt := &Target{TurnRate: 1, Course: 0, TargetCourse: math.Pi, Speed: 0}
	tgt.Update(0.5, nil)
	if !almostEqual(tgt.Course, 0.5, 1e-9) {
		t.Errorf("course after one capped turn step = %v, want 0.5", tgt.Course)
	}
}

func TestUpdate_SnapsToTargetCourse(t *testing.T) {
	tgt := &Target{TurnRate: 1, Course: 0.1, TargetCourse: 0.12}
	tgt.Update(0.5, nil)
	if tgt.Course != 0.12 {
		t.Errorf("course = %v, want exact snap to 0.12", tgt.Course)
	}
}

func TestUpdate_PositionIntegration(t *testing.T) {
	tgt := &Target{Course: 0, TargetCourse: 0, Speed: 2}
	tgt.Update(0.1, nil)
	if !almostEqual(tgt.X, 0.2, 1e-12) || !almostEqual(tgt.Z, 0, 1e-12) {
		t.Errorf("position = (%v, %v), want (0.2, 0)", tgt.X, tgt.Z)
	}
}

func TestUpdate_NonFiniteDtIgnored(t *testing.T) {
	tgt := &Target{Course: 1, TargetCourse: 2, Speed: 3, X: 5, Z: 7, TurnRate: 1}
	for _, dt := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -1, 0} {
		tgt.Update(dt, nil)
	}
	if tgt.X != 5 || tgt.Z != 7 || tgt.Course != 1 {
		t.Errorf("state corrupted by bad dt: %+v", tgt)
	}
}

func TestUpdate_PatrolBoundaryCorrection(t *testing.T) {
	tgt := New(Config{ID: "s1", Type: TypeShip, X: 0, Z: 0, Speed: 1, TurnRate: 10, PatrolRadius: 10})
	// Drag it outside the patrol circle.
	tgt.X = 100
	tgt.Z = 0
	rng := rand.New(rand.NewSource(1))
	tgt.Update(0.1, rng)
	// Target course must point back at the center (west of the target).
	if !almostEqual(tgt.TargetCourse, math.Pi, 1e-9) {
		t.Errorf("TargetCourse = %v, want π toward patrol center", tgt.TargetCourse)
	}
}

func TestUpdate_ScheduledTurnConsumesRNG(t *testing.T) {
	mk := func() *Target {
		tgt := New(Config{ID: "b1", Type: TypeBiological, Speed: 0.1, TurnRate: 5, PatrolRadius: 50})
		return tgt
	}
	a, b := mk(), mk()
	ra := rand.New(rand.NewSource(99))
	rb := rand.New(rand.NewSource(99))
	for i := 0; i < 200; i++ {
		a.Update(0.1, ra)
		b.Update(0.1, rb)
	}
	if a.Course != b.Course || a.X != b.X || a.Z != b.Z {
		t.Errorf("identical seeds diverged: (%v,%v,%v) vs (%v,%v,%v)",
			a.X, a.Z, a.Course, b.X, b.Z, b.Course)
	}
	// Biological legs are at most 10s, so 20s of updates must have turned.
	if a.TargetCourse == 0 && a.Course == 0 {
		t.Error("expected at least one scheduled turn over 20s")
	}
}

func TestAcousticSignature_MonotoneInRPMAndSpeed(t *testing.T) {
	lo := &Target{Type: TypeShip, RPM: 60, Speed: 0.2}
	hi := &Target{Type: TypeShip, RPM: 180, Speed: 0.8}
	if lo.AcousticSignature() >= hi.AcousticSignature() {
		t.Errorf("signature not increasing: %v >= %v", lo.AcousticSignature(), hi.AcousticSignature())
	}
	rpmOnly := &Target{Type: TypeShip, RPM: 61, Speed: 0.2}
	if rpmOnly.AcousticSignature() <= lo.AcousticSignature() {
		t.Error("signature not strictly increasing in rpm")
	}
	speedOnly := &Target{Type: TypeShip, RPM: 60, Speed: 0.21}
	if speedOnly.AcousticSignature() <= lo.AcousticSignature() {
		t.Error("signature not strictly increasing in speed")
	}
}

func TestReactToPing(t *testing.T) {
	cases := []struct {
		typ  Type
		want BehaviorState
	}{
		{TypeSubmarine, BehaviorEvade},
		{TypeTorpedo, BehaviorIntercept},
		{TypeShip, BehaviorNormal},
		{TypeBiological, BehaviorNormal},
		{TypeStatic, BehaviorNormal},
	}
	for _, c := range cases {
		tgt := &Target{Type: c.typ}
		tgt.ReactToPing()
		if tgt.Behavior != c.want {
			t.Errorf("ReactToPing for %s: behavior = %s, want %s", c.typ, tgt.Behavior, c.want)
		}
	}
}

func TestNew_PatrolCenterFixedAtSpawn(t *testing.T) {
	tgt := New(Config{ID: "s", Type: TypeSubmarine, X: 12, Z: -8, PatrolRadius: 30})
	if tgt.PatrolCenterX != 12 || tgt.PatrolCenterZ != -8 {
		t.Errorf("patrol center = (%v, %v), want spawn (12, -8)", tgt.PatrolCenterX, tgt.PatrolCenterZ)
	}
	if !tgt.Patrolling {
		t.Error("submarine with a patrol radius should patrol")
	}
	st := New(Config{ID: "buoy", Type: TypeStatic, PatrolRadius: 30})
	if st.Patrolling {
		t.Error("static contact must not patrol")
	}
}

func TestNormalizeCourse(t *testing.T) {
	if got := normalizeCourse(-math.Pi / 2); !almostEqual(got, 3*math.Pi/2, 1e-12) {
		t.Errorf("normalizeCourse(-π/2) = %v", got)
	}
	if got := normalizeCourse(2 * math.Pi); got != 0 {
		t.Errorf("normalizeCourse(2π) = %v, want 0", got)
	}
}
