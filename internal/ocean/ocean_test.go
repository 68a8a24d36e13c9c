package ocean

import "testing"

func TestTemperature_IsothermalFloor(t *testing.T) {
	for _, d := range []float64{1000, 1200, 2000, 5000} {
		if got := Temperature(d); got != 4.0 {
			t.Errorf("Temperature(%v) = %v, want 4.0", d, got)
		}
	}
	if got := Temperature(0); got <= 15 {
		t.Errorf("Temperature(0) = %v, want > 15", got)
	}
}

func TestTemperature_MonotoneDecreasing(t *testing.T) {
	prev := Temperature(0)
	for d := 10.0; d <= 2000; d += 10 {
		cur := Temperature(d)
		if cur > prev {
			t.Fatalf("Temperature not monotone at %vm: %v > %v", d, cur, prev)
		}
		prev = cur
	}
}

func TestSoundSpeed_Bounds(t *testing.T) {
	for d := 0.0; d <= 2000; d += 25 {
		c := SoundSpeed(d)
		if c < 1450 || c > 1600 {
			t.Errorf("SoundSpeed(%v) = %v, outside [1450, 1600]", d, c)
		}
	}
}

func TestAmbientNoise_ShallowLouderThanDeep(t *testing.T) {
	if AmbientNoise(10) <= AmbientNoise(1500) {
		t.Errorf("expected shallow noise > deep noise, got %v <= %v",
			AmbientNoise(10), AmbientNoise(1500))
	}
}

func TestIsThermoclineBetween(t *testing.T) {
	cases := []struct {
		a, b float64
		want bool
	}{
		{50, 400, true},
		{400, 50, true}, // symmetric
		{50, 150, false},
		{250, 900, false},
		{200, 400, false}, // boundary is not strictly between
		{199.9, 200.1, true},
	}
	for _, c := range cases {
		if got := IsThermoclineBetween(c.a, c.b); got != c.want {
			t.Errorf("IsThermoclineBetween(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
		if IsThermoclineBetween(c.a, c.b) != IsThermoclineBetween(c.b, c.a) {
			t.Errorf("IsThermoclineBetween(%v, %v) not symmetric", c.a, c.b)
		}
	}
}

func TestIsInSurfaceDuct(t *testing.T) {
	if !IsInSurfaceDuct(10) {
		t.Error("expected 10m to be in the surface duct")
	}
	if IsInSurfaceDuct(120) {
		t.Error("expected 120m to be below the surface duct")
	}
	if IsInSurfaceDuct(-5) {
		t.Error("negative depth must not be in the duct")
	}
}

func TestAcousticModifiers_DuctBonus(t *testing.T) {
	m := AcousticModifiers(20, 30, 5000)
	if m.SNRModifierDb <= 0 {
		t.Errorf("expected positive duct modifier, got %v", m.SNRModifierDb)
	}
	if m.EchoGain <= 1 {
		t.Errorf("expected echo gain > 1 in duct, got %v", m.EchoGain)
	}
	if len(m.Notes) == 0 {
		t.Error("expected a note naming the duct condition")
	}
}

func TestAcousticModifiers_ConvergenceZone(t *testing.T) {
	m := AcousticModifiers(300, 350, 30000)
	if m.SNRModifierDb <= 0 {
		t.Errorf("expected positive CZ modifier at 30km, got %v", m.SNRModifierDb)
	}
	off := AcousticModifiers(300, 350, 15000)
	if off.SNRModifierDb != 0 {
		t.Errorf("expected no modifier between zones, got %v", off.SNRModifierDb)
	}
}

func TestAcousticModifiers_Neutral(t *testing.T) {
	m := AcousticModifiers(300, 350, 4000)
	if m.SNRModifierDb != 0 || m.EchoGain != 1.0 {
		t.Errorf("expected neutral modifiers, got %+v", m)
	}
}

func TestSampleWaterColumn(t *testing.T) {
	samples := SampleWaterColumn(100, 25)
	if len(samples) == 0 {
		t.Fatal("expected samples")
	}
	if samples[0].DepthM != 0 {
		t.Errorf("first sample depth = %v, want 0", samples[0].DepthM)
	}
	last := samples[len(samples)-1]
	if last.DepthM != 100 {
		t.Errorf("last sample depth = %v, want 100", last.DepthM)
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].DepthM <= samples[i-1].DepthM {
			t.Fatalf("samples not strictly ordered at index %d", i)
		}
	}
}

func TestSampleWaterColumn_BadStep(t *testing.T) {
	samples := SampleWaterColumn(50, 0)
	if len(samples) == 0 {
		t.Fatal("expected fallback step to produce samples")
	}
}
