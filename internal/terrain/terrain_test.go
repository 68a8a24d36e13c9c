package terrain

import "testing"

func TestSeabed_Deterministic(t *testing.T) {
	a := NewSeabed(42, 400, 150)
	b := NewSeabed(42, 400, 150)
	for _, p := range [][2]float64{{0, 0}, {10, -30}, {-250, 480}, {1e4, 1e4}} {
		ha := a.HeightAt(p[0], p[1])
		hb := b.HeightAt(p[0], p[1])
		if ha != hb {
			t.Errorf("HeightAt(%v, %v): %v != %v for identical seeds", p[0], p[1], ha, hb)
		}
	}
}

func TestSeabed_Pure(t *testing.T) {
	s := NewSeabed(7, 400, 150)
	first := s.HeightAt(33, -44)
	for i := 0; i < 10; i++ {
		if got := s.HeightAt(33, -44); got != first {
			t.Fatalf("HeightAt changed between calls: %v != %v", got, first)
		}
	}
}

func TestSeabed_BoundedRelief(t *testing.T) {
	s := NewSeabed(9, 400, 100)
	for x := -500.0; x <= 500; x += 37 {
		for z := -500.0; z <= 500; z += 41 {
			h := s.HeightAt(x, z)
			if h > -300 || h < -500 {
				t.Fatalf("HeightAt(%v, %v) = %v, outside mean±relief", x, z, h)
			}
		}
	}
}

func TestSeabed_SeedsDiffer(t *testing.T) {
	a := NewSeabed(1, 400, 150)
	b := NewSeabed(2, 400, 150)
	same := true
	for x := 0.0; x < 100 && same; x += 13 {
		if a.HeightAt(x, x) != b.HeightAt(x, x) {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical heightfields")
	}
}

func TestFlatAndFunc(t *testing.T) {
	if got := (Flat{Height: -200}).HeightAt(5, 5); got != -200 {
		t.Errorf("Flat.HeightAt = %v, want -200", got)
	}
	f := HeightFunc(func(x, z float64) float64 { return x + z })
	if got := f.HeightAt(2, 3); got != 5 {
		t.Errorf("HeightFunc.HeightAt = %v, want 5", got)
	}
}
