package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sonarsim/internal/terrain"
)

const schema = `
scenario: string & !=""
seed?: int
tick_seconds?: number & >0
terrain?: {
	kind?: "flat" | "seabed" | "none"
	mean_depth_m?: number & >=0
	relief_m?: number & >=0
	seed?: int
}
sonar?: {
	detection_threshold_db?: number
	unit_scale_m?: number & >0
}
`

func writeFiles(t *testing.T, yamlBody string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "simulation.yaml")
	schemaPath := filepath.Join(dir, "simulation.cue")
	if err := os.WriteFile(cfgPath, []byte(yamlBody), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(schemaPath, []byte(schema), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	return cfgPath, schemaPath
}

func TestLoad_ValidConfig(t *testing.T) {
	cfgPath, schemaPath := writeFiles(t, `
scenario: scenarios/patrol.yaml
seed: 42
tick_seconds: 0.1
terrain:
  kind: flat
  mean_depth_m: 250
sonar:
  detection_threshold_db: 9
`)
	cfg, err := Load(cfgPath, schemaPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 42 || cfg.TickSeconds != 0.1 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Terrain.Kind != "flat" || cfg.Terrain.MeanDepthM != 250 {
		t.Fatalf("unexpected terrain: %+v", cfg.Terrain)
	}
	if cfg.SonarConfig().DetectionThresholdDb != 9 {
		t.Fatalf("sonar override lost: %+v", cfg.SonarConfig())
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfgPath, schemaPath := writeFiles(t, `
scenario: scenarios/patrol.yaml
`)
	cfg, err := Load(cfgPath, schemaPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TickSeconds != 0.1 {
		t.Fatalf("tick default = %v", cfg.TickSeconds)
	}
	if cfg.Seed == 0 {
		t.Fatal("seed default not applied")
	}
	if cfg.Terrain.Kind != "seabed" || cfg.Terrain.MeanDepthM != 300 {
		t.Fatalf("terrain defaults not applied: %+v", cfg.Terrain)
	}
	if cfg.Terrain.Seed != cfg.Seed {
		t.Fatal("terrain seed should follow the run seed")
	}
}

func TestOverrideSeed_FollowsTerrainSeed(t *testing.T) {
	cfgPath, schemaPath := writeFiles(t, `
scenario: scenarios/patrol.yaml
`)
	cfg, err := Load(cfgPath, schemaPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.OverrideSeed(99)
	if cfg.Seed != 99 {
		t.Fatalf("seed = %v, want 99", cfg.Seed)
	}
	// The terrain seed defaulted from the run seed, so the override must
	// carry it along to keep the whole run reproducible.
	if cfg.Terrain.Seed != 99 {
		t.Fatalf("terrain seed = %v, want 99", cfg.Terrain.Seed)
	}
}

func TestOverrideSeed_KeepsPinnedTerrainSeed(t *testing.T) {
	cfgPath, schemaPath := writeFiles(t, `
scenario: scenarios/patrol.yaml
seed: 5
terrain:
  seed: 11
`)
	cfg, err := Load(cfgPath, schemaPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.OverrideSeed(99)
	if cfg.Seed != 99 {
		t.Fatalf("seed = %v, want 99", cfg.Seed)
	}
	if cfg.Terrain.Seed != 11 {
		t.Fatalf("pinned terrain seed overwritten: %v", cfg.Terrain.Seed)
	}

	cfg.OverrideSeed(0)
	if cfg.Seed != 99 {
		t.Fatalf("zero override must be a no-op, seed = %v", cfg.Seed)
	}
}

func TestLoad_SchemaViolation(t *testing.T) {
	cfgPath, schemaPath := writeFiles(t, `
scenario: scenarios/patrol.yaml
tick_seconds: -1
`)
	_, err := Load(cfgPath, schemaPath)
	if err == nil {
		t.Fatal("negative tick must fail validation")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoad_UnknownTerrainKindRejected(t *testing.T) {
	cfgPath, schemaPath := writeFiles(t, `
scenario: scenarios/patrol.yaml
terrain:
  kind: volcano
`)
	if _, err := Load(cfgPath, schemaPath); err == nil {
		t.Fatal("unknown terrain kind must fail validation")
	}
}

func TestTerrainProvider_Kinds(t *testing.T) {
	cfg := &SimulationConfig{Terrain: Terrain{Kind: "none"}}
	if cfg.TerrainProvider() != nil {
		t.Fatal("kind none must yield a nil provider")
	}

	cfg = &SimulationConfig{Terrain: Terrain{Kind: "flat", MeanDepthM: 250}}
	p := cfg.TerrainProvider()
	if _, ok := p.(terrain.Flat); !ok {
		t.Fatalf("expected terrain.Flat, got %T", p)
	}
	if h := p.HeightAt(12, -7); h != -250 {
		t.Fatalf("flat height = %v, want -250", h)
	}

	cfg = &SimulationConfig{Terrain: Terrain{Kind: "seabed", MeanDepthM: 300, ReliefM: 50, Seed: 9}}
	p = cfg.TerrainProvider()
	if _, ok := p.(*terrain.Seabed); !ok {
		t.Fatalf("expected *terrain.Seabed, got %T", p)
	}
}
