// Package config loads the simulation host configuration from YAML and
// validates it against a CUE schema before anything else starts.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"sonarsim/internal/sonar"
	"sonarsim/internal/terrain"
)

// Terrain selects and tunes the bathymetry under the scenario.
type Terrain struct {
	// Kind is "flat", "seabed", or "none".
	Kind       string  `yaml:"kind"`
	MeanDepthM float64 `yaml:"mean_depth_m"`
	ReliefM    float64 `yaml:"relief_m"`
	Seed       int64   `yaml:"seed"`
}

// Sonar overrides detector tuning; zero values keep the built-in defaults.
type Sonar struct {
	DetectionThresholdDb float64 `yaml:"detection_threshold_db"`
	LostTrackTimeoutS    float64 `yaml:"lost_track_timeout_s"`
	UnitScaleM           float64 `yaml:"unit_scale_m"`
	ScanStepPerTick      float64 `yaml:"scan_step_per_tick"`
	MaxScanRange         float64 `yaml:"max_scan_range"`
	OwnDepthOffsetM      float64 `yaml:"own_depth_offset_m"`
	TargetDepthOffsetM   float64 `yaml:"target_depth_offset_m"`
	FallbackDepthM       float64 `yaml:"fallback_depth_m"`
}

// SimulationConfig is the root configuration: which scenario to run, how
// fast, over what bathymetry, and with what detector tuning.
type SimulationConfig struct {
	ScenarioPath string  `yaml:"scenario"`
	MissionPath  string  `yaml:"mission,omitempty"`
	Seed         int64   `yaml:"seed"`
	TickSeconds  float64 `yaml:"tick_seconds"`
	Terrain      Terrain `yaml:"terrain"`
	Sonar        Sonar   `yaml:"sonar"`
}

// Load reads the YAML config and validates it against the CUE schema.
func Load(configPath, cueSchemaPath string) (*SimulationConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg SimulationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if cfg.ScenarioPath == "" {
		return nil, fmt.Errorf("config: scenario path is required")
	}
	return &cfg, nil
}

func (c *SimulationConfig) applyDefaults() {
	if c.TickSeconds <= 0 {
		c.TickSeconds = 0.1
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.Terrain.Kind == "" {
		c.Terrain.Kind = "seabed"
	}
	if c.Terrain.MeanDepthM == 0 {
		c.Terrain.MeanDepthM = 300
	}
	if c.Terrain.ReliefM == 0 {
		c.Terrain.ReliefM = 120
	}
	if c.Terrain.Seed == 0 {
		c.Terrain.Seed = c.Seed
	}
}

// OverrideSeed replaces the run seed after loading. The terrain seed follows
// unless the config pinned it to a separate value; a zero seed is ignored.
func (c *SimulationConfig) OverrideSeed(seed int64) {
	if seed == 0 {
		return
	}
	if c.Terrain.Seed == c.Seed {
		c.Terrain.Seed = seed
	}
	c.Seed = seed
}

// SonarConfig maps the YAML overrides onto the detector tuning. Fields left
// at zero fall through to the detector defaults.
func (c *SimulationConfig) SonarConfig() sonar.Config {
	return sonar.Config{
		DetectionThresholdDb: c.Sonar.DetectionThresholdDb,
		LostTrackTimeoutS:    c.Sonar.LostTrackTimeoutS,
		UnitScaleM:           c.Sonar.UnitScaleM,
		ScanStepPerTick:      c.Sonar.ScanStepPerTick,
		MaxScanRange:         c.Sonar.MaxScanRange,
		OwnDepthOffsetM:      c.Sonar.OwnDepthOffsetM,
		TargetDepthOffsetM:   c.Sonar.TargetDepthOffsetM,
		FallbackDepthM:       c.Sonar.FallbackDepthM,
	}
}

// TerrainProvider builds the configured bathymetry. "none" returns nil so
// the detector uses its fallback depth.
func (c *SimulationConfig) TerrainProvider() terrain.HeightProvider {
	switch c.Terrain.Kind {
	case "none":
		return nil
	case "flat":
		return terrain.Flat{Height: -c.Terrain.MeanDepthM}
	default:
		return terrain.NewSeabed(c.Terrain.Seed, c.Terrain.MeanDepthM, c.Terrain.ReliefM)
	}
}
