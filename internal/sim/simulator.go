// Simulator orchestrating contacts, detection, and row output
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"sonarsim/internal/config"
	"sonarsim/internal/contact"
	"sonarsim/internal/logging"
	"sonarsim/internal/mission"
	"sonarsim/internal/ocean"
	"sonarsim/internal/scenario"
	"sonarsim/internal/sonar"
)

// Simulator drives the fixed-timestep loop: advance targets, run detection
// and classification, score mission objectives, and emit rows. All public
// methods are safe for concurrent use; the web layer calls in while the run
// loop ticks.
type Simulator struct {
	runID      string
	scenarioID string
	cfg        *config.SimulationConfig

	engine   *Engine
	detector *sonar.Detector
	targets  []*contact.Target
	tracker  *mission.Tracker

	trackWriter TrackWriter
	eventWriter EventWriter

	logger *slog.Logger
	now    func() time.Time
	mu     sync.Mutex
}

// NewSimulator loads the scenario (and optional mission), builds the target
// set from the shared seeded stream, and wires the detector over the
// configured bathymetry.
func NewSimulator(cfg *config.SimulationConfig, tw TrackWriter, ew EventWriter) (*Simulator, error) {
	def, err := scenario.Load(cfg.ScenarioPath)
	if err != nil {
		return nil, err
	}

	engine := NewEngine(cfg.Seed, cfg.TickSeconds)
	configs, err := scenario.Build(def, engine.RNG())
	if err != nil {
		return nil, err
	}
	targets := make([]*contact.Target, len(configs))
	for i, c := range configs {
		targets[i] = contact.New(c)
	}

	s := &Simulator{
		runID:       uuid.New().String(),
		scenarioID:  def.ID,
		cfg:         cfg,
		engine:      engine,
		detector:    sonar.New(cfg.SonarConfig(), cfg.TerrainProvider()),
		targets:     targets,
		trackWriter: tw,
		eventWriter: ew,
		logger:      slog.Default(),
		now:         time.Now,
	}

	if cfg.MissionPath != "" {
		m, err := mission.Load(cfg.MissionPath)
		if err != nil {
			return nil, fmt.Errorf("load mission: %w", err)
		}
		s.tracker = mission.NewTracker(m)
	}
	return s, nil
}

// RunID identifies this run in every emitted row.
func (s *Simulator) RunID() string { return s.runID }

// ScenarioID is the loaded scenario's identifier.
func (s *Simulator) ScenarioID() string { return s.scenarioID }

// Run starts the tick loop and blocks until ctx is canceled.
func (s *Simulator) Run(ctx context.Context) {
	s.mu.Lock()
	s.logger = logging.FromContext(ctx)
	interval := time.Duration(s.engine.TickSeconds() * float64(time.Second))
	s.engine.Start()
	s.mu.Unlock()

	s.logger.Info("simulation starting",
		"run_id", s.runID,
		"scenario", s.scenarioID,
		"targets", len(s.targets),
		"tick", interval,
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			s.Advance(float64(now.UnixNano()) / 1e6)
		case <-ctx.Done():
			s.mu.Lock()
			s.engine.Stop()
			s.mu.Unlock()
			s.logger.Info("simulation stopped", "run_id", s.runID, "elapsed_s", s.Elapsed())
			return
		}
	}
}

// Advance feeds a wall-clock timestamp (milliseconds) into the engine and
// returns how many fixed ticks ran. Exposed for hosts that drive time
// themselves, such as tests and replays.
func (s *Simulator) Advance(nowMs float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Update(nowMs, s.step)
}

// step is one fixed tick: kinematics, detection, mission scoring, output.
// Targets update in slice order and detection runs after movement, so a run
// is a pure function of (seed, tick count).
func (s *Simulator) step(dt float64) {
	rng := s.engine.RNG()
	for _, t := range s.targets {
		t.Update(dt, rng)
	}

	events := s.detector.Step(s.targets, dt)

	if s.tracker != nil {
		s.tracker.Observe(s.targets, s.detector.Selected(), s.selectedModifier())
	}

	ts := s.now().UTC()
	if len(events) > 0 && s.eventWriter != nil {
		rows := make([]sonar.EventRow, len(events))
		for i, ev := range events {
			rows[i] = ev.Row(s.runID, ts)
		}
		s.writeEvents(rows)
	}

	if s.trackWriter != nil {
		rows := make([]contact.TrackRow, len(s.targets))
		for i, t := range s.targets {
			rows[i] = s.stampRow(t.Row(), ts)
		}
		s.writeTracks(rows)
	}
}

func (s *Simulator) selectedModifier() float64 {
	id := s.detector.Selected()
	if id == "" {
		return 0
	}
	for _, t := range s.targets {
		if t.ID == id {
			return s.detector.ModifierDb(t)
		}
	}
	return 0
}

func (s *Simulator) stampRow(row contact.TrackRow, ts time.Time) contact.TrackRow {
	row.RunID = s.runID
	row.ScenarioID = s.scenarioID
	row.Timestamp = ts
	return row
}

func (s *Simulator) writeTracks(rows []contact.TrackRow) {
	if bw, ok := s.trackWriter.(batchTrackWriter); ok {
		if err := bw.WriteTracks(rows); err != nil {
			s.logger.Error("track batch write failed", "error", err)
		}
		return
	}
	for _, row := range rows {
		if err := s.trackWriter.WriteTrack(row); err != nil {
			s.logger.Error("track write failed", "target", row.TargetID, "error", err)
		}
	}
}

func (s *Simulator) writeEvents(rows []sonar.EventRow) {
	if bw, ok := s.eventWriter.(batchEventWriter); ok {
		if err := bw.WriteEvents(rows); err != nil {
			s.logger.Error("event batch write failed", "error", err)
		}
		return
	}
	for _, row := range rows {
		if err := s.eventWriter.WriteEvent(row); err != nil {
			s.logger.Error("event write failed", "kind", row.Kind, "error", err)
		}
	}
}

// TriggerPing starts an active scan. Returns false while a pulse is already
// in flight.
func (s *Simulator) TriggerPing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.detector.TriggerPing()
	if ok {
		s.logger.Info("active ping", "run_id", s.runID)
	}
	return ok
}

// SetSelected focuses classification effort on one contact id. An empty id
// clears the selection.
func (s *Simulator) SetSelected(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detector.SetSelected(id)
}

// Selected returns the focused contact id.
func (s *Simulator) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detector.Selected()
}

// RecordSolution feeds a manual firing-solution confidence (percent) to the
// mission tracker, if a mission is loaded.
func (s *Simulator) RecordSolution(confidence float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tracker != nil {
		s.tracker.RecordSolution(confidence)
	}
}

// MissionStatuses returns per-objective standings, or nil when no mission is
// loaded.
func (s *Simulator) MissionStatuses() []mission.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tracker == nil {
		return nil
	}
	return s.tracker.Statuses()
}

// MissionComplete reports whether every objective has been met.
func (s *Simulator) MissionComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker != nil && s.tracker.Complete()
}

// Scanning reports whether an active pulse is expanding.
func (s *Simulator) Scanning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detector.Scanning()
}

// ScanRadius is the current pulse radius in grid units.
func (s *Simulator) ScanRadius() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detector.ScanRadius()
}

// Elapsed is the simulated time in seconds.
func (s *Simulator) Elapsed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Elapsed()
}

// Snapshot returns the current state of every contact as stamped track rows.
func (s *Simulator) Snapshot() []contact.TrackRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.now().UTC()
	rows := make([]contact.TrackRow, len(s.targets))
	for i, t := range s.targets {
		rows[i] = s.stampRow(t.Row(), ts)
	}
	return rows
}

// WaterColumn samples the sound velocity profile under own ship for display.
func (s *Simulator) WaterColumn() []ocean.ColumnSample {
	s.mu.Lock()
	defer s.mu.Unlock()
	depth := s.cfg.Terrain.MeanDepthM
	if depth <= 0 {
		depth = s.detector.Config().FallbackDepthM
	}
	return ocean.SampleWaterColumn(depth, 10)
}
