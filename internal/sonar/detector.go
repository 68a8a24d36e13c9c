// Package sonar implements passive and active detection against the layered
// ocean model, plus the continuous classification channel.
package sonar

import (
	"math"

	"github.com/google/uuid"

	"sonarsim/internal/contact"
	"sonarsim/internal/ocean"
	"sonarsim/internal/terrain"
)

// Config tunes the detection core. Zero values are replaced by defaults in
// New, so hosts only set what they need.
type Config struct {
	DetectionThresholdDb    float64
	LostTrackTimeoutS       float64
	ShadowZoneAttenuationDb float64
	OcclusionAttenuationDb  float64
	LOSSampleCount          int
	MultipathStrengthDb     float64
	MultipathFrequency      float64
	UnitScaleM              float64
	ScanStepPerTick         float64
	MaxScanRange            float64
	OwnDepthOffsetM         float64
	TargetDepthOffsetM      float64
	FallbackDepthM          float64
	FocusedClassifyRate     float64
	BackgroundClassifyRate  float64
	ClassifyDecayRate       float64
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		DetectionThresholdDb:    7,
		LostTrackTimeoutS:       10,
		ShadowZoneAttenuationDb: 15,
		OcclusionAttenuationDb:  25,
		LOSSampleCount:          10,
		MultipathStrengthDb:     3,
		MultipathFrequency:      0.05,
		UnitScaleM:              10,
		ScanStepPerTick:         15,
		MaxScanRange:            150,
		OwnDepthOffsetM:         25,
		TargetDepthOffsetM:      12,
		FallbackDepthM:          150,
		FocusedClassifyRate:     0.06,
		BackgroundClassifyRate:  0.015,
		ClassifyDecayRate:       0.01,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DetectionThresholdDb == 0 {
		c.DetectionThresholdDb = d.DetectionThresholdDb
	}
	if c.LostTrackTimeoutS == 0 {
		c.LostTrackTimeoutS = d.LostTrackTimeoutS
	}
	if c.ShadowZoneAttenuationDb == 0 {
		c.ShadowZoneAttenuationDb = d.ShadowZoneAttenuationDb
	}
	if c.OcclusionAttenuationDb == 0 {
		c.OcclusionAttenuationDb = d.OcclusionAttenuationDb
	}
	if c.LOSSampleCount == 0 {
		c.LOSSampleCount = d.LOSSampleCount
	}
	if c.MultipathStrengthDb == 0 {
		c.MultipathStrengthDb = d.MultipathStrengthDb
	}
	if c.MultipathFrequency == 0 {
		c.MultipathFrequency = d.MultipathFrequency
	}
	if c.UnitScaleM == 0 {
		c.UnitScaleM = d.UnitScaleM
	}
	if c.ScanStepPerTick == 0 {
		c.ScanStepPerTick = d.ScanStepPerTick
	}
	if c.MaxScanRange == 0 {
		c.MaxScanRange = d.MaxScanRange
	}
	if c.OwnDepthOffsetM == 0 {
		c.OwnDepthOffsetM = d.OwnDepthOffsetM
	}
	if c.TargetDepthOffsetM == 0 {
		c.TargetDepthOffsetM = d.TargetDepthOffsetM
	}
	if c.FallbackDepthM == 0 {
		c.FallbackDepthM = d.FallbackDepthM
	}
	if c.FocusedClassifyRate == 0 {
		c.FocusedClassifyRate = d.FocusedClassifyRate
	}
	if c.BackgroundClassifyRate == 0 {
		c.BackgroundClassifyRate = d.BackgroundClassifyRate
	}
	if c.ClassifyDecayRate == 0 {
		c.ClassifyDecayRate = d.ClassifyDecayRate
	}
	return c
}

// Detector runs the per-tick detection and classification pass. Own ship
// sits at the origin; targets carry own-ship-relative coordinates.
type Detector struct {
	cfg     Config
	terrain terrain.HeightProvider

	elapsed    float64
	scanning   bool
	scanRadius float64
	pulseSeq   int
	pulseID    string
	selectedID string
}

// New builds a detector. provider may be nil: depth falls back to a fixed
// constant and line-of-sight defaults to unobstructed.
func New(cfg Config, provider terrain.HeightProvider) *Detector {
	return &Detector{cfg: cfg.withDefaults(), terrain: provider}
}

// Config returns the effective (default-filled) tuning.
func (d *Detector) Config() Config { return d.cfg }

// Elapsed is the accumulated simulation time in seconds.
func (d *Detector) Elapsed() float64 { return d.elapsed }

// Scanning reports whether an active pulse is in flight.
func (d *Detector) Scanning() bool { return d.scanning }

// ScanRadius is the current pulse radius in world units.
func (d *Detector) ScanRadius() float64 { return d.scanRadius }

// SetSelected focuses classification effort on one contact. An empty id
// clears the focus.
func (d *Detector) SetSelected(id string) { d.selectedID = id }

// Selected returns the focused contact id.
func (d *Detector) Selected() string { return d.selectedID }

// TriggerPing launches an active pulse. A scan already in flight makes this
// a no-op and returns false.
func (d *Detector) TriggerPing() bool {
	if d.scanning {
		return false
	}
	d.scanning = true
	d.scanRadius = 0
	d.pulseSeq++
	d.pulseID = uuid.New().String()
	return true
}

// Step runs one detection tick over all targets and returns the ordered
// event batch: passive contacts first, then active-scan events. Track rows
// are the caller's responsibility after Step returns.
func (d *Detector) Step(targets []*contact.Target, dt float64) []Event {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	d.elapsed += dt

	var events []Event
	for _, t := range targets {
		if ev, ok := d.passive(t); ok {
			events = append(events, ev)
		}
	}
	if d.scanning {
		events = append(events, d.stepScan(targets)...)
	}
	for _, t := range targets {
		d.classify(t, dt)
	}
	return events
}

// passive runs the sonar equation for one target and advances its track
// lifecycle. It returns a contact event when the target enters TRACKED.
func (d *Detector) passive(t *contact.Target) (Event, bool) {
	ownDepth := d.depthAt(0, 0, d.cfg.OwnDepthOffsetM)
	targetDepth := d.depthAt(t.X, t.Z, d.cfg.TargetDepthOffsetM)

	distance := t.Distance()
	rangeM := math.Max(1, distance*d.cfg.UnitScaleM)

	snr := t.AcousticSignature() - 20*math.Log10(rangeM) - ocean.AmbientNoise(targetDepth)
	snr += ocean.AcousticModifiers(ownDepth, targetDepth, rangeM).SNRModifierDb
	if ocean.IsThermoclineBetween(ownDepth, targetDepth) {
		snr -= d.cfg.ShadowZoneAttenuationDb
	}
	snr += d.cfg.MultipathStrengthDb * math.Sin(distance*d.cfg.MultipathFrequency)
	if !d.lineOfSight(t) {
		snr -= d.cfg.OcclusionAttenuationDb
	}
	t.SNR = snr

	if snr > d.cfg.DetectionThresholdDb {
		// No precondition on prior state: a LOST contact re-enters
		// TRACKED as soon as SNR recovers.
		wasTracked := t.Track == contact.TrackTracked
		t.Track = contact.TrackTracked
		t.LastDetectedAt = d.elapsed
		if !wasTracked {
			return Event{Kind: EventContact, TargetID: t.ID, Passive: true, Distance: distance}, true
		}
		return Event{}, false
	}
	if t.Track == contact.TrackTracked && d.elapsed-t.LastDetectedAt > d.cfg.LostTrackTimeoutS {
		t.Track = contact.TrackLost
	}
	return Event{}, false
}

// stepScan advances the active pulse by one increment and illuminates
// targets inside the expanding radius.
func (d *Detector) stepScan(targets []*contact.Target) []Event {
	d.scanRadius += d.cfg.ScanStepPerTick
	events := []Event{{Kind: EventScanUpdate, Radius: d.scanRadius, Active: true, PulseID: d.pulseID}}

	for _, t := range targets {
		if t.LastPulseID == d.pulseSeq {
			continue
		}
		if t.Distance() > d.scanRadius {
			continue
		}
		// Blocked targets are skipped without being marked processed, so
		// the same pulse never illuminates them; a later pulse may if
		// geometry changes.
		if !d.lineOfSight(t) {
			continue
		}
		t.LastPulseID = d.pulseSeq
		t.Track = contact.TrackTracked
		t.LastDetectedAt = d.elapsed
		t.ReactToPing()

		ownDepth := d.depthAt(0, 0, d.cfg.OwnDepthOffsetM)
		targetDepth := d.depthAt(t.X, t.Z, d.cfg.TargetDepthOffsetM)
		rangeM := math.Max(1, t.Distance()*d.cfg.UnitScaleM)
		gain := ocean.AcousticModifiers(ownDepth, targetDepth, rangeM).EchoGain

		volume := (1 - t.Distance()/d.cfg.MaxScanRange) * gain
		if volume < 0 {
			volume = 0
		} else if volume > 1 {
			volume = 1
		}
		events = append(events,
			Event{Kind: EventEcho, TargetID: t.ID, Volume: volume, Distance: t.Distance(), PulseID: d.pulseID},
			Event{Kind: EventContact, TargetID: t.ID, Passive: false, Distance: t.Distance(), PulseID: d.pulseID},
		)
	}

	if d.scanRadius > d.cfg.MaxScanRange {
		d.scanning = false
		events = append(events,
			Event{Kind: EventScanComplete, PulseID: d.pulseID},
			Event{Kind: EventScanUpdate, Radius: d.scanRadius, Active: false, PulseID: d.pulseID},
		)
	}
	return events
}

// classify advances the continuous identity channel for one target.
func (d *Detector) classify(t *contact.Target, dt float64) {
	c := &t.Classification
	if t.Track != contact.TrackTracked {
		c.State = contact.ClassUndetected
		c.Progress = 0
		c.IdentifiedClass = ""
		c.Confirmed = false
		return
	}

	if t.SNR > d.cfg.DetectionThresholdDb+2 {
		rate := d.cfg.BackgroundClassifyRate
		if t.ID == d.selectedID {
			rate = d.cfg.FocusedClassifyRate
		}
		c.Progress = math.Min(1, c.Progress+rate*dt)
		switch {
		case c.Progress >= 0.95:
			c.State = contact.ClassConfirmed
			c.Confirmed = true
			if c.IdentifiedClass == "" {
				c.IdentifiedClass = t.ClassID
			}
		case c.Progress >= 0.6:
			c.State = contact.ClassClassified
			c.IdentifiedClass = t.ClassID
		case c.Progress >= 0.2:
			c.State = contact.ClassAmbiguous
		}
		return
	}

	c.Progress = math.Max(0, c.Progress-d.cfg.ClassifyDecayRate*dt)
	if c.Progress < 0.1 {
		c.State = contact.ClassUndetected
	}
}

// ModifierDb exposes the environmental SNR modifier for one target, used by
// the mission layer to score environmental advantage.
func (d *Detector) ModifierDb(t *contact.Target) float64 {
	ownDepth := d.depthAt(0, 0, d.cfg.OwnDepthOffsetM)
	targetDepth := d.depthAt(t.X, t.Z, d.cfg.TargetDepthOffsetM)
	rangeM := math.Max(1, t.Distance()*d.cfg.UnitScaleM)
	return ocean.AcousticModifiers(ownDepth, targetDepth, rangeM).SNRModifierDb
}

// depthAt computes an entity's depth from the seabed height, keeping it
// offset meters above the bottom and never shallower than 1 m. A missing
// terrain provider yields the fixed fallback depth.
func (d *Detector) depthAt(x, z, offset float64) float64 {
	if d.terrain == nil {
		return d.cfg.FallbackDepthM
	}
	return math.Max(1, -d.terrain.HeightAt(x, z)-offset)
}

// lineOfSight samples interpolated points along the straight ray from own
// ship to the target, comparing the linearly interpolated eye line against
// seabed height. Any sample with terrain above the line blocks the path.
// Without a terrain provider the path is open.
func (d *Detector) lineOfSight(t *contact.Target) bool {
	if d.terrain == nil {
		return true
	}
	ownEye := d.terrain.HeightAt(0, 0) + d.cfg.OwnDepthOffsetM
	targetEye := d.terrain.HeightAt(t.X, t.Z) + d.cfg.TargetDepthOffsetM
	n := d.cfg.LOSSampleCount
	for i := 1; i <= n; i++ {
		f := float64(i) / float64(n+1)
		ground := d.terrain.HeightAt(t.X*f, t.Z*f)
		line := ownEye + (targetEye-ownEye)*f
		if ground > line {
			return false
		}
	}
	return true
}
