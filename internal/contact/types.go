// Package contact holds the simulated acoustic contacts: their kinematics,
// patrol behavior, acoustic signatures, and track/classification state.
package contact

import (
	"os"
	"time"
)

// Type identifies the kind of contact.
type Type string

const (
	TypeShip       Type = "ship"
	TypeSubmarine  Type = "submarine"
	TypeBiological Type = "biological"
	TypeStatic     Type = "static"
	TypeTorpedo    Type = "torpedo"
)

// ValidTypes lists every contact type the scenario factory accepts.
var ValidTypes = []Type{TypeShip, TypeSubmarine, TypeBiological, TypeStatic, TypeTorpedo}

// TrackState is the detection lifecycle of a contact.
type TrackState string

const (
	TrackUndetected TrackState = "undetected"
	TrackTracked    TrackState = "tracked"
	TrackLost       TrackState = "lost"
)

// ClassState is the identity-certainty lifecycle, distinct from TrackState.
type ClassState string

const (
	ClassUndetected ClassState = "undetected"
	ClassAmbiguous  ClassState = "ambiguous"
	ClassClassified ClassState = "classified"
	ClassConfirmed  ClassState = "confirmed"
)

// BehaviorState is set when a contact reacts to an active ping.
type BehaviorState string

const (
	BehaviorNormal    BehaviorState = "normal"
	BehaviorEvade     BehaviorState = "evade"
	BehaviorIntercept BehaviorState = "intercept"
)

// Classification is the continuous identity channel layered on top of the
// discrete track lifecycle.
type Classification struct {
	State           ClassState `json:"state"`
	Progress        float64    `json:"progress"`
	IdentifiedClass string     `json:"identified_class,omitempty"`
	Confirmed       bool       `json:"confirmed"`
}

// Config is a fully normalized target configuration as produced by the
// scenario factory.
type Config struct {
	ID           string  `json:"id"`
	Type         Type    `json:"type"`
	ClassID      string  `json:"class_id,omitempty"`
	X            float64 `json:"x"`
	Z            float64 `json:"z"`
	Course       float64 `json:"course"`
	Speed        float64 `json:"speed"`
	TurnRate     float64 `json:"turn_rate"`
	RPM          float64 `json:"rpm"`
	BladeCount   int     `json:"blade_count"`
	ShaftRate    float64 `json:"shaft_rate"`
	BioType      string  `json:"bio_type,omitempty"`
	BioRate      float64 `json:"bio_rate,omitempty"`
	PatrolRadius float64 `json:"patrol_radius"`
	Seed         int64   `json:"seed"`
}

// TrackRow is the per-tick state record emitted for every contact after
// detection and classification have run.
type TrackRow struct {
	RunID           string        `json:"run_id"`      // TAG
	ScenarioID      string        `json:"scenario_id"` // TAG
	TargetID        string        `json:"target_id"`   // TAG
	Type            Type          `json:"type"`
	X               float64       `json:"x"`
	Z               float64       `json:"z"`
	CourseRad       float64       `json:"course_rad"`
	SpeedU          float64       `json:"speed_u"`
	BearingDeg      float64       `json:"bearing_deg"`
	DistanceU       float64       `json:"distance_u"`
	SNRDb           float64       `json:"snr_db"`
	Track           TrackState    `json:"track"`
	ClassState      ClassState    `json:"class_state"`
	ClassProgress   float64       `json:"class_progress"`
	IdentifiedClass string        `json:"identified_class,omitempty"`
	Confirmed       bool          `json:"confirmed"`
	Behavior        BehaviorState `json:"behavior"`
	Timestamp       time.Time     `json:"ts"` // TIME INDEX
}

// TrackTableName is the table used when writing rows to GreptimeDB. It
// defaults to "sonar_tracks" but can be overridden via SONARSIM_TRACK_TABLE.
var TrackTableName = func() string {
	if env := os.Getenv("SONARSIM_TRACK_TABLE"); env != "" {
		return env
	}
	return "sonar_tracks"
}()

func (TrackRow) TableName() string {
	return TrackTableName
}
