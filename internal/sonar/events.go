package sonar

import (
	"os"
	"time"
)

// EventKind discriminates the events a detection tick can emit.
type EventKind string

const (
	// EventContact fires when a target enters the TRACKED state, passively
	// or under an active pulse.
	EventContact EventKind = "contact"
	// EventEcho fires for each target illuminated by the expanding pulse.
	EventEcho EventKind = "echo"
	// EventScanUpdate reports the pulse radius while a scan runs.
	EventScanUpdate EventKind = "scan_update"
	// EventScanComplete fires once when the pulse passes max range.
	EventScanComplete EventKind = "scan_complete"
)

// Event is one entry in the ordered per-tick batch returned by Step.
// Within a tick, passive contacts come before active-scan events, which come
// before the end-of-tick track rows the simulator writes.
type Event struct {
	Kind     EventKind
	TargetID string
	Passive  bool
	Volume   float64
	Distance float64
	Radius   float64
	Active   bool
	PulseID  string
}

// EventRow is the persisted form of an Event.
type EventRow struct {
	RunID     string    `json:"run_id"` // TAG
	Kind      EventKind `json:"kind"`   // TAG
	TargetID  string    `json:"target_id,omitempty"`
	PulseID   string    `json:"pulse_id,omitempty"`
	Passive   bool      `json:"passive"`
	Volume    float64   `json:"volume"`
	Distance  float64   `json:"distance"`
	Radius    float64   `json:"radius"`
	Active    bool      `json:"active"`
	Timestamp time.Time `json:"ts"` // TIME INDEX
}

// EventTableName is the GreptimeDB table for event rows, overridable via
// SONARSIM_EVENT_TABLE.
var EventTableName = func() string {
	if env := os.Getenv("SONARSIM_EVENT_TABLE"); env != "" {
		return env
	}
	return "sonar_events"
}()

func (EventRow) TableName() string {
	return EventTableName
}

// Row converts an event to its persisted form.
func (e Event) Row(runID string, ts time.Time) EventRow {
	return EventRow{
		RunID:     runID,
		Kind:      e.Kind,
		TargetID:  e.TargetID,
		PulseID:   e.PulseID,
		Passive:   e.Passive,
		Volume:    e.Volume,
		Distance:  e.Distance,
		Radius:    e.Radius,
		Active:    e.Active,
		Timestamp: ts,
	}
}
