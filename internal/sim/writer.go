package sim

import (
	"sonarsim/internal/contact"
	"sonarsim/internal/sonar"
)

// TrackWriter receives the per-tick contact state rows.
type TrackWriter interface {
	WriteTrack(contact.TrackRow) error
}

// EventWriter receives detection events (contacts, echoes, scan progress).
type EventWriter interface {
	WriteEvent(sonar.EventRow) error
}

// Optional: track writers may support batch mode.
type batchTrackWriter interface {
	WriteTracks([]contact.TrackRow) error
}

// Optional: event writers may support batch mode.
type batchEventWriter interface {
	WriteEvents([]sonar.EventRow) error
}
