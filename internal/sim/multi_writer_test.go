package sim

import (
	"testing"

	"sonarsim/internal/contact"
	"sonarsim/internal/sonar"
)

// singleWriter only supports per-row writes, forcing the fallback path.
type singleWriter struct {
	tracks []contact.TrackRow
	events []sonar.EventRow
}

func (s *singleWriter) WriteTrack(row contact.TrackRow) error {
	s.tracks = append(s.tracks, row)
	return nil
}

func (s *singleWriter) WriteEvent(row sonar.EventRow) error {
	s.events = append(s.events, row)
	return nil
}

func TestMultiWriter_FansOutToAllWriters(t *testing.T) {
	a := &memoryWriter{}
	b := &singleWriter{}
	mw := NewMultiWriter([]TrackWriter{a, b}, []EventWriter{a, b})

	rows := []contact.TrackRow{{TargetID: "x"}, {TargetID: "y"}}
	if err := mw.WriteTracks(rows); err != nil {
		t.Fatalf("WriteTracks: %v", err)
	}
	if len(a.tracks) != 2 || len(b.tracks) != 2 {
		t.Fatalf("fan-out incomplete: %d / %d", len(a.tracks), len(b.tracks))
	}
	if a.batches != 1 {
		t.Fatalf("batch-capable writer got %d batch calls, want 1", a.batches)
	}

	if err := mw.WriteEvents([]sonar.EventRow{{Kind: sonar.EventEcho}}); err != nil {
		t.Fatalf("WriteEvents: %v", err)
	}
	if len(a.events) != 1 || len(b.events) != 1 {
		t.Fatalf("event fan-out incomplete: %d / %d", len(a.events), len(b.events))
	}
}
