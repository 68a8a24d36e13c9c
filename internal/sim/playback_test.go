package sim

import (
	"strings"
	"testing"
	"time"
)

func TestReplayLog_ReplaysAllRows(t *testing.T) {
	log := strings.Join([]string{
		`{"run_id":"r1","target_id":"a","x":1,"ts":"2026-01-02T15:04:05Z"}`,
		`{"run_id":"r1","target_id":"b","x":2,"ts":"2026-01-02T15:04:05.1Z"}`,
		`{"run_id":"r1","target_id":"a","x":3,"ts":"2026-01-02T15:04:05.2Z"}`,
	}, "\n")

	w := &memoryWriter{}
	if err := ReplayLog(strings.NewReader(log), w, 0); err != nil {
		t.Fatalf("ReplayLog: %v", err)
	}
	if len(w.tracks) != 3 {
		t.Fatalf("replayed %d rows, want 3", len(w.tracks))
	}
	if w.tracks[2].X != 3 || w.tracks[2].TargetID != "a" {
		t.Fatalf("rows out of order: %+v", w.tracks[2])
	}
}

func TestReplayLog_SpeedSkipsDelays(t *testing.T) {
	log := strings.Join([]string{
		`{"target_id":"a","ts":"2026-01-02T15:04:00Z"}`,
		`{"target_id":"a","ts":"2026-01-02T15:04:10Z"}`,
	}, "\n")

	w := &memoryWriter{}
	start := time.Now()
	if err := ReplayLog(strings.NewReader(log), w, 0); err != nil {
		t.Fatalf("ReplayLog: %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("speed 0 must not sleep between rows")
	}
	if len(w.tracks) != 2 {
		t.Fatalf("replayed %d rows, want 2", len(w.tracks))
	}
}

func TestReplayLog_BadJSONFails(t *testing.T) {
	w := &memoryWriter{}
	if err := ReplayLog(strings.NewReader(`{"target_id":`), w, 0); err == nil {
		t.Fatal("expected a decode error")
	}
}

var _ TrackWriter = (*StdoutWriter)(nil)
var _ EventWriter = (*StdoutWriter)(nil)
var _ TrackWriter = (*TUIWriter)(nil)
var _ EventWriter = (*TUIWriter)(nil)
