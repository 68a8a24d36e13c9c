package sim

import (
	"testing"
	"time"

	"sonarsim/internal/contact"
	"sonarsim/internal/sonar"
)

func TestSplitEndpoint(t *testing.T) {
	cases := []struct {
		endpoint string
		host     string
		port     int
	}{
		{"greptime.local:4001", "greptime.local", 4001},
		{"127.0.0.1:4001", "127.0.0.1", 4001},
		{"greptime.local", "greptime.local", 0},
		{"greptime.local:abc", "greptime.local", 0},
	}
	for _, c := range cases {
		host, port := splitEndpoint(c.endpoint)
		if host != c.host || port != c.port {
			t.Errorf("splitEndpoint(%q) = (%q, %d), want (%q, %d)",
				c.endpoint, host, port, c.host, c.port)
		}
	}
}

func TestBuildTrackTable(t *testing.T) {
	rows := []contact.TrackRow{
		{
			RunID: "r1", ScenarioID: "s1", TargetID: "t1",
			Type: contact.TypeShip, X: 1, Z: 2, CourseRad: 0.5, SpeedU: 0.6,
			BearingDeg: 90, DistanceU: 10, SNRDb: 42,
			Track: contact.TrackTracked, ClassState: contact.ClassAmbiguous,
			ClassProgress: 0.3, Behavior: contact.BehaviorNormal,
			Timestamp: time.Now().UTC(),
		},
		{
			RunID: "r1", ScenarioID: "s1", TargetID: "t2",
			Type: contact.TypeSubmarine, Track: contact.TrackUndetected,
			ClassState: contact.ClassUndetected, Behavior: contact.BehaviorNormal,
			Timestamp: time.Now().UTC(),
		},
	}
	tbl, err := buildTrackTable("sonar_tracks_test", rows)
	if err != nil {
		t.Fatalf("buildTrackTable: %v", err)
	}
	if tbl == nil {
		t.Fatal("nil table")
	}
}

func TestBuildEventTable(t *testing.T) {
	rows := []sonar.EventRow{
		{
			RunID: "r1", Kind: sonar.EventEcho, TargetID: "t1",
			PulseID: "p1", Volume: 0.8, Distance: 12, Radius: 15,
			Timestamp: time.Now().UTC(),
		},
		{
			RunID: "r1", Kind: sonar.EventScanComplete, PulseID: "p1",
			Timestamp: time.Now().UTC(),
		},
	}
	tbl, err := buildEventTable("sonar_events_test", rows)
	if err != nil {
		t.Fatalf("buildEventTable: %v", err)
	}
	if tbl == nil {
		t.Fatal("nil table")
	}
}
