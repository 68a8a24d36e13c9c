package mission

import (
	"testing"

	"sonarsim/internal/contact"
)

func trackedTarget(id string, typ contact.Type) *contact.Target {
	t := contact.New(contact.Config{ID: id, Type: typ})
	t.Track = contact.TrackTracked
	return t
}

func TestTracker_TrackContactsObjective(t *testing.T) {
	tr := NewTracker(&Mission{
		Name:       "shakedown",
		Objectives: []Objective{{ID: "track", Kind: KindTrackContacts, Count: 1}},
	})
	tr.Observe(nil, "", 0)
	if tr.Complete() {
		t.Fatal("objective met with no contacts")
	}
	tr.Observe([]*contact.Target{trackedTarget("a", contact.TypeShip)}, "", 0)
	if !tr.Complete() {
		t.Fatal("tracking one contact should satisfy the objective")
	}
}

func TestTracker_ConfirmClassificationObjective(t *testing.T) {
	tr := NewTracker(&Mission{
		Name: "ident",
		Objectives: []Objective{{
			ID: "confirm", Kind: KindConfirmClassification, TargetType: contact.TypeSubmarine,
		}},
	})
	ship := trackedTarget("s1", contact.TypeShip)
	ship.Classification.Confirmed = true
	tr.Observe([]*contact.Target{ship}, "", 0)
	if tr.Complete() {
		t.Fatal("confirmed ship must not satisfy a submarine objective")
	}
	sub := trackedTarget("u1", contact.TypeSubmarine)
	sub.Classification.Confirmed = true
	tr.Observe([]*contact.Target{sub}, "", 0)
	if !tr.Complete() {
		t.Fatal("confirmed submarine should satisfy the objective")
	}
}

func TestTracker_MultiObjectiveMission(t *testing.T) {
	tr := NewTracker(&Mission{
		Name: "full picture",
		Objectives: []Objective{
			{ID: "track3", Kind: KindTrackContacts, Count: 3},
			{ID: "solution", Kind: KindManualSolution, MinConfidence: 70},
			{ID: "env", Kind: KindEnvironmentAdvantage},
		},
	})
	targets := []*contact.Target{
		trackedTarget("a", contact.TypeShip),
		trackedTarget("b", contact.TypeShip),
		trackedTarget("c", contact.TypeSubmarine),
	}
	tr.Observe(targets, "", 0)
	if tr.Complete() {
		t.Fatal("mission complete without solution or env advantage")
	}
	tr.RecordSolution(65)
	tr.Observe(targets, "c", 6)
	if tr.Complete() {
		t.Fatal("solution below confidence floor should not count")
	}
	tr.RecordSolution(75)
	tr.Observe(targets, "c", 6)
	if !tr.Complete() {
		t.Fatalf("mission should be complete: %+v", tr.Statuses())
	}
}

func TestTracker_ObjectivesLatch(t *testing.T) {
	tr := NewTracker(&Mission{
		Name:       "latch",
		Objectives: []Objective{{ID: "track", Kind: KindTrackContacts, Count: 1}},
	})
	tr.Observe([]*contact.Target{trackedTarget("a", contact.TypeShip)}, "", 0)
	tr.Observe(nil, "", 0) // contact lost afterwards
	if !tr.Complete() {
		t.Fatal("met objective must stay met")
	}
}

func TestTracker_EmptyMissionNeverCompletes(t *testing.T) {
	tr := NewTracker(&Mission{Name: "empty"})
	tr.Observe(nil, "", 0)
	if tr.Complete() {
		t.Fatal("mission with no objectives must not report complete")
	}
}
