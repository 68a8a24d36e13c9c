package mission

import "sonarsim/internal/contact"

// Status reports one objective's standing.
type Status struct {
	Objective Objective `json:"objective"`
	Done      bool      `json:"done"`
}

// Tracker evaluates a mission against simulation state. Objectives latch:
// once met they stay met even if the condition later lapses.
type Tracker struct {
	mission            *Mission
	done               map[string]bool
	solutionConfidence float64
}

// NewTracker starts tracking a mission.
func NewTracker(m *Mission) *Tracker {
	return &Tracker{mission: m, done: make(map[string]bool)}
}

// RecordSolution stores the best manual firing-solution confidence seen so
// far, in percent.
func (t *Tracker) RecordSolution(confidence float64) {
	if confidence > t.solutionConfidence {
		t.solutionConfidence = confidence
	}
}

// SolutionConfidence returns the best recorded solution confidence.
func (t *Tracker) SolutionConfidence() float64 { return t.solutionConfidence }

// Observe scores every objective against the current tick: the target list,
// the selected contact id, and the environmental SNR modifier on the
// selected contact.
func (t *Tracker) Observe(targets []*contact.Target, selectedID string, selectedModifierDb float64) {
	tracked := 0
	for _, tgt := range targets {
		if tgt.Track == contact.TrackTracked {
			tracked++
		}
	}
	for _, o := range t.mission.Objectives {
		if t.done[o.ID] {
			continue
		}
		switch o.Kind {
		case KindTrackContacts:
			want := o.Count
			if want <= 0 {
				want = 1
			}
			if tracked >= want {
				t.done[o.ID] = true
			}
		case KindConfirmClassification:
			for _, tgt := range targets {
				if tgt.Classification.Confirmed && (o.TargetType == "" || tgt.Type == o.TargetType) {
					t.done[o.ID] = true
					break
				}
			}
		case KindManualSolution:
			if t.solutionConfidence >= o.MinConfidence {
				t.done[o.ID] = true
			}
		case KindEnvironmentAdvantage:
			if selectedID != "" && selectedModifierDb > 0 {
				t.done[o.ID] = true
			}
		}
	}
}

// Complete reports whether every objective has been met.
func (t *Tracker) Complete() bool {
	for _, o := range t.mission.Objectives {
		if !t.done[o.ID] {
			return false
		}
	}
	return len(t.mission.Objectives) > 0
}

// Statuses lists each objective with its standing, in definition order.
func (t *Tracker) Statuses() []Status {
	out := make([]Status, len(t.mission.Objectives))
	for i, o := range t.mission.Objectives {
		out[i] = Status{Objective: o, Done: t.done[o.ID]}
	}
	return out
}
