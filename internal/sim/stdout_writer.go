// Writer implementation printing rows to STDOUT
package sim

import (
	"encoding/json"
	"fmt"

	"sonarsim/internal/contact"
	"sonarsim/internal/sonar"
)

// StdoutWriter prints track and event rows as JSON lines to STDOUT.
type StdoutWriter struct{}

// WriteTrack outputs a single track row.
func (w *StdoutWriter) WriteTrack(row contact.TrackRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteTracks outputs multiple track rows.
func (w *StdoutWriter) WriteTracks(rows []contact.TrackRow) error {
	for _, r := range rows {
		_ = w.WriteTrack(r)
	}
	return nil
}

// WriteEvent outputs a detection event row.
func (w *StdoutWriter) WriteEvent(row sonar.EventRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteEvents outputs multiple detection event rows.
func (w *StdoutWriter) WriteEvents(rows []sonar.EventRow) error {
	for _, r := range rows {
		_ = w.WriteEvent(r)
	}
	return nil
}
