package sim

import (
	"sonarsim/internal/contact"
	"sonarsim/internal/sonar"
)

// MultiWriter fans track and event rows out to multiple writers.
type MultiWriter struct {
	trackWriters []TrackWriter
	eventWriters []EventWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(tws []TrackWriter, ews []EventWriter) *MultiWriter {
	return &MultiWriter{trackWriters: tws, eventWriters: ews}
}

// WriteTrack sends a track row to all track writers.
func (mw *MultiWriter) WriteTrack(row contact.TrackRow) error {
	for _, w := range mw.trackWriters {
		if err := w.WriteTrack(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteTracks sends multiple track rows to all track writers, using batch
// mode where supported.
func (mw *MultiWriter) WriteTracks(rows []contact.TrackRow) error {
	for _, w := range mw.trackWriters {
		if bw, ok := w.(batchTrackWriter); ok {
			if err := bw.WriteTracks(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteTrack(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteEvent sends an event row to all event writers.
func (mw *MultiWriter) WriteEvent(row sonar.EventRow) error {
	for _, w := range mw.eventWriters {
		if err := w.WriteEvent(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteEvents sends multiple event rows to all event writers, using batch
// mode where supported.
func (mw *MultiWriter) WriteEvents(rows []sonar.EventRow) error {
	for _, w := range mw.eventWriters {
		if bw, ok := w.(batchEventWriter); ok {
			if err := bw.WriteEvents(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteEvent(r); err != nil {
				return err
			}
		}
	}
	return nil
}
