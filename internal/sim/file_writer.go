package sim

import (
	"encoding/json"
	"os"

	"sonarsim/internal/contact"
	"sonarsim/internal/sonar"
)

// FileWriter writes track and event rows to JSONL files.
type FileWriter struct {
	trackFile *os.File
	eventFile *os.File
	trackEnc  *json.Encoder
	eventEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. eventPath may be empty to skip the
// event log.
func NewFileWriter(trackPath, eventPath string) (*FileWriter, error) {
	tf, err := os.Create(trackPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{trackFile: tf, trackEnc: json.NewEncoder(tf)}
	if eventPath != "" {
		ef, err := os.Create(eventPath)
		if err != nil {
			tf.Close()
			return nil, err
		}
		fw.eventFile = ef
		fw.eventEnc = json.NewEncoder(ef)
	}
	return fw, nil
}

// WriteTrack logs a single track row.
func (f *FileWriter) WriteTrack(row contact.TrackRow) error {
	return f.trackEnc.Encode(row)
}

// WriteTracks logs multiple track rows.
func (f *FileWriter) WriteTracks(rows []contact.TrackRow) error {
	for _, r := range rows {
		if err := f.WriteTrack(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteEvent logs a single event row, if enabled.
func (f *FileWriter) WriteEvent(row sonar.EventRow) error {
	if f.eventEnc == nil {
		return nil
	}
	return f.eventEnc.Encode(row)
}

// WriteEvents logs multiple event rows.
func (f *FileWriter) WriteEvents(rows []sonar.EventRow) error {
	for _, r := range rows {
		if err := f.WriteEvent(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.trackFile != nil {
		if e := f.trackFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.eventFile != nil {
		if e := f.eventFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
