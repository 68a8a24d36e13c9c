package main

import (
	"os"

	"sonarsim/internal/sim"
)

// newWriters sets up track and event writers based on flags and env vars.
// It returns the writers and a cleanup function to close any resources.
func newWriters(printOnly, tui bool, logFile string) (sim.TrackWriter, sim.EventWriter, func(), error) {
	cleanup := func() {}

	tw, ew, baseCleanup, err := baseWriters(printOnly, tui)
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup = baseCleanup
	if logFile == "" {
		return tw, ew, cleanup, nil
	}

	fw, err := sim.NewFileWriter(logFile, logFile+".events")
	if err != nil {
		baseCleanup()
		return nil, nil, nil, err
	}
	mw := sim.NewMultiWriter([]sim.TrackWriter{tw, fw}, []sim.EventWriter{ew, fw})
	return mw, mw, func() {
		fw.Close()
		baseCleanup()
	}, nil
}

// baseWriters chooses the underlying writers based on flags and env vars.
func baseWriters(printOnly, tui bool) (sim.TrackWriter, sim.EventWriter, func(), error) {
	if tui {
		w := sim.NewTUIWriter()
		return w, w, func() { w.Close() }, nil
	}
	if printOnly || os.Getenv("GREPTIMEDB_ENDPOINT") == "" {
		w := &sim.StdoutWriter{}
		return w, w, func() {}, nil
	}
	w, err := sim.NewGreptimeDBWriter(os.Getenv("GREPTIMEDB_ENDPOINT"), "public")
	if err != nil {
		return nil, nil, nil, err
	}
	return w, w, func() {}, nil
}

// newTrackWriter creates a track writer without event handling, for replays.
func newTrackWriter(printOnly bool) (sim.TrackWriter, func(), error) {
	tw, _, cleanup, err := baseWriters(printOnly, false)
	return tw, cleanup, err
}
