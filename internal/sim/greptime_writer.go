package sim

import (
	"context"
	"log"
	"net"
	"strconv"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"sonarsim/internal/contact"
	"sonarsim/internal/sonar"
)

// GreptimeDBWriter persists track and event rows via the ingester client.
// Both tables are created automatically on first write.
type GreptimeDBWriter struct {
	client     *greptime.Client
	trackTable string
	eventTable string
}

// NewGreptimeDBWriter creates a writer for an endpoint of the form "host" or
// "host:port".
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	host, port := splitEndpoint(endpoint)
	cfg := greptime.NewConfig(host).WithDatabase(database)
	if port > 0 {
		cfg = cfg.WithPort(port)
	}
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &GreptimeDBWriter{
		client:     client,
		trackTable: contact.TrackTableName,
		eventTable: sonar.EventTableName,
	}, nil
}

// splitEndpoint separates an optional port from the host. A bare host keeps
// the client's default port.
func splitEndpoint(endpoint string) (string, int) {
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		return endpoint, 0
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host, 0
	}
	return host, port
}

// WriteTrack inserts a single track row.
func (w *GreptimeDBWriter) WriteTrack(row contact.TrackRow) error {
	return w.WriteTracks([]contact.TrackRow{row})
}

// WriteTracks inserts multiple track rows.
func (w *GreptimeDBWriter) WriteTracks(rows []contact.TrackRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := buildTrackTable(w.trackTable, rows)
	if err != nil {
		return err
	}
	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Printf("[GreptimeDBWriter] track write failed: %v", err)
		return err
	}
	return nil
}

// WriteEvent inserts a single event row.
func (w *GreptimeDBWriter) WriteEvent(row sonar.EventRow) error {
	return w.WriteEvents([]sonar.EventRow{row})
}

// WriteEvents inserts multiple event rows.
func (w *GreptimeDBWriter) WriteEvents(rows []sonar.EventRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := buildEventTable(w.eventTable, rows)
	if err != nil {
		return err
	}
	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Printf("[GreptimeDBWriter] event write failed: %v", err)
		return err
	}
	return nil
}

// buildTrackTable declares the track schema and appends rows positionally in
// declaration order.
func buildTrackTable(name string, rows []contact.TrackRow) (*table.Table, error) {
	tbl, err := table.New(name)
	if err != nil {
		return nil, err
	}
	if err := tbl.AddTagColumn("run_id", types.STRING); err != nil {
		return nil, err
	}
	if err := tbl.AddTagColumn("scenario_id", types.STRING); err != nil {
		return nil, err
	}
	if err := tbl.AddTagColumn("target_id", types.STRING); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("type", types.STRING); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("x", types.FLOAT64); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("z", types.FLOAT64); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("course_rad", types.FLOAT64); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("speed_u", types.FLOAT64); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("bearing_deg", types.FLOAT64); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("distance_u", types.FLOAT64); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("snr_db", types.FLOAT64); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("track", types.STRING); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("class_state", types.STRING); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("class_progress", types.FLOAT64); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("identified_class", types.STRING); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("confirmed", types.BOOLEAN); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("behavior", types.STRING); err != nil {
		return nil, err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return nil, err
	}

	for _, r := range rows {
		if err := tbl.AddRow(
			r.RunID, r.ScenarioID, r.TargetID,
			string(r.Type), r.X, r.Z, r.CourseRad, r.SpeedU,
			r.BearingDeg, r.DistanceU, r.SNRDb,
			string(r.Track), string(r.ClassState), r.ClassProgress,
			r.IdentifiedClass, r.Confirmed, string(r.Behavior),
			r.Timestamp,
		); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

// buildEventTable declares the event schema and appends rows positionally in
// declaration order.
func buildEventTable(name string, rows []sonar.EventRow) (*table.Table, error) {
	tbl, err := table.New(name)
	if err != nil {
		return nil, err
	}
	if err := tbl.AddTagColumn("run_id", types.STRING); err != nil {
		return nil, err
	}
	if err := tbl.AddTagColumn("kind", types.STRING); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("target_id", types.STRING); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("pulse_id", types.STRING); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("passive", types.BOOLEAN); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("volume", types.FLOAT64); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("distance", types.FLOAT64); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("radius", types.FLOAT64); err != nil {
		return nil, err
	}
	if err := tbl.AddFieldColumn("active", types.BOOLEAN); err != nil {
		return nil, err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return nil, err
	}

	for _, r := range rows {
		if err := tbl.AddRow(
			r.RunID, string(r.Kind), r.TargetID, r.PulseID,
			r.Passive, r.Volume, r.Distance, r.Radius, r.Active,
			r.Timestamp,
		); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}
