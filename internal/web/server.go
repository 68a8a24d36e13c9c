package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"sonarsim/internal/sim"
)

// Server serves the operator API: state snapshots, the water column, and the
// ping, select, and solution controls.
type Server struct {
	Sim *sim.Simulator
	hub *Hub
	mux *http.ServeMux
}

// NewServer wires the HTTP handlers. hub may be nil when no live push is
// wanted.
func NewServer(simulator *sim.Simulator, hub *Hub) *Server {
	s := &Server{Sim: simulator, hub: hub, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/state", s.handleState)
	s.mux.HandleFunc("/column", s.handleColumn)
	s.mux.HandleFunc("/mission", s.handleMission)
	s.mux.HandleFunc("/ping", s.handlePing)
	s.mux.HandleFunc("/select", s.handleSelect)
	s.mux.HandleFunc("/solution", s.handleSolution)
	if s.hub != nil {
		s.mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
			ServeWs(s.hub, w, r)
		})
	}
}

// ServeHTTP makes the server mountable and testable without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Start runs the HTTP server until ctx is canceled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	return srv.ListenAndServe()
}

type stateResponse struct {
	RunID      string  `json:"run_id"`
	ScenarioID string  `json:"scenario_id"`
	ElapsedS   float64 `json:"elapsed_s"`
	Scanning   bool    `json:"scanning"`
	ScanRadius float64 `json:"scan_radius"`
	Selected   string  `json:"selected,omitempty"`
	Contacts   any     `json:"contacts"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stateResponse{
		RunID:      s.Sim.RunID(),
		ScenarioID: s.Sim.ScenarioID(),
		ElapsedS:   s.Sim.Elapsed(),
		Scanning:   s.Sim.Scanning(),
		ScanRadius: s.Sim.ScanRadius(),
		Selected:   s.Sim.Selected(),
		Contacts:   s.Sim.Snapshot(),
	})
}

func (s *Server) handleColumn(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.WaterColumn())
}

func (s *Server) handleMission(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"complete":   s.Sim.MissionComplete(),
		"objectives": s.Sim.MissionStatuses(),
	})
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	accepted := s.Sim.TriggerPing()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"accepted": accepted})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	s.Sim.SetSelected(r.URL.Query().Get("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSolution(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	conf, err := strconv.ParseFloat(r.URL.Query().Get("confidence"), 64)
	if err != nil || conf < 0 || conf > 100 {
		http.Error(w, "confidence must be 0-100", http.StatusBadRequest)
		return
	}
	s.Sim.RecordSolution(conf)
	w.WriteHeader(http.StatusNoContent)
}
