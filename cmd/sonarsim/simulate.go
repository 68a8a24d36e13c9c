package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sonarsim/internal/config"
	"sonarsim/internal/logging"
	"sonarsim/internal/sim"
	"sonarsim/internal/web"
)

var (
	simPrintOnly  bool
	simTUI        bool
	simConfigPath string
	simSchemaPath string
	simLogFile    string
	simHTTPAddr   string
	simSeed       int64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the real-time sonar simulator",
	Long:  "simulate starts the tick loop for the configured scenario and emits track and event rows.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(simConfigPath, simSchemaPath)
		if err != nil {
			return err
		}
		cfg.OverrideSeed(simSeed)

		tw, ew, cleanup, err := newWriters(simPrintOnly, simTUI, simLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		logger := logging.New()
		ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), logger))
		defer cancel()

		var hub *web.Hub
		if simHTTPAddr != "" {
			hub = web.NewHub(logger)
			go hub.Run(ctx)
			tw = sim.NewMultiWriter([]sim.TrackWriter{tw, hub}, nil)
			ew = sim.NewMultiWriter(nil, []sim.EventWriter{ew, hub})
		}

		simulator, err := sim.NewSimulator(cfg, tw, ew)
		if err != nil {
			return err
		}

		if simHTTPAddr != "" {
			srv := web.NewServer(simulator, hub)
			go func() {
				logger.Info("operator API listening", "addr", simHTTPAddr)
				if err := srv.Start(ctx, simHTTPAddr); err != nil && err != http.ErrServerClosed {
					logger.Error("operator API failed", "error", err)
				}
			}()
		}

		go simulator.Run(ctx)

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		cancel()
		logger.Info("sonar simulation stopped", "run_id", simulator.RunID())
		return nil
	},
}

func init() {
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Print rows to STDOUT instead of writing to DB")
	simulateCmd.Flags().BoolVar(&simTUI, "tui", false, "Render the tactical picture in a terminal UI")
	simulateCmd.Flags().StringVar(&simConfigPath, "config", "config/simulation.yaml", "Path to simulation configuration YAML")
	simulateCmd.Flags().StringVar(&simSchemaPath, "schema", "schemas/simulation.cue", "Path to CUE schema file")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Path to export track/event logs (JSONL)")
	simulateCmd.Flags().StringVar(&simHTTPAddr, "http", "", "Serve the operator API on this address (e.g. :8080)")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "Override the configured run seed")
}
