package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vastyellowNew/implicit-topology/topoio"
	"github.com/vastyellowNew/implicit-topology/topology"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a computation described by a YAML config file",
	Long: `Runs the implicit topology computation described by a YAML config
file and writes the final snapshot to the output path. An interrupted run
(Ctrl-C) still writes its latest snapshot, which a later invocation can
pick up with --resume.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		outPath, _ := cmd.Flags().GetString("out")
		resumePath, _ := cmd.Flags().GetString("resume")
		metricsAddr, _ := cmd.Flags().GetString("metrics")
		verbose, _ := cmd.Flags().GetBool("verbose")
		return runComputation(cfgPath, outPath, resumePath, metricsAddr, verbose)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "YAML run description (required)")
	runCmd.Flags().StringP("out", "o", "topology.snapshot", "Output snapshot path")
	runCmd.Flags().String("resume", "", "Resume from a previously written snapshot")
	runCmd.Flags().String("metrics", "", "Expose Prometheus metrics on this address (e.g. :9090)")
	_ = runCmd.MarkFlagRequired("config")
}

func runComputation(cfgPath, outPath, resumePath, metricsAddr string, verbose bool) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	f, err := cfg.buildField()
	if err != nil {
		return err
	}
	structures, err := cfg.buildStructures()
	if err != nil {
		return err
	}

	opts := topology.DefaultOptions().WithLogger(logger)
	if opts.Integration, err = cfg.buildIntegration(); err != nil {
		return err
	}
	if metricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts = opts.WithRecorder(topology.NewPromRecorder(reg))
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				logger.Error("metrics listener failed", "addr", metricsAddr, "err", err)
			}
		}()
	}

	var c *topology.Computation
	if resumePath != "" {
		snap, err := topoio.ReadFile(resumePath)
		if err != nil {
			return err
		}
		c, err = topology.NewFromSnapshot(f, structures, snap, opts)
		if err != nil {
			return err
		}
	} else {
		if c, err = topology.New(f, structures, opts); err != nil {
			return err
		}
	}

	if err := c.Start(cfg.buildParams()); err != nil {
		return err
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	var last *topology.Snapshot
	for {
		select {
		case <-interrupt:
			fmt.Fprintln(os.Stderr, "interrupted, writing latest snapshot")
			c.Terminate()
		default:
		}

		snap, ok := c.Poll(250 * time.Millisecond)
		if !ok {
			continue
		}
		last = snap
		if snap.Finished {
			break
		}
	}
	c.Terminate()

	if last.Failure != "" {
		return fmt.Errorf("computation failed: %s", last.Failure)
	}
	if err := topoio.WriteFile(outPath, last); err != nil {
		return err
	}

	both := 0
	for _, ok := range last.Valid(topology.MaskBoth) {
		if ok {
			both++
		}
	}
	_, segments := last.CombinedLabels()
	fmt.Printf("nodes: %d\ntriangles: %d\nsegments: %d\nvalid both ways: %d\nsnapshot: %s\n",
		last.NumNodes(), last.NumTriangles(), segments, both, outPath)
	return nil
}
