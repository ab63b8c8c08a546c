package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/wildfunctions/symcore/internal/logging"
	"github.com/wildfunctions/symcore/pkg/engine"
	"github.com/wildfunctions/symcore/pkg/pool"
	"github.com/wildfunctions/symcore/pkg/strategy"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a property soak",
	Long: `Runs the soak engine. Settings come from the defaults, then the
--config file, then SYMCORE_* environment variables, then flags.`,
	Args: cobra.NoArgs,
	RunE: runSoak,
}

func init() {
	def := engine.DefaultConfig()
	f := runCmd.Flags()
	f.String("config", "", "YAML or JSON config file")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address (e.g. :2112)")
	f.String("pool", def.Pool, "tree pool ("+strings.Join(pool.Names(), ", ")+")")
	f.String("strategy", def.Strategy, "search strategy ("+strings.Join(strategy.Names(), ", ")+")")
	f.StringSlice("properties", nil, "properties to check (default all)")
	f.Int("population", def.Population, "population size")
	f.Int("generations", def.Generations, "number of generations (0 = until interrupted)")
	f.Int64("seed", def.Seed, "random seed (0 = random)")
	f.Int("workers", def.Workers, "number of parallel workers")
	f.String("format", def.Format, "output format (text, json, latex)")
	f.Bool("verbose", def.Verbose, "report every generation")
	f.Int("stagnation", def.StagnationLimit, "generations without improvement before restart (0 = never)")
	f.Int("max-failures", def.MaxFailures, "stop after this many counterexamples (0 = unlimited)")
	f.Int("shrink-steps", def.ShrinkSteps, "maximum shrink steps per tree")
	f.String("outdir", def.OutDir, "directory for the JSON report and LaTeX counterexamples")

	rootCmd.AddCommand(runCmd)
}

func runSoak(cmd *cobra.Command, args []string) error {
	levelName, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}
	logger := logging.New(level)

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}

	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			logger.Info("starting metrics server", slog.String("addr", addr))
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Error("metrics server", slog.Any("error", err))
			}
		}()
	}

	e, err := engine.New(cfg,
		engine.WithLogger(logger),
		engine.WithRegisterer(prometheus.DefaultRegisterer),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := e.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	w := cmd.OutOrStdout()
	switch cfg.Format {
	case "json":
		if err := engine.WriteJSONFinal(w, report); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}
	case "latex":
		engine.WriteCounterexamplesLatex(w, report)
	default:
		engine.WriteTextFinal(w, report)
	}
	return nil
}

// applyFlags copies explicitly set flags over the loaded config.
func applyFlags(cmd *cobra.Command, cfg *engine.Config) error {
	f := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err == nil && f.Changed(name) {
			err = apply()
		}
	}
	set("pool", func() (e error) { cfg.Pool, e = f.GetString("pool"); return })
	set("strategy", func() (e error) { cfg.Strategy, e = f.GetString("strategy"); return })
	set("properties", func() (e error) { cfg.Properties, e = f.GetStringSlice("properties"); return })
	set("population", func() (e error) { cfg.Population, e = f.GetInt("population"); return })
	set("generations", func() (e error) { cfg.Generations, e = f.GetInt("generations"); return })
	set("seed", func() (e error) { cfg.Seed, e = f.GetInt64("seed"); return })
	set("workers", func() (e error) { cfg.Workers, e = f.GetInt("workers"); return })
	set("format", func() (e error) { cfg.Format, e = f.GetString("format"); return })
	set("verbose", func() (e error) { cfg.Verbose, e = f.GetBool("verbose"); return })
	set("stagnation", func() (e error) { cfg.StagnationLimit, e = f.GetInt("stagnation"); return })
	set("max-failures", func() (e error) { cfg.MaxFailures, e = f.GetInt("max-failures"); return })
	set("shrink-steps", func() (e error) { cfg.ShrinkSteps, e = f.GetInt("shrink-steps"); return })
	set("outdir", func() (e error) { cfg.OutDir, e = f.GetString("outdir"); return })
	if err != nil {
		return err
	}
	return cfg.Validate()
}
