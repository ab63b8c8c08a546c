package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/symcore/internal/logging"
	"github.com/wildfunctions/symcore/pkg/expr"
	"github.com/wildfunctions/symcore/pkg/property"
)

const noY = "test-no-y"

func init() {
	property.Register(property.Property{
		Name:        noY,
		Description: "fails whenever the first tree mentions y",
		Check: func(c *property.Case) error {
			if expr.ContainsSymbol(c.A, expr.Sym("y")) {
				return &property.Violation{Property: noY, Input: c.A.String(), Want: "no y", Got: "y"}
			}
			return nil
		},
	})
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Pool = "conservative"
	cfg.Strategy = "tournament"
	cfg.Population = 20
	cfg.Generations = 5
	cfg.Seed = 42
	cfg.Workers = 4
	cfg.ShrinkSteps = 50
	return cfg
}

func newEngine(t *testing.T, cfg Config) (*Engine, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	e, err := New(cfg, WithLogger(logging.NewNop()), WithRegisterer(reg))
	require.NoError(t, err)
	return e, reg
}

func TestEngineSmallRun(t *testing.T) {
	cfg := smallConfig()
	cfg.Properties = []string{
		"idempotence", "canonical-shape", "flattening", "identity", "absorption",
		"coefficient-folding", "value-preservation", "linearity", "copy-on-write",
	}
	e, _ := newEngine(t, cfg)

	report, err := e.Run(context.Background())
	require.NoError(t, err)

	_, err = uuid.Parse(report.RunID)
	assert.NoError(t, err)
	assert.Equal(t, 5, report.Generations)
	assert.Equal(t, 100, report.CasesChecked)
	assert.False(t, report.Cancelled)
	assert.Empty(t, report.Counterexamples)
	assert.NotEmpty(t, report.BestCase)
	assert.Len(t, report.Stats, len(cfg.Properties))
	for name, s := range report.Stats {
		assert.Equal(t, 100, s.Passed+s.Skipped, name)
		assert.Zero(t, s.Failed, name)
	}

	assert.Equal(t, 100.0, testutil.ToFloat64(e.metrics.CasesTotal))
	assert.Equal(t, 5.0, testutil.ToFloat64(e.metrics.GenerationsTotal))
	assert.Equal(t, 100.0, testutil.ToFloat64(e.metrics.PropertyResultsTotal.WithLabelValues("identity", "pass")))
}

func TestEngineRecordsShrunkCounterexamples(t *testing.T) {
	cfg := smallConfig()
	cfg.Properties = []string{noY}
	cfg.Generations = 10
	cfg.MaxFailures = 1
	e, _ := newEngine(t, cfg)

	report, err := e.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, report.Counterexamples)
	assert.LessOrEqual(t, report.Generations, 10)

	cx := report.Counterexamples[0]
	assert.Equal(t, noY, cx.Property)
	assert.Contains(t, cx.Shrunk, "a = y;")
	assert.Contains(t, cx.Detail, noY)
	assert.NotEmpty(t, cx.LaTeX)
	assert.Equal(t, float64(len(report.Counterexamples)), testutil.ToFloat64(e.metrics.CounterexamplesTotal.WithLabelValues(noY)))
}

func TestEngineDeduplicatesCounterexamples(t *testing.T) {
	cfg := smallConfig()
	cfg.Properties = []string{noY}
	cfg.Generations = 3
	e, _ := newEngine(t, cfg)

	report, err := e.Run(context.Background())
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, cx := range report.Counterexamples {
		key := cx.Property + "|" + cx.Shrunk
		assert.False(t, seen[key], "duplicate %s", key)
		seen[key] = true
	}
}

func TestEngineCancelled(t *testing.T) {
	e, _ := newEngine(t, smallConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := e.Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, report.Cancelled)
	assert.Zero(t, report.Generations)
}

func TestEngineRestartsOnStagnation(t *testing.T) {
	cfg := smallConfig()
	cfg.Strategy = "random"
	cfg.Properties = []string{"identity"}
	cfg.Population = 5
	cfg.Generations = 30
	cfg.StagnationLimit = 1
	e, _ := newEngine(t, cfg)

	report, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, report.Generations)
	assert.GreaterOrEqual(t, report.Restarts, 1)
	assert.Equal(t, float64(report.Restarts), testutil.ToFloat64(e.metrics.RestartsTotal))
}

func TestEngineVerboseHistory(t *testing.T) {
	cfg := smallConfig()
	cfg.Verbose = true
	cfg.Properties = []string{"identity"}
	e, _ := newEngine(t, cfg)

	report, err := e.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.History, 5)
	for i, g := range report.History {
		assert.Equal(t, i, g.Generation)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"unknown pool", func(c *Config) { c.Pool = "exotic" }, ErrUnknownPool},
		{"unknown strategy", func(c *Config) { c.Strategy = "annealing" }, ErrUnknownStrategy},
		{"unknown property", func(c *Config) { c.Properties = []string{"commutativity"} }, ErrUnknownProperty},
		{"empty population", func(c *Config) { c.Population = 0 }, ErrInvalidConfig},
		{"bad format", func(c *Config) { c.Format = "xml" }, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig()
			tt.modify(&cfg)
			_, err := New(cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}
