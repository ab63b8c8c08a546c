package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/wildfunctions/symcore/pkg/pool"
	"github.com/wildfunctions/symcore/pkg/property"
	"github.com/wildfunctions/symcore/pkg/strategy"
)

var tracer = otel.Tracer("symcore.engine")

// Engine runs the property soak: a strategy evolves cases toward property
// failures and every failure is shrunk into a counterexample.
type Engine struct {
	cfg      Config
	pool     pool.Pool
	strategy strategy.Strategy
	props    []property.Property
	byName   map[string]property.Property
	rng      *rand.Rand
	seed     int64
	logger   *slog.Logger
	metrics  *Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRegisterer registers the engine's metrics with reg instead of a
// private registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(e *Engine) { e.metrics = NewMetrics(reg) }
}

// New creates a new engine from the given config.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p, err := pool.Get(cfg.Pool)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPool, cfg.Pool, pool.Names())
	}
	s, err := strategy.Get(cfg.Strategy)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownStrategy, cfg.Strategy, strategy.Names())
	}
	props, err := property.Resolve(cfg.Properties)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownProperty, err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	e := &Engine{
		cfg:      cfg,
		pool:     p,
		strategy: s,
		props:    props,
		byName:   make(map[string]property.Property, len(props)),
		rng:      rand.New(rand.NewSource(seed)),
		seed:     seed,
	}
	for _, prop := range props {
		e.byName[prop.Name] = prop
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.metrics == nil {
		e.metrics = NewMetrics(prometheus.NewRegistry())
	}
	return e, nil
}

// Run executes the soak loop and returns the final report. On context
// cancellation it returns the report so far together with the context's
// error.
func (e *Engine) Run(ctx context.Context) (Report, error) {
	runID := uuid.NewString()
	ctx, span := tracer.Start(ctx, "engine.Run",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.String("pool", e.cfg.Pool),
			attribute.String("strategy", e.cfg.Strategy),
			attribute.Int64("seed", e.seed),
		),
	)
	defer span.End()

	logger := e.logger.With(slog.String("run_id", runID))
	logger.Info("soak started",
		slog.String("pool", e.cfg.Pool),
		slog.String("strategy", e.cfg.Strategy),
		slog.Int("properties", len(e.props)),
		slog.Int("population", e.cfg.Population),
		slog.Int("generations", e.cfg.Generations),
		slog.Int("workers", e.cfg.Workers),
		slog.Int64("seed", e.seed),
	)

	r := &run{
		Engine: e,
		logger: logger,
		report: Report{
			RunID:     runID,
			Config:    e.cfg,
			Seed:      e.seed,
			StartedAt: time.Now().UTC(),
			Stats:     make(map[string]*PropertyStats, len(e.props)),
		},
		seen: map[string]bool{},
	}
	r.report.Config.Seed = e.seed
	for _, p := range e.props {
		r.report.Stats[p.Name] = &PropertyStats{}
	}

	err := r.loop(ctx)
	r.report.FinishedAt = time.Now().UTC()

	if err != nil {
		r.report.Cancelled = true
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn("soak stopped", slog.Any("error", err), slog.Int("generations", r.report.Generations))
	} else {
		span.SetStatus(codes.Ok, "")
		logger.Info("soak completed",
			slog.Int("generations", r.report.Generations),
			slog.Int("cases", r.report.CasesChecked),
			slog.Int("counterexamples", len(r.report.Counterexamples)),
			slog.Duration("duration", r.report.FinishedAt.Sub(r.report.StartedAt)),
		)
	}

	if e.cfg.OutDir != "" {
		if werr := WriteArtifacts(e.cfg.OutDir, r.report, logger); werr != nil {
			logger.Error("writing artifacts", slog.Any("error", werr))
		}
	}
	return r.report, err
}

// run is the state of one Run call.
type run struct {
	*Engine
	logger *slog.Logger
	report Report
	seen   map[string]bool
}

func (r *run) loop(ctx context.Context) error {
	population := r.strategy.Initialize(r.pool, r.rng, r.cfg.Population)
	attempt := 1
	best := property.WorstScore().Combined
	gensSinceImprovement := 0

	unlimited := r.cfg.Generations <= 0
	for gen := 0; unlimited || gen < r.cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		scores, err := r.generation(ctx, gen, attempt, population)
		if err != nil {
			return err
		}

		bestIdx := 0
		for i := range scores {
			if scores[i].Combined > scores[bestIdx].Combined {
				bestIdx = i
			}
		}
		if scores[bestIdx].Combined > best {
			best = scores[bestIdx].Combined
			gensSinceImprovement = 0
			r.report.BestScore = scores[bestIdx]
			r.report.BestCase = population[bestIdx].String()
		} else {
			gensSinceImprovement++
		}

		if r.cfg.MaxFailures > 0 && len(r.report.Counterexamples) >= r.cfg.MaxFailures {
			r.logger.Info("failure budget reached", slog.Int("counterexamples", len(r.report.Counterexamples)))
			return nil
		}

		if r.cfg.StagnationLimit > 0 && gensSinceImprovement >= r.cfg.StagnationLimit {
			r.logger.Info("stagnated, restarting",
				slog.Int("generation", gen),
				slog.Int("attempt", attempt),
				slog.Int("since_improvement", gensSinceImprovement),
			)
			attempt++
			r.report.Restarts++
			r.metrics.RestartsTotal.Inc()
			population = r.strategy.Initialize(r.pool, r.rng, r.cfg.Population)
			best = property.WorstScore().Combined
			gensSinceImprovement = 0
			continue
		}

		population = r.strategy.Evolve(population, scores, r.pool, r.rng)
	}
	return nil
}

// generation checks one population, records its failures and returns the
// case scores.
func (r *run) generation(ctx context.Context, gen, attempt int, population []*property.Case) ([]property.Score, error) {
	ctx, span := tracer.Start(ctx, "engine.generation",
		trace.WithAttributes(
			attribute.Int("generation", gen),
			attribute.Int("attempt", attempt),
			attribute.Int("cases", len(population)),
		),
	)
	defer span.End()
	start := time.Now()

	scores, results, err := r.evaluate(ctx, population)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "context canceled")
		return nil, err
	}

	failing := 0
	var sum float64
	bestIdx := 0
	for i, c := range population {
		sum += scores[i].Combined
		if scores[i].Combined > scores[bestIdx].Combined {
			bestIdx = i
		}
		for _, res := range results[i] {
			r.tally(res)
		}
		failed := property.Failed(results[i])
		if len(failed) > 0 {
			failing++
		}
		for _, res := range failed {
			r.record(ctx, gen, c, res)
		}
	}
	r.report.Generations++
	r.report.CasesChecked += len(population)

	elapsed := time.Since(start)
	r.metrics.GenerationsTotal.Inc()
	r.metrics.BestScore.Set(scores[bestIdx].Combined)
	r.metrics.GenerationDurationSeconds.Observe(elapsed.Seconds())

	gr := GenerationReport{
		Generation: gen,
		Attempt:    attempt,
		BestScore:  scores[bestIdx],
		BestCase:   population[bestIdx].String(),
		AvgScore:   sum / float64(len(population)),
		Failing:    failing,
	}
	if r.cfg.Verbose {
		r.report.History = append(r.report.History, gr)
		r.logger.Info("generation",
			slog.Int("generation", gen),
			slog.Float64("best", gr.BestScore.Combined),
			slog.Float64("avg", gr.AvgScore),
			slog.Int("failing", failing),
			slog.Duration("elapsed", elapsed),
		)
	} else {
		r.logger.Debug("generation", slog.Int("generation", gen), slog.Int("failing", failing))
	}
	span.SetAttributes(attribute.Int("failing", failing))
	return scores, nil
}

// evaluate checks all cases in parallel. Cases may share subtrees.
func (r *run) evaluate(ctx context.Context, population []*property.Case) ([]property.Score, [][]property.Result, error) {
	n := len(population)
	scores := make([]property.Score, n)
	results := make([][]property.Result, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for i, c := range population {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := property.Run(c, r.props)
			results[i] = res
			scores[i] = property.ComputeScore(c, res, r.cfg.Weights)
			r.metrics.CasesTotal.Inc()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return scores, results, nil
}

func (r *run) tally(res property.Result) {
	stats := r.report.Stats[res.Property]
	switch {
	case res.Skipped:
		stats.Skipped++
	case res.Passed:
		stats.Passed++
	default:
		stats.Failed++
	}
	r.metrics.PropertyResultsTotal.WithLabelValues(res.Property, outcome(res.Passed, res.Skipped)).Inc()
}

// record shrinks a failing case for one property and keeps it if the
// shrunk form has not been seen before.
func (r *run) record(ctx context.Context, gen int, c *property.Case, res property.Result) {
	prop, ok := r.byName[res.Property]
	if !ok {
		return
	}
	_, span := tracer.Start(ctx, "engine.shrink",
		trace.WithAttributes(attribute.String("property", prop.Name)),
	)
	defer span.End()

	fails := func(k *property.Case) bool {
		return !property.Run(k, []property.Property{prop})[0].Passed
	}
	shrunk := strategy.ShrinkCase(c, fails, r.cfg.ShrinkSteps)
	key := prop.Name + "|" + shrunk.String()
	if r.seen[key] {
		return
	}
	r.seen[key] = true

	detail := property.Run(shrunk, []property.Property{prop})[0].Detail
	cx := Counterexample{
		Property:   prop.Name,
		Generation: gen,
		Original:   c.String(),
		Shrunk:     shrunk.String(),
		LaTeX:      shrunk.LaTeX(),
		Detail:     detail,
		Seed:       shrunk.Seed,
		NodeCount:  shrunk.NodeCount(),
		Timestamp:  time.Now().UTC(),
	}
	r.report.Counterexamples = append(r.report.Counterexamples, cx)
	r.metrics.CounterexamplesTotal.WithLabelValues(prop.Name).Inc()
	span.SetAttributes(attribute.Int("nodes", cx.NodeCount))
	r.logger.Warn("counterexample",
		slog.String("property", prop.Name),
		slog.Int("generation", gen),
		slog.String("case", cx.Shrunk),
		slog.String("detail", detail),
	)
}
