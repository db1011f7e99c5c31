package seed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"pressroom/internal/domain/entity"
	"pressroom/internal/observability/metrics"
	"pressroom/internal/observability/tracing"
	"pressroom/internal/repository"
)

// Result reports one seeding step.
type Result struct {
	Type      entity.Type
	Requested int
	Inserted  int
	Duration  time.Duration
}

// RunStats reports a whole run. Steps holds the completed steps in execution order.
type RunStats struct {
	Steps    []Result
	Duration time.Duration
}

// Inserted returns the total number of rows written by the run.
func (s RunStats) Inserted() int {
	n := 0
	for _, r := range s.Steps {
		n += r.Inserted
	}
	return n
}

// Service truncates and repopulates entity tables with generated records.
// Calls on the same Service are serialized.
type Service struct {
	Registry   *Registry
	Store      repository.SeedStore
	References ReferenceMode
	Logger     *slog.Logger
	// Tracer defaults to the global tracer.
	Tracer trace.Tracer

	mu sync.Mutex
}

// NewService returns a Service using random-digit references.
func NewService(reg *Registry, store repository.SeedStore, logger *slog.Logger) *Service {
	return &Service{
		Registry:   reg,
		Store:      store,
		References: ReferencesRandom,
		Logger:     logger,
	}
}

// Seed replaces every row of t with count freshly generated records.
// Nothing is written when t or count is invalid.
func (s *Service) Seed(ctx context.Context, t entity.Type, count int) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validateStep(t, count); err != nil {
		return Result{Type: t, Requested: count}, err
	}

	ctx, span := s.tracer().Start(ctx, "seed.Seed",
		trace.WithAttributes(attribute.String("seed.entity", t.String()), attribute.Int("seed.count", count)),
	)
	defer span.End()

	res, err := s.step(ctx, Step{Type: t, Count: count}, s.newPicker())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return res, err
}

// Run clears the plan's types in reverse dependency order and then seeds them
// in dependency order. The first failing step aborts the run. Each clear commits
// on its own, so a failed clear leaves the types cleared before it empty.
func (s *Service) Run(ctx context.Context, plan Plan) (RunStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	var stats RunStats

	if err := plan.Validate(); err != nil {
		return stats, err
	}
	steps := plan.Ordered()
	for _, st := range steps {
		if err := s.validateStep(st.Type, st.Count); err != nil {
			return stats, err
		}
	}

	ctx, span := s.tracer().Start(ctx, "seed.Run",
		trace.WithAttributes(attribute.Int("seed.steps", len(steps))),
	)
	defer span.End()

	fail := func(err error) (RunStats, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		stats.Duration = time.Since(start)
		return stats, err
	}

	for i := len(steps) - 1; i >= 0; i-- {
		t := steps[i].Type
		if err := s.truncate(ctx, t); err != nil {
			metrics.RecordSeedFailure(t.String(), string(PhaseTruncate))
			return fail(&StepError{Type: t, Phase: PhaseTruncate, Err: err})
		}
	}

	picker := s.newPicker()
	if pool, ok := picker.(*linkedPool); ok {
		for _, st := range steps {
			pool.reset(st.Type)
		}
	}

	for _, st := range steps {
		res, err := s.step(ctx, st, picker)
		if err != nil {
			return fail(err)
		}
		stats.Steps = append(stats.Steps, res)
	}

	stats.Duration = time.Since(start)
	s.logger().Info("seed run completed",
		slog.Int("steps", len(stats.Steps)),
		slog.Int("inserted", stats.Inserted()),
		slog.Duration("duration", stats.Duration))
	return stats, nil
}

func (s *Service) validateStep(t entity.Type, count int) error {
	if s.Registry == nil || !s.Registry.Has(t) {
		return &StepError{Type: t, Phase: PhaseValidate, Err: fmt.Errorf("%w: %q", entity.ErrInvalidEntityType, t)}
	}
	if count < 0 {
		return &StepError{Type: t, Phase: PhaseValidate, Err: ErrInvalidCount}
	}
	if err := s.Registry.ready(); err != nil {
		return &StepError{Type: t, Phase: PhaseGenerate, Err: err}
	}
	if s.Store == nil {
		return &StepError{Type: t, Phase: PhaseValidate, Err: fmt.Errorf("%w: no store configured", entity.ErrStorageWriteFailed)}
	}
	return nil
}

func (s *Service) newPicker() ReferencePicker {
	if s.References == ReferencesLinked {
		return newLinkedPool(s.Registry.Source())
	}
	return randomDigits{src: s.Registry.Source()}
}

// step truncates st.Type and inserts st.Count generated records.
func (s *Service) step(ctx context.Context, st Step, picker ReferencePicker) (Result, error) {
	res := Result{Type: st.Type, Requested: st.Count}
	start := time.Now()
	log := s.logger().With(slog.String("entity", st.Type.String()), slog.Int("count", st.Count))

	ctx, span := s.tracer().Start(ctx, "seed.step",
		trace.WithAttributes(attribute.String("seed.entity", st.Type.String()), attribute.Int("seed.count", st.Count)),
	)
	defer span.End()

	fail := func(phase Phase, err error) (Result, error) {
		res.Duration = time.Since(start)
		metrics.RecordSeedInserted(st.Type.String(), res.Inserted)
		metrics.RecordSeedFailure(st.Type.String(), string(phase))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error("seed step failed",
			slog.String("phase", string(phase)),
			slog.Int("inserted", res.Inserted),
			slog.Any("error", err))
		return res, &StepError{Type: st.Type, Phase: phase, Inserted: res.Inserted, Err: err}
	}

	pool, linked := picker.(*linkedPool)
	if linked && st.Count > 0 {
		for _, ref := range ReferencedTypes(st.Type) {
			if err := pool.preload(ctx, s.Store, ref); err != nil {
				return fail(PhaseReferences, err)
			}
			if pool.size(ref) == 0 {
				return fail(PhaseReferences, fmt.Errorf("%w: %s", ErrMissingReferences, ref))
			}
		}
	}

	log.Info("seed step started")

	if err := s.truncate(ctx, st.Type); err != nil {
		return fail(PhaseTruncate, err)
	}
	if linked {
		pool.reset(st.Type)
	}

	for i := 0; i < st.Count; i++ {
		if err := ctx.Err(); err != nil {
			return fail(PhaseInsert, err)
		}
		rec, err := s.Registry.Generate(st.Type, picker)
		if err != nil {
			return fail(PhaseGenerate, err)
		}
		id, err := s.Store.Insert(ctx, rec)
		if err != nil {
			return fail(PhaseInsert, storageErr(err))
		}
		res.Inserted++
		if linked {
			pool.remember(st.Type, id)
		}
	}

	res.Duration = time.Since(start)
	metrics.RecordSeedInserted(st.Type.String(), res.Inserted)
	metrics.RecordSeedStepDuration(st.Type.String(), res.Duration)
	span.SetAttributes(attribute.Int("seed.inserted", res.Inserted))
	log.Info("seed step completed",
		slog.Int("inserted", res.Inserted),
		slog.Duration("duration", res.Duration))
	return res, nil
}

// truncate clears t. A failed truncate leaves the table untouched.
func (s *Service) truncate(ctx context.Context, t entity.Type) error {
	if err := s.Store.Truncate(ctx, t); err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func (s *Service) tracer() trace.Tracer {
	if s.Tracer == nil {
		return tracing.GetTracer()
	}
	return s.Tracer
}
