package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dreamforge/metrics"
	"dreamforge/sdruntime"
	"dreamforge/styles"
)

// Runner submits inference work. Satisfied by *scheduler.Scheduler.
type Runner interface {
	Run(ctx context.Context, params sdruntime.GenerateParams) (*sdruntime.GenerateResult, error)
}

// Store persists a completed generation. Satisfied by *store.OutputStore.
// Save fills in the result's StoragePath and ThumbnailPath on success.
type Store interface {
	Save(ctx context.Context, res *Result) error
}

// Service runs the full generation pipeline. It is safe for concurrent
// use; every stage except the Runner call is request-local.
type Service struct {
	validator *Validator
	catalog   *styles.Catalog
	runner    Runner
	store     Store
	recorder  metrics.Recorder
	logger    *zap.Logger
}

// NewService wires the pipeline. store and recorder may be nil, in which
// case results are not persisted and metrics are not collected.
func NewService(catalog *styles.Catalog, runner Runner, store Store, recorder metrics.Recorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		validator: NewValidator(catalog, logger),
		catalog:   catalog,
		runner:    runner,
		store:     store,
		recorder:  recorder,
		logger:    logger,
	}
}

// Generate runs one request through validation, prompt composition,
// inference and persistence.
//
// Errors are returned only for failures that leave nothing to hand back:
// an empty prompt, a cancelled context, a closed scheduler or a failed
// inference. A persistence fault after a successful inference is reported
// in the result's Status instead, with the image bytes intact.
//
// Parameters:
//   - ctx: cancels queue waiting; a generation already on the model runs
//     to completion
//   - req: the raw request; out-of-range values are clamped
//
// Returns:
//   - *Result: the generated image with its concrete seed and metadata
//   - error: validation or inference failure
//
// Example:
//
//	res, err := svc.Generate(ctx, generation.GenerationRequest{
//	    Prompt:  "a lighthouse at dusk",
//	    Style:   "cinematic",
//	    Enhance: true,
//	})
func (s *Service) Generate(ctx context.Context, req GenerationRequest) (*Result, error) {
	correlationID := uuid.New().String()[:8]
	log := s.logger.With(zap.String("correlation_id", correlationID))

	validated, err := s.validator.Validate(req)
	if err != nil {
		log.Warn("Request rejected", zap.Error(err))
		s.record(correlationID, validated, 0, err)
		return nil, err
	}

	preset := s.catalog.Lookup(validated.Style)
	prompt := ComposePrompt(validated, preset)

	log.Info("Generation request accepted",
		zap.String("style", validated.Style),
		zap.Int("width", validated.Width),
		zap.Int("height", validated.Height),
		zap.Int("steps", validated.Steps),
		zap.Int64("seed", validated.Seed))

	start := time.Now()
	genResult, err := s.runner.Run(ctx, sdruntime.GenerateParams{
		Prompt:         prompt.Positive,
		NegativePrompt: prompt.Negative,
		Width:          validated.Width,
		Height:         validated.Height,
		Steps:          validated.Steps,
		CFGScale:       sdruntime.DefaultCFGScale,
		Seed:           validated.Seed,
	})
	elapsed := time.Since(start)
	if err != nil {
		log.Error("Generation failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		s.record(correlationID, validated, elapsed, err)
		return nil, fmt.Errorf("generation: %w", err)
	}

	res := &Result{
		Image:         genResult.ImageData,
		Prompt:        prompt,
		Seed:          genResult.Seed,
		Width:         genResult.Width,
		Height:        genResult.Height,
		Steps:         validated.Steps,
		CreatedAt:     time.Now().UTC(),
		Duration:      elapsed,
		CorrelationID: correlationID,
	}
	res.Status = s.persist(ctx, log, validated, res)

	log.Info("Generation complete",
		zap.Int64("seed", res.Seed),
		zap.Duration("elapsed", elapsed),
		zap.String("saved_path", res.StoragePath))
	validated.Seed = res.Seed // record the concrete seed, not the sentinel
	s.record(correlationID, validated, elapsed, nil)

	return res, nil
}

// persist saves the result and builds the status line. Storage faults are
// soft: the image already cost an inference and is handed back regardless.
func (s *Service) persist(ctx context.Context, log *zap.Logger, validated ValidatedRequest, res *Result) string {
	var notes []string
	if validated.StyleFallback {
		notes = append(notes, fmt.Sprintf("unknown style %q, used %s", validated.RequestedStyle, styles.NoneID))
	}

	switch {
	case s.store == nil:
		notes = append(notes, "generated (persistence disabled)")
	default:
		if err := s.store.Save(ctx, res); err != nil {
			log.Warn("Failed to persist generation", zap.Error(err))
			notes = append(notes, fmt.Sprintf("generated, but saving failed: %v", err))
		} else {
			notes = append(notes, "generated and saved")
		}
	}

	return strings.Join(notes, "; ")
}

func (s *Service) record(correlationID string, validated ValidatedRequest, elapsed time.Duration, genErr error) {
	if s.recorder == nil {
		return
	}
	rec := metrics.GenerationRecord{
		CorrelationID: correlationID,
		Style:         validated.Style,
		Width:         validated.Width,
		Height:        validated.Height,
		Steps:         validated.Steps,
		Seed:          validated.Seed,
		Duration:      elapsed,
		Success:       genErr == nil,
		CreatedAt:     time.Now().UTC(),
	}
	if genErr != nil {
		rec.Error = genErr.Error()
	}
	s.recorder.RecordGeneration(rec)
}
