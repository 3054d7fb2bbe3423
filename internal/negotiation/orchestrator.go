package negotiation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"marketcrew/internal/catalog"
	"marketcrew/internal/fault"
	"marketcrew/internal/logging"
	"marketcrew/internal/reasoning"
	"marketcrew/internal/request"
)

// RunSummary describes one finished run for the audit trail.
type RunSummary struct {
	RunID       string        `json:"run_id"`
	ProductID   string        `json:"product_id,omitempty"`
	Outcome     string        `json:"outcome"` // completed, parse, validation, not_found, capability, unexpected
	FailedStage string        `json:"failed_stage,omitempty"`
	Duration    time.Duration `json:"duration_ns"`
}

// Recorder is notified once per finished run. Implementations must not
// block the pipeline on failure.
type Recorder interface {
	Record(ctx context.Context, sum RunSummary)
}

// Orchestrator sequences normalization and the four stages. Stages run
// strictly in order, each consuming the previous stage's text; the first
// error short-circuits the chain.
type Orchestrator struct {
	normalizer *request.Normalizer
	capability reasoning.Capability
	stages     []Stage
	recorder   Recorder
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRecorder attaches a run recorder.
func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

// WithStages replaces the default stage chain. Used by tests.
func WithStages(stages []Stage) Option {
	return func(o *Orchestrator) { o.stages = stages }
}

// New builds an orchestrator over a capability and a catalog store.
func New(capability reasoning.Capability, store catalog.Store, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		normalizer: request.NewNormalizer(capability, store),
		capability: capability,
		stages:     Stages(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run resolves raw input and executes the stage chain. On success the
// final stage's text is returned verbatim. On failure the returned error
// is a tagged fault whose Error() is the terminal user-facing message; no
// stage runs after (or during, for normalization failures) the failure.
func (o *Orchestrator) Run(ctx context.Context, raw interface{}) (string, error) {
	runID := uuid.NewString()
	start := time.Now()

	req, err := o.normalizer.Normalize(ctx, raw)
	if err != nil {
		err = ensureTagged(err)
		logging.Pipeline("run %s rejected during normalization: %v", runID, err)
		o.record(ctx, RunSummary{
			RunID:    runID,
			Outcome:  string(fault.KindOf(err)),
			Duration: time.Since(start),
		})
		return "", err
	}

	prior := ""
	for _, stage := range o.stages {
		stageStart := time.Now()
		out, err := o.capability.Complete(ctx, reasoning.Completion{
			Role:           stage.Role,
			Goal:           stage.Goal,
			Backstory:      stage.Backstory,
			Task:           stage.Prompt(req, prior),
			ExpectedOutput: stage.ExpectedOutput,
		})
		if err != nil {
			ferr := fault.Capability(stage.Name, err)
			logging.Pipeline("run %s failed at stage %s after %s: %v",
				runID, stage.Name, time.Since(stageStart), err)
			o.record(ctx, RunSummary{
				RunID:       runID,
				ProductID:   req.ProductID,
				Outcome:     string(fault.KindCapability),
				FailedStage: stage.Name,
				Duration:    time.Since(start),
			})
			return "", ferr
		}
		logging.PipelineDebug("run %s stage %s done in %s (%d bytes)",
			runID, stage.Name, time.Since(stageStart), len(out))
		prior = out
	}

	logging.Pipeline("run %s completed in %s", runID, time.Since(start))
	o.record(ctx, RunSummary{
		RunID:     runID,
		ProductID: req.ProductID,
		Outcome:   "completed",
		Duration:  time.Since(start),
	})
	return prior, nil
}

func (o *Orchestrator) record(ctx context.Context, sum RunSummary) {
	if o.recorder != nil {
		o.recorder.Record(ctx, sum)
	}
}

// ensureTagged guarantees the error carries a fault kind.
func ensureTagged(err error) error {
	var fe *fault.Error
	if errors.As(err, &fe) {
		return err
	}
	return fault.Unexpected("normalization failed", err)
}
