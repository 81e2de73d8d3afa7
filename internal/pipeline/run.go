// Package pipeline provides the high-level orchestration for the campaign generation process.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/campaign-pipeline/internal/db"
	"github.com/jonathan/campaign-pipeline/internal/extraction"
	"github.com/jonathan/campaign-pipeline/internal/llm"
	"github.com/jonathan/campaign-pipeline/internal/logging"
	"github.com/jonathan/campaign-pipeline/internal/observability"
	"github.com/jonathan/campaign-pipeline/internal/pipeline/steps"
	"github.com/jonathan/campaign-pipeline/internal/prompts"
	"github.com/jonathan/campaign-pipeline/internal/research"
	"github.com/jonathan/campaign-pipeline/internal/types"
)

// Phase is the last stage a run completed successfully
type Phase string

// Phases in the order a run moves through them. A run never moves backwards.
const (
	PhaseInit                Phase = "init"
	PhaseBriefExtracted      Phase = "brief_extracted"
	PhaseResearched          Phase = "researched"
	PhaseBriefSynthesized    Phase = "brief_synthesized"
	PhaseAdCopyGenerated     Phase = "ad_copy_generated"
	PhaseStoryboardGenerated Phase = "storyboard_generated"
	PhaseDone                Phase = "done"
)

// State is everything a run has produced so far. A field is set only after
// its stage succeeded.
type State struct {
	RunID       uuid.UUID
	Phase       Phase
	SampleBrief *types.CampaignBrief
	Research    *types.MarketResearch
	Brief       *types.CampaignBrief
	AdCopy      *types.AdCopyBundle
	Storyboard  string
}

// Input holds the caller-provided inputs of a run
type Input struct {
	Document       llm.Attachment // Source brief document
	Source         string         // Display name of the document; defaults to its URI
	ResearchPrompt string         // Overrides the built-in research questions
	Product        string         // New product details, as prompt text
}

// StageError reports the stage that failed and the phase the run halted in
type StageError struct {
	Stage string
	Phase Phase
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed (halted at %s): %v", e.Stage, e.Phase, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// ArtifactStore persists runs, stage records and stage outputs. *db.DB
// implements it.
type ArtifactStore interface {
	CreateRun(ctx context.Context, runID uuid.UUID, source, model string) error
	CompleteRun(ctx context.Context, runID uuid.UUID, status, phase, errMsg string) error
	StartRunStep(ctx context.Context, runID uuid.UUID, step, category string) error
	FinishRunStep(ctx context.Context, runID uuid.UUID, step, status, errMsg string) error
	SaveArtifact(ctx context.Context, runID uuid.UUID, step, category string, content any) error
	SaveTextArtifact(ctx context.Context, runID uuid.UUID, step, category, text string) error
}

var _ ArtifactStore = (*db.DB)(nil)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Runner executes the campaign stages in order against a single model client
type Runner struct {
	client      llm.Client
	logger      *slog.Logger
	store       ArtifactStore
	onProgress  ProgressCallback
	printer     *observability.Printer
	callTimeout time.Duration
}

// Option configures a Runner
type Option func(*Runner)

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStore enables persistence of run records and stage outputs
func WithStore(store ArtifactStore) Option {
	return func(r *Runner) {
		r.store = store
	}
}

// WithProgress sets the progress callback
func WithProgress(cb ProgressCallback) Option {
	return func(r *Runner) {
		r.onProgress = cb
	}
}

// WithPrinter enables console output of each stage
func WithPrinter(p *observability.Printer) Option {
	return func(r *Runner) {
		r.printer = p
	}
}

// WithCallTimeout bounds each model call; zero means no per-call bound
func WithCallTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.callTimeout = d
	}
}

// New creates a Runner that issues all calls through client
func New(client llm.Client, opts ...Option) *Runner {
	r := &Runner{
		client: client,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// outcome is the result of a successful stage. Nothing reaches State until
// commit is called.
type outcome struct {
	commit   func(st *State)
	artifact any    // JSON artifact; nil for text stages
	text     string // text artifact
	print    func(p *observability.Printer)
}

type stageFunc func(ctx context.Context, st *State, in *Input) (*outcome, error)

func (r *Runner) stages() map[string]stageFunc {
	return map[string]stageFunc{
		steps.ExtractBrief:       r.extractBrief,
		steps.MarketResearch:     r.marketResearch,
		steps.SynthesizeBrief:    r.synthesizeBrief,
		steps.GenerateAdCopy:     r.generateAdCopy,
		steps.GenerateStoryboard: r.generateStoryboard,
	}
}

// Run executes every stage in order. It always returns the state the run
// reached; on failure the error is a *StageError and the state holds only
// the outputs of stages that succeeded.
func (r *Runner) Run(ctx context.Context, in Input) (*State, error) {
	st := &State{RunID: uuid.New(), Phase: PhaseInit}

	if err := validateInput(&in); err != nil {
		return st, err
	}

	logger := r.logger.With("run_id", st.RunID.String())
	store := r.store
	if store != nil {
		if err := store.CreateRun(ctx, st.RunID, in.Source, r.client.Model()); err != nil {
			logger.Warn("artifact store unavailable, continuing without persistence", "error", err)
			store = nil
		}
	}

	if r.printer != nil {
		r.printer.PrintReading(in.Source)
	}

	started := time.Now()
	fns := r.stages()
	defs := steps.Ordered()
	for i, def := range defs {
		if r.printer != nil {
			r.printer.PrintStage(i+1, len(defs), def.Title)
		}
		if err := r.runStage(ctx, logger, store, st, &in, def, fns[def.Name]); err != nil {
			if store != nil {
				if serr := store.CompleteRun(ctx, st.RunID, db.RunStatusFailed, string(st.Phase), err.Error()); serr != nil {
					logger.Warn("failed to record run failure", "error", serr)
				}
			}
			if r.printer != nil {
				r.printer.PrintFailure(def.Name, string(st.Phase), err)
			}
			return st, &StageError{Stage: def.Name, Phase: st.Phase, Err: err}
		}
	}

	st.Phase = PhaseDone
	if store != nil {
		if err := store.CompleteRun(ctx, st.RunID, db.RunStatusCompleted, string(st.Phase), ""); err != nil {
			logger.Warn("failed to record run completion", "error", err)
		}
	}
	logger.Info("pipeline completed", "duration", time.Since(started))
	if r.printer != nil {
		r.printer.PrintDone(st.RunID.String(), time.Since(started))
	}

	return st, nil
}

func validateInput(in *Input) error {
	if in.Document.URI == "" && len(in.Document.Data) == 0 {
		return fmt.Errorf("%w: source brief document", prompts.ErrMissingInput)
	}
	if in.Document.MIMEType == "" {
		return fmt.Errorf("%w: source brief media type", prompts.ErrMissingInput)
	}
	if strings.TrimSpace(in.Product) == "" {
		return fmt.Errorf("%w: product details", prompts.ErrMissingInput)
	}
	if in.Source == "" {
		in.Source = in.Document.URI
		if in.Source == "" {
			in.Source = "inline document"
		}
	}
	return nil
}

func (r *Runner) runStage(ctx context.Context, logger *slog.Logger, store ArtifactStore, st *State, in *Input, def steps.StepDefinition, fn stageFunc) error {
	logger = logger.With("stage", def.Name)

	if err := ctx.Err(); err != nil {
		logger.Error("stage not started", "error", err)
		return err
	}
	if fn == nil {
		return fmt.Errorf("no implementation for step %s", def.Name)
	}

	r.emit(ProgressEvent{Step: def.Name, Category: def.Category, Message: def.Title, RunID: st.RunID.String()})
	if store != nil {
		if err := store.StartRunStep(ctx, st.RunID, def.Name, def.Category); err != nil {
			logger.Warn("failed to record step start", "error", err)
		}
	}

	start := time.Now()
	logger.Info("stage started")

	callCtx, cancel := r.callContext(ctx)
	out, err := fn(callCtx, st, in)
	cancel()

	if err != nil {
		logger.Error("stage failed", "error", err, "duration", time.Since(start), "kind", errorKind(err))
		if store != nil {
			if serr := store.FinishRunStep(ctx, st.RunID, def.Name, db.StepStatusFailed, err.Error()); serr != nil {
				logger.Warn("failed to record step failure", "error", serr)
			}
		}
		r.emit(ProgressEvent{Step: def.Name, Category: def.Category, Message: "failed: " + err.Error(), RunID: st.RunID.String()})
		return err
	}

	out.commit(st)
	st.Phase = Phase(def.Reaches)
	logger.Info("stage completed", "duration", time.Since(start), "phase", st.Phase)

	if store != nil {
		r.persist(ctx, logger, store, st.RunID, def, out)
	}
	r.emit(ProgressEvent{
		Step:     def.Name,
		Category: def.Category,
		Message:  "completed",
		RunID:    st.RunID.String(),
		Content:  contentOf(out),
	})
	if r.printer != nil && out.print != nil {
		out.print(r.printer)
	}
	return nil
}

func (r *Runner) persist(ctx context.Context, logger *slog.Logger, store ArtifactStore, runID uuid.UUID, def steps.StepDefinition, out *outcome) {
	var err error
	if out.artifact != nil {
		err = store.SaveArtifact(ctx, runID, def.Artifact, def.Category, out.artifact)
	} else {
		err = store.SaveTextArtifact(ctx, runID, def.Artifact, def.Category, out.text)
	}
	if err != nil {
		logger.Warn("failed to save artifact", "artifact", def.Artifact, "error", err)
	}
	if err := store.FinishRunStep(ctx, runID, def.Name, db.StepStatusCompleted, ""); err != nil {
		logger.Warn("failed to record step completion", "error", err)
	}
}

func (r *Runner) emit(event ProgressEvent) {
	if r.onProgress != nil {
		r.onProgress(event)
	}
}

func (r *Runner) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.callTimeout > 0 {
		return context.WithTimeout(ctx, r.callTimeout)
	}
	return context.WithCancel(ctx)
}

func contentOf(out *outcome) any {
	if out.artifact != nil {
		return out.artifact
	}
	return out.text
}

func errorKind(err error) string {
	switch {
	case extraction.IsUpstream(err):
		return "upstream"
	case extraction.IsSchemaValidation(err):
		return "schema_validation"
	case errors.Is(err, prompts.ErrMissingInput):
		return "missing_input"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "other"
	}
}

func (r *Runner) extractBrief(ctx context.Context, _ *State, in *Input) (*outcome, error) {
	brief, err := extraction.ExtractCampaignBrief(ctx, r.client, steps.ExtractBrief, prompts.BriefExtraction(), in.Document)
	if err != nil {
		return nil, err
	}
	return &outcome{
		commit:   func(st *State) { st.SampleBrief = brief },
		artifact: brief,
		print:    func(p *observability.Printer) { p.PrintCampaignBrief("Sample campaign brief", brief) },
	}, nil
}

func (r *Runner) marketResearch(ctx context.Context, _ *State, in *Input) (*outcome, error) {
	findings, err := research.Run(ctx, r.client, steps.MarketResearch, prompts.MarketResearch(in.ResearchPrompt))
	if err != nil {
		return nil, err
	}
	return &outcome{
		commit:   func(st *State) { st.Research = findings },
		artifact: findings,
		print:    func(p *observability.Printer) { p.PrintResearch(findings) },
	}, nil
}

func (r *Runner) synthesizeBrief(ctx context.Context, st *State, in *Input) (*outcome, error) {
	researchText := ""
	if st.Research != nil {
		researchText = st.Research.Text
	}
	prompt, err := prompts.CampaignSynthesis(st.SampleBrief, researchText, in.Product)
	if err != nil {
		return nil, err
	}

	brief, err := extraction.ExtractCampaignBrief(ctx, r.client, steps.SynthesizeBrief, prompt)
	if err != nil {
		return nil, err
	}
	return &outcome{
		commit:   func(st *State) { st.Brief = brief },
		artifact: brief,
		print:    func(p *observability.Printer) { p.PrintCampaignBrief("New campaign brief", brief) },
	}, nil
}

func (r *Runner) generateAdCopy(ctx context.Context, st *State, _ *Input) (*outcome, error) {
	prompt, err := prompts.AdCopy(st.Brief)
	if err != nil {
		return nil, err
	}

	bundle, err := extraction.ExtractAdCopy(ctx, r.client, steps.GenerateAdCopy, prompt)
	if err != nil {
		return nil, err
	}
	countries := st.Brief.TargetCountries
	return &outcome{
		commit:   func(st *State) { st.AdCopy = bundle },
		artifact: bundle,
		print: func(p *observability.Printer) {
			p.PrintAdCopyJSON(bundle)
			p.PrintAdCopy(bundle, countries)
		},
	}, nil
}

func (r *Runner) generateStoryboard(ctx context.Context, st *State, _ *Input) (*outcome, error) {
	prompt, err := prompts.Storyboard(st.Brief)
	if err != nil {
		return nil, err
	}

	storyboard, err := extraction.Generate(ctx, r.client, steps.GenerateStoryboard, prompt)
	if err != nil {
		return nil, err
	}
	return &outcome{
		commit: func(st *State) { st.Storyboard = storyboard },
		text:   storyboard,
		print:  func(p *observability.Printer) { p.PrintStoryboard(storyboard) },
	}, nil
}
