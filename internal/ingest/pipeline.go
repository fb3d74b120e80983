// Package ingest converts an uploaded menu document into a structured,
// enhanced item list through a two-stage external transformation and a
// replace-style persist. A run either completes fully or fails without
// touching the existing menu.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"menuforge/internal/extract"
	"menuforge/internal/generation"
	"menuforge/internal/models"
)

// MenuReplacer is the persistence collaborator the final stage writes through
type MenuReplacer interface {
	ReplaceMenu(ctx context.Context, restaurantID string, payload models.MenuPayload) error
}

// Options tune the external generation calls and stage deadlines
type Options struct {
	Model        string
	MaxTokens    int
	Temperature  float64
	StageTimeout time.Duration
	Progress     func(ProgressEvent)
}

const (
	defaultMaxTokens    = 4000
	defaultStageTimeout = 45 * time.Second
)

// Upload is one document handed to the pipeline
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Pipeline runs document ingestions. One Pipeline may serve many runs;
// each run is independent.
type Pipeline struct {
	generator generation.TextGenerator
	persister MenuReplacer
	opts      Options
}

// New creates a pipeline over the given collaborators
func New(generator generation.TextGenerator, persister MenuReplacer, opts Options) *Pipeline {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.StageTimeout <= 0 {
		opts.StageTimeout = defaultStageTimeout
	}
	return &Pipeline{generator: generator, persister: persister, opts: opts}
}

// Run executes the full pipeline for one upload and returns the
// persisted item list. Cancelling ctx aborts the run between and
// within stages. Any stage failure is terminal for the run: no partial
// state is written and the existing menu is left untouched.
func (p *Pipeline) Run(ctx context.Context, restaurantID string, up Upload) ([]models.MenuItem, error) {
	items, err := p.run(ctx, restaurantID, up)
	if err != nil {
		p.reportFailure(err)
		return nil, err
	}
	p.report(StageDone)
	return items, nil
}

func (p *Pipeline) run(ctx context.Context, restaurantID string, up Upload) ([]models.MenuItem, error) {
	// EXTRACTING_TEXT
	p.report(StageExtractingText)
	text, err := extract.Text(up.Data, up.ContentType)
	if err != nil {
		return nil, err
	}

	// BASIC_STRUCTURING
	p.report(StageBasicStructuring)
	basic, err := p.structure(ctx, text)
	if err != nil {
		return nil, err
	}
	log.Printf("ingest: structured %d items from %q", len(basic), up.Filename)

	// ENHANCING_BATCH_1 / ENHANCING_BATCH_2: two roughly equal
	// contiguous halves, run sequentially so a batch-1 failure never
	// spends a second generation call.
	first, second := splitBatches(basic)

	p.report(StageEnhancingBatch1)
	enhanced, err := p.enhance(ctx, StageEnhancingBatch1, 1, first)
	if err != nil {
		return nil, err
	}

	if len(second) > 0 {
		p.report(StageEnhancingBatch2)
		batch2, err := p.enhance(ctx, StageEnhancingBatch2, 2, second)
		if err != nil {
			return nil, err
		}
		enhanced = append(enhanced, batch2...)
	}

	// PERSISTING: merged batches in original order, empty customisations
	p.report(StagePersisting)
	payload := models.MenuPayload{
		MenuItems:      enhanced,
		Customisations: []models.ItemCustomisation{},
	}
	if err := p.persist(ctx, restaurantID, payload); err != nil {
		return nil, err
	}

	return enhanced, nil
}

func (p *Pipeline) structure(ctx context.Context, text string) ([]BasicItem, error) {
	response, err := p.complete(ctx, StageBasicStructuring, generation.CompletionRequest{
		System:      structuringSystem,
		Prompt:      buildStructuringPrompt(text),
		Model:       p.opts.Model,
		MaxTokens:   p.opts.MaxTokens,
		Temperature: p.opts.Temperature,
	})
	if err != nil {
		return nil, err
	}
	items, err := parseBasicItems(response)
	if err != nil {
		return nil, err
	}
	// an empty array would replace the existing menu with nothing
	if len(items) == 0 {
		return nil, &StructuringParseError{Cause: errors.New("no menu items found in document")}
	}
	return items, nil
}

func (p *Pipeline) enhance(ctx context.Context, stage Stage, batch int, items []BasicItem) ([]models.MenuItem, error) {
	if len(items) == 0 {
		return []models.MenuItem{}, nil
	}

	prompt, err := buildEnhancementPrompt(items)
	if err != nil {
		return nil, err
	}
	response, err := p.complete(ctx, stage, generation.CompletionRequest{
		System:      enhancementSystem,
		Prompt:      prompt,
		Model:       p.opts.Model,
		MaxTokens:   p.opts.MaxTokens,
		Temperature: p.opts.Temperature,
	})
	if err != nil {
		return nil, err
	}
	return parseEnhancedBatch(batch, items, response)
}

func (p *Pipeline) complete(ctx context.Context, stage Stage, req generation.CompletionRequest) (string, error) {
	stageCtx, cancel := context.WithTimeout(ctx, p.opts.StageTimeout)
	defer cancel()

	response, err := p.generator.Complete(stageCtx, req)
	if err != nil {
		if errors.Is(stageCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return "", &TimeoutError{Stage: stage, Timeout: p.opts.StageTimeout}
		}
		return "", fmt.Errorf("stage %s: %w", stage, err)
	}
	return response, nil
}

func (p *Pipeline) persist(ctx context.Context, restaurantID string, payload models.MenuPayload) error {
	stageCtx, cancel := context.WithTimeout(ctx, p.opts.StageTimeout)
	defer cancel()

	if err := p.persister.ReplaceMenu(stageCtx, restaurantID, payload); err != nil {
		if errors.Is(stageCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return &TimeoutError{Stage: StagePersisting, Timeout: p.opts.StageTimeout}
		}
		return &PersistError{Message: err.Error(), Err: err}
	}
	return nil
}

// splitBatches cuts the item list into two contiguous halves: the
// first holds floor(n/2) items, the second the remainder.
func splitBatches(items []BasicItem) ([]BasicItem, []BasicItem) {
	half := len(items) / 2
	return items[:half], items[half:]
}

func (p *Pipeline) report(stage Stage) {
	if p.opts.Progress == nil {
		return
	}
	p.opts.Progress(progressFor(stage))
}

func (p *Pipeline) reportFailure(err error) {
	log.Printf("ingest: pipeline failed: %v", err)
	if p.opts.Progress == nil {
		return
	}
	ev := progressFor(StageFailed)
	ev.Error = err.Error()
	p.opts.Progress(ev)
}
