// Package engine orchestrates the classification path: registry → provider →
// adapter → ranking/banding.
package engine

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/semaphore"

	"github.com/crimson-sun/sentir/internal/engine/adapter"
	"github.com/crimson-sun/sentir/internal/engine/bucket"
	"github.com/crimson-sun/sentir/internal/engine/rank"
	"github.com/crimson-sun/sentir/internal/model"
	"github.com/crimson-sun/sentir/internal/registry"
)

// Engine runs analyses against the shared model capability. Inference is
// CPU-bound synchronous work, so admission is bounded by a semaphore: slow
// inference on one request cannot starve dispatch of others.
type Engine struct {
	registry *registry.Registry
	sem      *semaphore.Weighted
}

// New creates an Engine over the given registry with at most workers
// concurrent inference calls.
func New(reg *registry.Registry, workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{
		registry: reg,
		sem:      semaphore.NewWeighted(int64(workers)),
	}
}

// Analyze classifies one text and returns the full ordered 28-score result.
func (e *Engine) Analyze(ctx context.Context, text string) (model.AnalysisResult, error) {
	if err := validateText(text, 0); err != nil {
		return model.AnalysisResult{}, err
	}

	prov, err := e.registry.Get(ctx)
	if err != nil {
		return model.AnalysisResult{}, err
	}

	if err := e.sem.Acquire(ctx, 1); err != nil {
		return model.AnalysisResult{}, err
	}
	raw, err := prov.Classify(ctx, text)
	e.sem.Release(1)
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("classify: %w", err)
	}

	scores, unknown, err := adapter.Normalize(raw)
	if err != nil {
		return model.AnalysisResult{}, err
	}

	return model.AnalysisResult{
		Text:          text,
		Scores:        rank.Sort(scores),
		UnknownLabels: unknown,
	}, nil
}

// AnalyzeDetailed classifies one text and additionally partitions the
// result into confidence bands.
func (e *Engine) AnalyzeDetailed(ctx context.Context, text string) (model.AnalysisResult, bucket.Bands, error) {
	result, err := e.Analyze(ctx, text)
	if err != nil {
		return model.AnalysisResult{}, bucket.Bands{}, err
	}
	return result, bucket.Split(result.Scores), nil
}

// Compare classifies an ordered batch of texts in one inference call.
// Batches are all-or-nothing: every text is validated up front, so any
// invalid entry fails the whole call naming its 1-based index and no partial
// result is returned. Output order is exactly input order.
func (e *Engine) Compare(ctx context.Context, texts []string) (model.ComparisonResult, error) {
	if len(texts) == 0 {
		return model.ComparisonResult{}, fmt.Errorf("%w: empty text batch", model.ErrInvalidArgument)
	}
	for i, text := range texts {
		if err := validateText(text, i+1); err != nil {
			return model.ComparisonResult{}, err
		}
	}

	prov, err := e.registry.Get(ctx)
	if err != nil {
		return model.ComparisonResult{}, err
	}

	if err := e.sem.Acquire(ctx, 1); err != nil {
		return model.ComparisonResult{}, err
	}
	rawBatch, err := prov.ClassifyBatch(ctx, texts)
	e.sem.Release(1)
	if err != nil {
		return model.ComparisonResult{}, fmt.Errorf("classify batch: %w", err)
	}
	if len(rawBatch) != len(texts) {
		return model.ComparisonResult{}, fmt.Errorf("%w: provider returned %d results for %d texts",
			model.ErrSchemaMismatch, len(rawBatch), len(texts))
	}

	entries := make([]model.ComparisonEntry, len(texts))
	for i, raw := range rawBatch {
		scores, _, err := adapter.Normalize(raw)
		if err != nil {
			return model.ComparisonResult{}, err
		}
		// Comparison is a summary view: top-3 only.
		top, err := rank.Top(scores, 3)
		if err != nil {
			return model.ComparisonResult{}, err
		}
		entries[i] = model.ComparisonEntry{
			Index: i + 1,
			Text:  texts[i],
			Top:   top,
		}
	}
	return model.ComparisonResult{Entries: entries}, nil
}

// validateText rejects empty and whitespace-only text. index is the 1-based
// batch position, or 0 for single-text operations.
func validateText(text string, index int) error {
	if strings.TrimSpace(text) != "" {
		return nil
	}
	if index > 0 {
		return fmt.Errorf("%w: texto %d is empty or whitespace-only", model.ErrInvalidInput, index)
	}
	return fmt.Errorf("%w: texto is empty or whitespace-only", model.ErrInvalidInput)
}
