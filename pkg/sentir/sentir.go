package sentir

import (
	"context"
	"fmt"

	"github.com/crimson-sun/sentir/internal/engine"
	"github.com/crimson-sun/sentir/internal/engine/provider"
	"github.com/crimson-sun/sentir/internal/model"
	"github.com/crimson-sun/sentir/internal/registry"
	"github.com/crimson-sun/sentir/internal/service"
)

// DefaultTopK is the conventional top_k when a caller has no preference.
const DefaultTopK = service.DefaultTopK

// Sentinel errors returned by Analyzer methods. Test with errors.Is.
var (
	// ErrCapabilityUnavailable: the model backend could not be acquired.
	ErrCapabilityUnavailable = model.ErrCapabilityUnavailable
	// ErrInvalidInput: a text was empty or whitespace-only.
	ErrInvalidInput = model.ErrInvalidInput
	// ErrInvalidArgument: a parameter was out of range or malformed.
	ErrInvalidArgument = model.ErrInvalidArgument
	// ErrSchemaMismatch: the backend returned scores that do not cover the
	// 28 labels exactly once.
	ErrSchemaMismatch = model.ErrSchemaMismatch
)

// LabelScore is one raw label/score pair produced by a backend.
type LabelScore struct {
	Label string
	Score float64
}

// Provider is a custom classification backend: it scores every text of a
// batch against the 28 GoEmotions labels. Implementations must be safe for
// concurrent use.
type Provider interface {
	Classify(ctx context.Context, texts []string) ([][]LabelScore, error)
	Close() error
}

// Analyzer scores texts against the 28 GoEmotions categories.
// Safe for concurrent use. The model backend is acquired lazily on the
// first call, once, and reused afterwards.
type Analyzer struct {
	svc *service.Service
	reg *registry.Registry
}

// New creates an Analyzer. Nothing expensive happens here; the model loads
// on first use.
func New(opts ...Option) (*Analyzer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		return nil, fmt.Errorf("sentir: %w: workers must be at least 1", ErrInvalidArgument)
	}

	reg := registry.New(o.acquire())
	return &Analyzer{
		svc: service.New(engine.New(reg, o.workers)),
		reg: reg,
	}, nil
}

// Analyze returns the topK highest-probability emotions for one text.
// topK must be in [1, 28].
func (a *Analyzer) Analyze(ctx context.Context, texto string, topK int) (Analysis, error) {
	result, err := a.svc.Analyze(ctx, texto, topK)
	if err != nil {
		return Analysis{}, err
	}
	return fromAnalysis(result), nil
}

// AnalyzeDetailed returns all 28 emotions for one text, grouped by
// confidence band.
func (a *Analyzer) AnalyzeDetailed(ctx context.Context, texto string) (DetailedAnalysis, error) {
	result, err := a.svc.AnalyzeDetailed(ctx, texto)
	if err != nil {
		return DetailedAnalysis{}, err
	}
	return fromDetailedAnalysis(result), nil
}

// Compare analyzes multiple texts side by side, preserving input order.
// All texts must be non-empty; one bad text fails the whole batch.
func (a *Analyzer) Compare(ctx context.Context, textos []string) (Comparison, error) {
	result, err := a.svc.Compare(ctx, textos)
	if err != nil {
		return Comparison{}, err
	}
	return fromComparison(result), nil
}

// Close releases the model backend if it was acquired.
func (a *Analyzer) Close() error {
	return a.reg.Close()
}

// providerBridge adapts the public Provider to the internal backend
// interface.
type providerBridge struct {
	p Provider
}

func (b providerBridge) Classify(ctx context.Context, text string) ([]provider.RawScore, error) {
	batch, err := b.ClassifyBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(batch) != 1 {
		return nil, fmt.Errorf("%w: provider returned %d results for 1 text", model.ErrSchemaMismatch, len(batch))
	}
	return batch[0], nil
}

func (b providerBridge) ClassifyBatch(ctx context.Context, texts []string) ([][]provider.RawScore, error) {
	scored, err := b.p.Classify(ctx, texts)
	if err != nil {
		return nil, err
	}
	out := make([][]provider.RawScore, len(scored))
	for i, scores := range scored {
		raw := make([]provider.RawScore, len(scores))
		for j, s := range scores {
			raw[j] = provider.RawScore{Label: s.Label, Score: s.Score}
		}
		out[i] = raw
	}
	return out, nil
}

func (b providerBridge) Close() error {
	return b.p.Close()
}
