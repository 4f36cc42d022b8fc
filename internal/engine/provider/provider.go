// Package provider defines the black-box classification capability and its
// backends: a local ONNX session and a remote Hugging Face endpoint.
package provider

import "context"

// RawScore is one (label, score) pair exactly as emitted by a backend,
// before schema normalization. Labels may be outside the canonical set and
// ordering is backend-defined.
type RawScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Provider is a multi-label emotion classifier. Implementations must be safe
// for concurrent use after construction; the handle is read-only shared
// state.
type Provider interface {
	// Classify scores a single text against the emotion taxonomy.
	Classify(ctx context.Context, text string) ([]RawScore, error)

	// ClassifyBatch scores multiple texts in one call, returning one score
	// set per input in input order.
	ClassifyBatch(ctx context.Context, texts []string) ([][]RawScore, error)

	// Close releases backend resources.
	Close() error
}
