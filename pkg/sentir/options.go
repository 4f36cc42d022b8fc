package sentir

import (
	"context"

	"github.com/crimson-sun/sentir/internal/engine/provider"
	"github.com/crimson-sun/sentir/internal/registry"
)

type options struct {
	modelPath  string
	vocabPath  string
	hfEndpoint string
	hfToken    string
	custom     Provider
	workers    int
}

// Option configures an Analyzer.
type Option func(*options)

// WithONNX selects the local ONNX backend with explicit model and vocab
// file paths. This is the default backend, loading models/model.onnx and
// models/vocab.txt when no option is given.
func WithONNX(modelPath, vocabPath string) Option {
	return func(o *options) {
		o.modelPath = modelPath
		o.vocabPath = vocabPath
		o.custom = nil
		o.hfEndpoint = ""
	}
}

// WithHuggingFace selects the hosted inference backend. The token may be
// empty for public endpoints.
func WithHuggingFace(endpoint, token string) Option {
	return func(o *options) {
		o.hfEndpoint = endpoint
		o.hfToken = token
		o.custom = nil
	}
}

// WithProvider installs a custom classification backend. Useful for tests
// and for serving models through transports sentir does not ship.
func WithProvider(p Provider) Option {
	return func(o *options) {
		o.custom = p
	}
}

// WithWorkers caps the number of concurrent inference calls. Default: 4.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func defaultOptions() options {
	return options{
		modelPath: "models/model.onnx",
		vocabPath: "models/vocab.txt",
		workers:   4,
	}
}

// acquire returns the lazy acquisition function for the configured backend.
// Nothing is loaded here; the registry invokes it on first use.
func (o options) acquire() registry.AcquireFunc {
	switch {
	case o.custom != nil:
		p := providerBridge{o.custom}
		return func(ctx context.Context) (provider.Provider, error) {
			return p, nil
		}
	case o.hfEndpoint != "":
		return func(ctx context.Context) (provider.Provider, error) {
			return provider.NewHuggingFace(o.hfEndpoint, o.hfToken), nil
		}
	default:
		return func(ctx context.Context) (provider.Provider, error) {
			return provider.NewONNX(o.modelPath, o.vocabPath)
		}
	}
}
