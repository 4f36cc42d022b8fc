package provider

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/crimson-sun/sentir/internal/engine/labels"
)

// ortEnv manages global ONNX Runtime initialization (process-wide singleton).
var ortEnv struct {
	once sync.Once
	err  error
}

// initORT initializes the ONNX Runtime environment. Safe to call multiple
// times; only the first call has any effect.
func initORT(libPath string) error {
	ortEnv.once.Do(func() {
		ort.SetSharedLibraryPath(libPath)
		ortEnv.err = ort.InitializeEnvironment()
	})
	return ortEnv.err
}

// ONNX runs a local GoEmotions classification model through ONNX Runtime.
// Loading holds the full model resident in memory and can take seconds to
// minutes on a cold cache — construct once and share across requests.
type ONNX struct {
	session    *ort.DynamicAdvancedSession
	inputNames []string
	outputName string
	tok        *tokenizer
	labelIDs   []string
}

// NewONNX loads a BERT-style GoEmotions classification export and its
// WordPiece vocabulary. The model must expose input_ids and attention_mask
// inputs (token_type_ids is accepted when present) and a 2-D
// [batch, 28] logits output.
func NewONNX(modelPath, vocabPath string) (*ONNX, error) {
	// The ONNX Runtime shared library ships alongside the model files.
	libPath := filepath.Join(filepath.Dir(modelPath), "libonnxruntime.so")
	if err := initORT(libPath); err != nil {
		return nil, fmt.Errorf("onnx: failed to initialize runtime: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to read model info: %w", err)
	}

	inputNames, err := classifierInputs(inputs)
	if err != nil {
		return nil, err
	}

	if len(outputs) == 0 {
		return nil, fmt.Errorf("onnx: model has no outputs")
	}
	outputName := outputs[0].Name
	dims := outputs[0].Dimensions
	if len(dims) != 2 {
		return nil, fmt.Errorf("onnx: expected 2D logits output, got shape %v", dims)
	}
	if dims[1] > 0 && int(dims[1]) != labels.Count() {
		return nil, fmt.Errorf("onnx: model emits %d labels, want %d", dims[1], labels.Count())
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session options: %w", err)
	}
	defer opts.Destroy()
	opts.SetIntraOpNumThreads(4)
	opts.SetInterOpNumThreads(1)

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		inputNames,
		[]string{outputName},
		opts,
	)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session: %w", err)
	}

	tok, err := newTokenizer(vocabPath)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("onnx: %w", err)
	}

	ids := make([]string, labels.Count())
	for i, l := range labels.All() {
		ids[i] = l.ID
	}

	return &ONNX{
		session:    session,
		inputNames: inputNames,
		outputName: outputName,
		tok:        tok,
		labelIDs:   ids,
	}, nil
}

// classifierInputs validates the model's input tensors. token_type_ids is
// optional: RoBERTa-family exports omit it.
func classifierInputs(inputs []ort.InputOutputInfo) ([]string, error) {
	nameSet := make(map[string]bool, len(inputs))
	for _, inp := range inputs {
		nameSet[inp.Name] = true
	}
	for _, name := range []string{"input_ids", "attention_mask"} {
		if !nameSet[name] {
			return nil, fmt.Errorf("onnx: model missing required input %q", name)
		}
	}
	names := []string{"input_ids", "attention_mask"}
	if nameSet["token_type_ids"] {
		names = append(names, "token_type_ids")
	}
	return names, nil
}

// Classify scores a single text.
func (p *ONNX) Classify(ctx context.Context, text string) ([]RawScore, error) {
	batch, err := p.ClassifyBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return batch[0], nil
}

// ClassifyBatch tokenizes the texts, runs one inference call, and converts
// the per-label logits to independent probabilities via sigmoid.
func (p *ONNX) ClassifyBatch(ctx context.Context, texts []string) ([][]RawScore, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	// The runtime call is not interruptible; honor cancellation up front.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	enc := p.tok.encodeBatch(texts)
	shape := ort.NewShape(enc.batchSize, enc.seqLen)

	tIDs, err := ort.NewTensor(shape, enc.inputIDs)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create input_ids tensor: %w", err)
	}
	defer tIDs.Destroy()

	tMask, err := ort.NewTensor(shape, enc.attentionMask)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create attention_mask tensor: %w", err)
	}
	defer tMask.Destroy()

	inputs := []ort.Value{tIDs, tMask}
	if len(p.inputNames) == 3 {
		tTypes, err := ort.NewTensor(shape, enc.tokenTypeIDs)
		if err != nil {
			return nil, fmt.Errorf("onnx: failed to create token_type_ids tensor: %w", err)
		}
		defer tTypes.Destroy()
		inputs = append(inputs, tTypes)
	}

	numLabels := int64(len(p.labelIDs))
	tOut, err := ort.NewEmptyTensor[float32](ort.NewShape(enc.batchSize, numLabels))
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create output tensor: %w", err)
	}
	defer tOut.Destroy()

	if err := p.session.Run(inputs, []ort.Value{tOut}); err != nil {
		return nil, fmt.Errorf("onnx: inference failed: %w", err)
	}

	logits := tOut.GetData()
	results := make([][]RawScore, enc.batchSize)
	for i := int64(0); i < enc.batchSize; i++ {
		scores := make([]RawScore, numLabels)
		for j := int64(0); j < numLabels; j++ {
			scores[j] = RawScore{
				Label: p.labelIDs[j],
				Score: sigmoid(logits[i*numLabels+j]),
			}
		}
		results[i] = scores
	}
	return results, nil
}

// Close releases ONNX Runtime resources.
func (p *ONNX) Close() error {
	return p.session.Destroy()
}

// sigmoid converts a single logit to an independent probability. The model
// is multi-label: probabilities are per-label and do not sum to 1.
func sigmoid(x float32) float64 {
	return 1.0 / (1.0 + math.Exp(-float64(x)))
}
