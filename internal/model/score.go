package model

// Score pairs a canonical label id with its classification probability.
// Probabilities are independent per-label sigmoids: the classifier is
// multi-label, so the 28 values do not sum to 1 and several may exceed 0.5
// at once (mixed emotions).
type Score struct {
	Label       string
	Probability float64 // in [0, 1]
}

// AnalysisResult is the full classification outcome for one input text.
// Scores holds all 28 labels ordered by probability descending, with exact
// ties broken by canonical label index ascending. Immutable once produced.
type AnalysisResult struct {
	Text   string
	Scores []Score

	// UnknownLabels counts provider output entries that fell outside the
	// closed 28-label set and were dropped during normalization.
	UnknownLabels int
}

// Dominant returns the score-maximizing label, which is always the first
// entry of the ordered score sequence.
func (r AnalysisResult) Dominant() Score {
	return r.Scores[0]
}
