package model

// ComparisonEntry summarizes the classification of one text within a batch.
// Top holds the three highest-ranked scores; Top[0] is the dominant emotion.
type ComparisonEntry struct {
	Index int // 1-based input position
	Text  string
	Top   []Score
}

// ComparisonResult holds one entry per input text, in the exact order the
// texts were submitted. Inputs are never reordered or deduplicated.
type ComparisonResult struct {
	Entries []ComparisonEntry
}
