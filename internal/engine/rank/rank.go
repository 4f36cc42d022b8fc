// Package rank orders scored labels deterministically and extracts top-k
// views.
package rank

import (
	"fmt"
	"sort"

	"github.com/crimson-sun/sentir/internal/engine/labels"
	"github.com/crimson-sun/sentir/internal/model"
)

// Sort returns a new slice ordered by probability descending. Bit-identical
// probabilities fall back to canonical label index ascending, so identical
// inputs always produce identical orderings.
func Sort(scores []model.Score) []model.Score {
	out := make([]model.Score, len(scores))
	copy(out, scores)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Probability != out[j].Probability {
			return out[i].Probability > out[j].Probability
		}
		return canonicalIndex(out[i].Label) < canonicalIndex(out[j].Label)
	})
	return out
}

// Top returns the k highest-probability entries. k outside [1, 28] fails
// with ErrInvalidArgument; out-of-range values are never clamped.
func Top(scores []model.Score, k int) ([]model.Score, error) {
	if k < 1 || k > labels.Count() {
		return nil, fmt.Errorf("%w: top_k must be between 1 and %d, got %d",
			model.ErrInvalidArgument, labels.Count(), k)
	}
	sorted := Sort(scores)
	if k > len(sorted) {
		k = len(sorted)
	}
	return sorted[:k], nil
}

// Dominant returns the score-maximizing label.
func Dominant(scores []model.Score) model.Score {
	return Sort(scores)[0]
}

func canonicalIndex(label string) int {
	if i, ok := labels.Index(label); ok {
		return i
	}
	return labels.Count()
}
