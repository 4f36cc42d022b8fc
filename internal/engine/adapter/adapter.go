// Package adapter normalizes raw provider output into the canonical
// 28-score set the rest of the core operates on.
package adapter

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/crimson-sun/sentir/internal/engine/labels"
	"github.com/crimson-sun/sentir/internal/engine/provider"
	"github.com/crimson-sun/sentir/internal/model"
)

// Normalize converts a backend's raw score list into exactly one score per
// canonical label, in canonical-index order, regardless of the backend's
// native ordering or grouping. Returns the scores and the count of unknown
// labels that were dropped.
//
// Unknown labels fail open: they are dropped, counted, and logged, never an
// error. Duplicated or missing known labels, or probabilities outside
// [0, 1], fail closed with ErrSchemaMismatch because the 28-length guarantee
// cannot otherwise hold.
func Normalize(raw []provider.RawScore) ([]model.Score, int, error) {
	seen := make([]bool, labels.Count())
	scores := make([]model.Score, labels.Count())
	unknown := 0

	for _, rs := range raw {
		idx, ok := labels.Index(rs.Label)
		if !ok {
			unknown++
			continue
		}
		if seen[idx] {
			return nil, 0, fmt.Errorf("%w: duplicate label %q", model.ErrSchemaMismatch, rs.Label)
		}
		if rs.Score < 0 || rs.Score > 1 || math.IsNaN(rs.Score) {
			return nil, 0, fmt.Errorf("%w: label %q has probability %v outside [0,1]",
				model.ErrSchemaMismatch, rs.Label, rs.Score)
		}
		seen[idx] = true
		scores[idx] = model.Score{Label: rs.Label, Probability: rs.Score}
	}

	for i, ok := range seen {
		if !ok {
			return nil, 0, fmt.Errorf("%w: missing label %q", model.ErrSchemaMismatch, labels.All()[i].ID)
		}
	}

	if unknown > 0 {
		slog.Warn("provider returned labels outside the known set", "dropped", unknown)
	}
	return scores, unknown, nil
}
