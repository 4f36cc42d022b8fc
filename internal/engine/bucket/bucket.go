// Package bucket partitions a full score set into coarse confidence bands,
// letting callers distinguish strongly present, weakly present, and
// negligible emotions without a single top-k cutoff.
package bucket

import "github.com/crimson-sun/sentir/internal/model"

// Band thresholds. The medium lower bound is inclusive: p == 0.1 is medium,
// not low.
const (
	HighMin   = 0.5
	MediumMin = 0.1
)

// Bands holds the three disjoint, exhaustive confidence bands. Each band
// preserves the relative order of its input, and the band sizes always sum
// to the input length.
type Bands struct {
	High   []model.Score // p >= 0.5
	Medium []model.Score // 0.1 <= p < 0.5
	Low    []model.Score // p < 0.1
}

// Split partitions the scores by probability.
func Split(scores []model.Score) Bands {
	var b Bands
	for _, s := range scores {
		switch {
		case s.Probability >= HighMin:
			b.High = append(b.High, s)
		case s.Probability >= MediumMin:
			b.Medium = append(b.Medium, s)
		default:
			b.Low = append(b.Low, s)
		}
	}
	return b
}

// Total returns the combined band size.
func (b Bands) Total() int {
	return len(b.High) + len(b.Medium) + len(b.Low)
}

// Level names the band a single probability falls in.
func Level(p float64) string {
	switch {
	case p >= HighMin:
		return "alta"
	case p >= MediumMin:
		return "média"
	default:
		return "baixa"
	}
}
