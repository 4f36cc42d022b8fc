// Package labels defines the closed 28-label GoEmotions taxonomy: canonical
// ids in their fixed dataset order, pt-BR display names, and valence
// categories. The table is immutable process-wide static data.
package labels

import "github.com/crimson-sun/sentir/internal/model"

// table lists the 28 labels in canonical GoEmotions order. The slice index
// is the label's canonical index, used as the deterministic tie-break key
// when ranking scores.
var table = []model.Label{
	{ID: "admiration", Display: "admiração", Category: model.CategoryPositive},
	{ID: "amusement", Display: "diversão", Category: model.CategoryPositive},
	{ID: "anger", Display: "raiva", Category: model.CategoryNegative},
	{ID: "annoyance", Display: "irritação", Category: model.CategoryNegative},
	{ID: "approval", Display: "aprovação", Category: model.CategoryPositive},
	{ID: "caring", Display: "cuidado", Category: model.CategoryPositive},
	{ID: "confusion", Display: "confusão", Category: model.CategoryAmbiguous},
	{ID: "curiosity", Display: "curiosidade", Category: model.CategoryAmbiguous},
	{ID: "desire", Display: "desejo", Category: model.CategoryPositive},
	{ID: "disappointment", Display: "decepção", Category: model.CategoryNegative},
	{ID: "disapproval", Display: "desaprovação", Category: model.CategoryNegative},
	{ID: "disgust", Display: "nojo", Category: model.CategoryNegative},
	{ID: "embarrassment", Display: "vergonha", Category: model.CategoryNegative},
	{ID: "excitement", Display: "empolgação", Category: model.CategoryPositive},
	{ID: "fear", Display: "medo", Category: model.CategoryNegative},
	{ID: "gratitude", Display: "gratidão", Category: model.CategoryPositive},
	{ID: "grief", Display: "tristeza profunda", Category: model.CategoryNegative},
	{ID: "joy", Display: "alegria", Category: model.CategoryPositive},
	{ID: "love", Display: "amor", Category: model.CategoryPositive},
	{ID: "nervousness", Display: "nervosismo", Category: model.CategoryNegative},
	{ID: "optimism", Display: "otimismo", Category: model.CategoryPositive},
	{ID: "pride", Display: "orgulho", Category: model.CategoryPositive},
	{ID: "realization", Display: "percepção", Category: model.CategoryAmbiguous},
	{ID: "relief", Display: "alívio", Category: model.CategoryPositive},
	{ID: "remorse", Display: "remorso", Category: model.CategoryNegative},
	{ID: "sadness", Display: "tristeza", Category: model.CategoryNegative},
	{ID: "surprise", Display: "surpresa", Category: model.CategoryAmbiguous},
	{ID: "neutral", Display: "neutro", Category: model.CategoryNeutral},
}

var byID = buildIndex()

func buildIndex() map[string]int {
	m := make(map[string]int, len(table))
	for i := range table {
		table[i].Index = i
		m[table[i].ID] = i
	}
	return m
}

// Count returns the size of the closed label set (always 28).
func Count() int {
	return len(table)
}

// All returns the labels in canonical order. Callers must not modify the
// returned slice.
func All() []model.Label {
	return table
}

// Lookup returns the label for a canonical id.
func Lookup(id string) (model.Label, bool) {
	i, ok := byID[id]
	if !ok {
		return model.Label{}, false
	}
	return table[i], true
}

// Index returns the canonical index of a label id.
func Index(id string) (int, bool) {
	i, ok := byID[id]
	return i, ok
}

// Display returns the localized display name for a canonical id. Unknown ids
// pass through unchanged: localization is a convenience, not a correctness
// requirement.
func Display(id string) string {
	if l, ok := Lookup(id); ok {
		return l.Display
	}
	return id
}
