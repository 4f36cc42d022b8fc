package model

// Category groups emotion labels by valence.
type Category string

const (
	CategoryPositive  Category = "positive"
	CategoryNegative  Category = "negative"
	CategoryAmbiguous Category = "ambiguous"
	CategoryNeutral   Category = "neutral"
)

// Label is one of the 28 canonical GoEmotions identifiers. The set is closed:
// labels are never added or removed at runtime.
type Label struct {
	ID       string   // canonical identifier, e.g. "joy"
	Index    int      // fixed position in the canonical 28-label order
	Display  string   // localized (pt-BR) display name
	Category Category
}
