package waste

import "strings"

// Canonical category names as the municipal feed uses them.
const (
	Bio           = "Bio"
	Rest          = "Rest"
	Paper         = "Papier"
	Yellow        = "Gelb"
	ChristmasTree = "Weihnachtsbaum"
)

var aliases = map[string]string{
	"Bio":             Bio,
	"Biotonne":        Bio,
	"Rest":            Rest,
	"Restmüll":        Rest,
	"Restabfall":      Rest,
	"Papier":          Paper,
	"Pappe":           Paper,
	"Blaue Tonne":     Paper,
	"Gelb":            Yellow,
	"Gelbe Tonne":     Yellow,
	"Gelber Sack":     Yellow,
	"Weihnachtsbaum":  ChristmasTree,
	"Weihnachtsbäume": ChristmasTree,
}

// SupportedTypes lists the categories a user can toggle in settings.
func SupportedTypes() []string {
	return []string{Bio, Rest, Paper, Yellow, ChristmasTree}
}

// DefaultSubscriptions is the category set a fresh location starts with.
func DefaultSubscriptions() []string {
	return []string{Bio, Rest, Paper, Yellow}
}

// IsSupported reports whether the category can be subscribed to.
func IsSupported(category string) bool {
	for _, t := range SupportedTypes() {
		if t == category {
			return true
		}
	}
	return false
}

// Normalize folds a feed spelling into its canonical category. Unknown
// spellings come back trimmed but otherwise verbatim, so new feed categories
// still reach the database.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := aliases[trimmed]; ok {
		return canonical
	}
	return trimmed
}

// SplitSummary turns a feed event summary like "Bio, Rest" into canonical
// categories, dropping empty parts.
func SplitSummary(summary string) []string {
	var categories []string
	for _, part := range strings.Split(summary, ",") {
		normalized := Normalize(part)
		if normalized == "" {
			continue
		}
		categories = append(categories, normalized)
	}
	return categories
}
