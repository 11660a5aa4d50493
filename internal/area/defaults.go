package area

import "milkrun/internal/model"

// Default rule values applied by Add when the caller leaves them unset.
const (
	DefaultPriority = 500
	DefaultColor    = "#9E9E9E"
	DefaultIcon     = "📍"
)

// CatchAllID is the id of the built-in catch-all rule.
const CatchAllID = "other"

// defaultRules is the seed rule set: five delivery areas plus the catch-all.
// Patterns are lowercase address substrings; "churn creek" stays a two-word
// phrase so plain "creek" addresses fall through to later rules.
func defaultRules() []model.AreaRule {
	return []model.AreaRule{
		{
			ID:       "shasta-ortho",
			Name:     "Shasta Ortho",
			Patterns: []string{"liberty", "butte st", "court st"},
			Priority: 100,
			Color:    "#4C8BF5",
			Icon:     "🏥",
		},
		{
			ID:       "south-redding",
			Name:     "South Redding",
			Patterns: []string{"bonnyview", "girvan", "westside"},
			Priority: 200,
			Color:    "#34A853",
			Icon:     "🌲",
		},
		{
			ID:       "churn-creek",
			Name:     "Churn Creek",
			Patterns: []string{"churn creek", "hartnell", "victor"},
			Priority: 300,
			Color:    "#FBBC05",
			Icon:     "🏞️",
		},
		{
			ID:       "downtown",
			Name:     "Downtown",
			Patterns: []string{"market st", "pine st", "california st"},
			Priority: 400,
			Color:    "#A142F4",
			Icon:     "🏙️",
		},
		{
			ID:       "enterprise",
			Name:     "Enterprise",
			Patterns: []string{"cypress", "hilltop", "dana dr"},
			Priority: 450,
			Color:    "#F4512C",
			Icon:     "🏬",
		},
		{
			ID:       CatchAllID,
			Name:     "Other",
			Patterns: []string{},
			Priority: 999,
			Color:    DefaultColor,
			Icon:     DefaultIcon,
		},
	}
}
