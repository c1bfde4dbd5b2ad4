package models

import (
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// A catalog entry: a reusable meal definition with per-serving-unit nutrition.
type PredefinedMeal struct {
	gorm.Model
	Name           string         `gorm:"uniqueIndex;not null"`
	SearchName     string         `gorm:"index"`             // derived: lowercase name
	SearchKeywords pq.StringArray `gorm:"type:text[];index"` // derived, see DeriveSearchFields
	Units          []MealUnit
	Tags           pq.StringArray `gorm:"type:text[]"`
	Ingredients    pq.StringArray `gorm:"type:text[]"`
	Recipe         pq.StringArray `gorm:"type:text[]"`
	Category       string         `gorm:"size:20;default:lunch"` // breakfast | lunch | dinner | snack | dessert
	Difficulty     string         `gorm:"size:10;default:medium"`
	PrepTime       int            `gorm:"default:30"` // minutes
	CookTime       int            `gorm:"default:20"`
	Servings       int            `gorm:"default:2"`
	ImageURL       string
}

// One serving unit of a catalog entry with its own nutrition values.
type MealUnit struct {
	gorm.Model
	PredefinedMealID uint    `gorm:"index;not null"`
	Unit             string  `gorm:"not null"` // e.g. "bowl", "100g", "piece"
	Calories         float64 `gorm:"not null"`
	Protein          float64 `gorm:"default:0"`
	Carbs            float64 `gorm:"default:0"`
	Fat              float64 `gorm:"default:0"`
}

// UnitCalories returns the calorie value of the named serving unit,
// or 0 when the unit is unknown.
func (m *PredefinedMeal) UnitCalories(unit string) float64 {
	for _, u := range m.Units {
		if u.Unit == unit {
			return u.Calories
		}
	}
	return 0
}

// DeriveSearchFields recomputes the lowercase search name and the keyword
// set from name, ingredients, tags and category. It must be called before
// persisting whenever any of those fields change; the derived fields are
// never authoritative. Keywords are lowercase, deduplicated, and only
// tokens longer than 2 characters are kept (tags and category always are).
func DeriveSearchFields(m *PredefinedMeal) {
	m.SearchName = strings.ToLower(m.Name)

	seen := map[string]bool{}
	var keywords []string
	add := func(word string) {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" || seen[word] {
			return
		}
		seen[word] = true
		keywords = append(keywords, word)
	}
	addTokens := func(s string) {
		for _, word := range strings.Fields(strings.ToLower(s)) {
			if len(word) > 2 {
				add(word)
			}
		}
	}

	addTokens(m.Name)
	for _, ing := range m.Ingredients {
		addTokens(ing)
	}
	for _, tag := range m.Tags {
		add(tag)
	}
	if m.Category != "" {
		add(m.Category)
	}

	m.SearchKeywords = keywords
}
