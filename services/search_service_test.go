package services

import (
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFuzzyVariations(t *testing.T) {
	variations := GenerateFuzzyVariations("pasta")

	require.NotEmpty(t, variations)
	assert.Equal(t, "pasta", variations[0], "original query comes first")
	assert.Contains(t, variations, "p@st@", "all occurrences of a homoglyph char are replaced")
	assert.Contains(t, variations, "p4st4")
	assert.Contains(t, variations, "pa5ta")
	assert.Contains(t, variations, "pa$ta")
	assert.Contains(t, variations, "pas7a")
	assert.Contains(t, variations, "past", "trailing character removed")
	assert.Contains(t, variations, "apsta", "adjacent transposition")
	assert.Contains(t, variations, "psata")

	seen := map[string]bool{}
	for _, v := range variations {
		assert.False(t, seen[v], "variation %q appears twice", v)
		seen[v] = true
	}
}

func TestGenerateFuzzyVariationsShortQuery(t *testing.T) {
	variations := GenerateFuzzyVariations("egg")

	assert.NotContains(t, variations, "eg", "no trailing removal at length 3")
	assert.Contains(t, variations, "egg")
	assert.Contains(t, variations, "e99")
	assert.Contains(t, variations, "3gg")
	assert.NotContains(t, variations, "399", "substitutions are not combined")
	assert.Contains(t, variations, "geg")
}

func TestSearchTokens(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"chicken rice bowl", []string{"chicken", "rice", "bowl"}},
		{"an of it", nil},
		{"ab cde f", []string{"cde"}},
		{"", nil},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, searchTokens(tc.query), "query %q", tc.query)
	}
}

func TestRankResultsSortsAndTruncates(t *testing.T) {
	in := []SearchResult{
		{Meal: models.PredefinedMeal{Name: "fuzzy hit"}, Relevance: relevanceFuzzy},
		{Meal: models.PredefinedMeal{Name: "exact hit"}, Relevance: relevanceExact},
		{Meal: models.PredefinedMeal{Name: "substring a"}, Relevance: relevanceSubstring},
		{Meal: models.PredefinedMeal{Name: "substring b"}, Relevance: relevanceSubstring},
		{Meal: models.PredefinedMeal{Name: "token hit"}, Relevance: relevanceToken},
	}

	got := rankResults(in, 3)

	require.Len(t, got, 3)
	assert.Equal(t, "exact hit", got[0].Meal.Name)
	assert.Equal(t, "substring a", got[1].Meal.Name, "stable sort keeps store order within a tier")
	assert.Equal(t, "substring b", got[2].Meal.Name)
}

func TestRankResultsEmptyIsNonNil(t *testing.T) {
	got := rankResults(nil, 5)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankSuggestions(t *testing.T) {
	meals := []models.PredefinedMeal{
		{Model: gormModel(1), Name: "Spicy Chicken", Category: "dinner"},
		{Model: gormModel(2), Name: "Chicken Soup", Category: "lunch"},
		{Model: gormModel(3), Name: "Chia Pudding", Category: "breakfast"},
		{Model: gormModel(4), Name: "Chicken Curry", Category: "dinner"},
	}

	got := rankSuggestions(meals, "chi", 3)

	require.Len(t, got, 3)
	// Prefix matches first, alphabetical within the tier.
	assert.Equal(t, "Chia Pudding", got[0].Name)
	assert.Equal(t, 100, got[0].Relevance)
	assert.Equal(t, "Chicken Curry", got[1].Name)
	assert.Equal(t, "Chicken Soup", got[2].Name)
}

func TestRankSuggestionsInteriorMatch(t *testing.T) {
	meals := []models.PredefinedMeal{
		{Model: gormModel(1), Name: "Spicy Chicken", Category: "dinner"},
	}
	got := rankSuggestions(meals, "chi", 5)
	require.Len(t, got, 1)
	assert.Equal(t, 50, got[0].Relevance)
}
