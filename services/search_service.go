package services

import (
	"context"
	"sort"
	"strings"

	"backend/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Relevance assigned by the first strategy that finds an entry.
const (
	relevanceExact     = 100
	relevanceTextIndex = 80
	relevanceSubstring = 60
	relevanceToken     = 40
	relevanceFuzzy     = 20
)

type SearchService struct {
	db *gorm.DB
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

type SearchResult struct {
	Meal      models.PredefinedMeal `json:"meal"`
	Relevance int                   `json:"relevance"`
}

type Suggestion struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Relevance int    `json:"relevance"`
}

// SearchMeals runs the five matching strategies in priority order and merges
// their candidates. The merge is first-strategy-wins: an entry already found
// by a higher-priority strategy is never overwritten by a later one. The
// merged set is sorted by relevance descending and truncated to limit.
func (s *SearchService) SearchMeals(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []SearchResult{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	type strategy struct {
		run       func(context.Context, string, int) ([]models.PredefinedMeal, error)
		relevance int
	}
	strategies := []strategy{
		{s.exactSearch, relevanceExact},
		{s.textSearch, relevanceTextIndex},
		{s.substringSearch, relevanceSubstring},
		{s.tokenSearch, relevanceToken},
		{s.fuzzySearch, relevanceFuzzy},
	}

	found := map[uint]bool{}
	var merged []SearchResult
	for _, st := range strategies {
		meals, err := st.run(ctx, q, limit)
		if err != nil {
			return nil, err
		}
		for _, meal := range meals {
			if found[meal.ID] {
				continue
			}
			found[meal.ID] = true
			merged = append(merged, SearchResult{Meal: meal, Relevance: st.relevance})
		}
	}

	return rankResults(merged, limit), nil
}

// rankResults sorts by relevance descending (stable, so entries found by the
// same strategy keep store order) and truncates to limit.
func rankResults(results []SearchResult, limit int) []SearchResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})
	if len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []SearchResult{}
	}
	return results
}

// Strategy 1: case-insensitive full-string match against name, search name
// or any keyword.
func (s *SearchService) exactSearch(ctx context.Context, query string, limit int) ([]models.PredefinedMeal, error) {
	var meals []models.PredefinedMeal
	err := s.db.WithContext(ctx).
		Preload("Units").
		Where("LOWER(name) = ? OR search_name = ? OR ? = ANY(search_keywords)", query, query, query).
		Limit(limit).
		Find(&meals).Error
	return meals, err
}

// Strategy 2: the store's native text index, ranked by ts_rank.
func (s *SearchService) textSearch(ctx context.Context, query string, limit int) ([]models.PredefinedMeal, error) {
	const vector = "to_tsvector('english', name || ' ' || array_to_string(search_keywords, ' ') || ' ' || array_to_string(ingredients, ' '))"
	var meals []models.PredefinedMeal
	err := s.db.WithContext(ctx).
		Preload("Units").
		Where(vector+" @@ plainto_tsquery('english', ?)", query).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "ts_rank(" + vector + ", plainto_tsquery('english', ?)) DESC",
			Vars:               []interface{}{query},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Find(&meals).Error
	return meals, err
}

// Strategy 3: case-insensitive substring containment.
func (s *SearchService) substringSearch(ctx context.Context, query string, limit int) ([]models.PredefinedMeal, error) {
	var meals []models.PredefinedMeal
	pattern := "%" + query + "%"
	err := s.db.WithContext(ctx).
		Preload("Units").
		Where("name ILIKE ? OR search_name ILIKE ? OR array_to_string(ingredients, ' ') ILIKE ? OR array_to_string(search_keywords, ' ') ILIKE ?",
			pattern, pattern, pattern, pattern).
		Limit(limit).
		Find(&meals).Error
	return meals, err
}

// Strategy 4: every surviving token must match some field (AND across
// tokens, OR across fields per token). Tokens of 2 characters or fewer are
// discarded; if none survive the strategy contributes nothing.
func (s *SearchService) tokenSearch(ctx context.Context, query string, limit int) ([]models.PredefinedMeal, error) {
	tokens := searchTokens(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	tx := s.db.WithContext(ctx).Preload("Units")
	for _, tok := range tokens {
		pattern := "%" + tok + "%"
		tx = tx.Where("name ILIKE ? OR search_name ILIKE ? OR array_to_string(ingredients, ' ') ILIKE ? OR ? = ANY(search_keywords)",
			pattern, pattern, pattern, tok)
	}

	var meals []models.PredefinedMeal
	err := tx.Limit(limit).Find(&meals).Error
	return meals, err
}

// Strategy 5: substring match against typo variations of the query.
func (s *SearchService) fuzzySearch(ctx context.Context, query string, limit int) ([]models.PredefinedMeal, error) {
	const fields = "name ILIKE ? OR search_name ILIKE ? OR array_to_string(search_keywords, ' ') ILIKE ?"

	variations := GenerateFuzzyVariations(query)
	pattern := "%" + variations[0] + "%"
	cond := s.db.Where(fields, pattern, pattern, pattern)
	for _, v := range variations[1:] {
		pattern = "%" + v + "%"
		cond = cond.Or(fields, pattern, pattern, pattern)
	}

	var meals []models.PredefinedMeal
	err := s.db.WithContext(ctx).
		Preload("Units").
		Where(cond).
		Limit(limit).
		Find(&meals).Error
	return meals, err
}

// searchTokens splits on whitespace and drops tokens of 2 chars or fewer.
func searchTokens(query string) []string {
	var tokens []string
	for _, tok := range strings.Fields(query) {
		if len(tok) > 2 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Leetspeak homoglyphs used for fuzzy variation generation.
var fuzzyReplacements = map[string][]string{
	"a": {"@", "4"},
	"e": {"3"},
	"i": {"1", "!"},
	"o": {"0"},
	"s": {"5", "$"},
	"t": {"7"},
	"b": {"8"},
	"g": {"9"},
}

// GenerateFuzzyVariations expands a query into its typo-variation set:
// the original string; for each homoglyph character present, the string
// with all occurrences replaced; the string with its trailing character
// removed (only when longer than 3); and every adjacent-pair transposition.
// Variants are deduplicated, original first.
func GenerateFuzzyVariations(query string) []string {
	seen := map[string]bool{}
	var variations []string
	add := func(v string) {
		if !seen[v] {
			seen[v] = true
			variations = append(variations, v)
		}
	}

	add(query)

	for char, replacements := range fuzzyReplacements {
		if !strings.Contains(query, char) {
			continue
		}
		for _, r := range replacements {
			add(strings.ReplaceAll(query, char, r))
		}
	}

	if len(query) > 3 {
		add(query[:len(query)-1])
	}

	for i := 0; i < len(query)-1; i++ {
		chars := []byte(query)
		chars[i], chars[i+1] = chars[i+1], chars[i]
		add(string(chars))
	}

	return variations
}

// Suggest returns prefix-oriented completions: a prefix shorter than 2
// characters yields nothing; name-prefix matches (relevance 100) rank
// above interior matches (50), ties broken alphabetically by name.
func (s *SearchService) Suggest(ctx context.Context, prefix string, limit int) ([]Suggestion, error) {
	q := strings.ToLower(strings.TrimSpace(prefix))
	if len(q) < 2 {
		return []Suggestion{}, nil
	}
	if limit <= 0 {
		limit = 5
	}

	var meals []models.PredefinedMeal
	pattern := "%" + q + "%"
	if err := s.db.WithContext(ctx).
		Where("name ILIKE ? OR array_to_string(search_keywords, ' ') ILIKE ?", pattern, pattern).
		Find(&meals).Error; err != nil {
		return nil, err
	}

	return rankSuggestions(meals, q, limit), nil
}

func rankSuggestions(meals []models.PredefinedMeal, prefix string, limit int) []Suggestion {
	suggestions := make([]Suggestion, 0, len(meals))
	for _, m := range meals {
		rel := 50
		if strings.HasPrefix(strings.ToLower(m.Name), prefix) {
			rel = 100
		}
		suggestions = append(suggestions, Suggestion{
			ID:        m.ID,
			Name:      m.Name,
			Category:  m.Category,
			Relevance: rel,
		})
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Relevance != suggestions[j].Relevance {
			return suggestions[i].Relevance > suggestions[j].Relevance
		}
		return suggestions[i].Name < suggestions[j].Name
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

func (s *SearchService) SearchByCategory(ctx context.Context, category string, limit int) ([]models.PredefinedMeal, error) {
	if limit <= 0 {
		limit = 10
	}
	var meals []models.PredefinedMeal
	err := s.db.WithContext(ctx).
		Preload("Units").
		Where("category = ?", strings.ToLower(category)).
		Limit(limit).
		Find(&meals).Error
	return meals, err
}

func (s *SearchService) SearchByTags(ctx context.Context, tags []string, limit int) ([]models.PredefinedMeal, error) {
	if limit <= 0 {
		limit = 10
	}
	lowered := make([]string, len(tags))
	for i, t := range tags {
		lowered[i] = strings.ToLower(t)
	}
	var meals []models.PredefinedMeal
	err := s.db.WithContext(ctx).
		Preload("Units").
		Where("tags && ?", pq.Array(lowered)).
		Limit(limit).
		Find(&meals).Error
	return meals, err
}
