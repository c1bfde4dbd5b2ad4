package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// ExternalFood is one hit from the Edamam food-database parser, used as
// a fallback when the local catalog has nothing for a query.
type ExternalFood struct {
	FoodID    string             `json:"foodId"`
	Label     string             `json:"label"`
	Category  string             `json:"category"`
	Image     string             `json:"image,omitempty"`
	Nutrients map[string]float64 `json:"nutrients,omitempty"`
}

type NutritionFallbackService struct {
	appID  string
	appKey string
	client *http.Client
}

func NewNutritionFallbackService() *NutritionFallbackService {
	return &NutritionFallbackService{
		appID:  os.Getenv("EDAMAM_APP_ID"),
		appKey: os.Getenv("EDAMAM_APP_KEY"),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type edamamParserResponse struct {
	Hints []struct {
		Food struct {
			FoodID    string             `json:"foodId"`
			Label     string             `json:"label"`
			Category  string             `json:"category"`
			Image     string             `json:"image"`
			Nutrients map[string]float64 `json:"nutrients"`
		} `json:"food"`
	} `json:"hints"`
}

// Search queries the Edamam parser endpoint for foods matching the
// free-text query.
func (s *NutritionFallbackService) Search(query string) ([]ExternalFood, error) {
	u := fmt.Sprintf(
		"https://api.edamam.com/api/food-database/v2/parser?app_id=%s&app_key=%s&ingr=%s",
		s.appID, s.appKey, url.QueryEscape(query),
	)

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call Edamam parser: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Edamam parser response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("edamam parser API error %d: %s", resp.StatusCode, string(body))
	}

	var pr edamamParserResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("failed to parse Edamam parser JSON: %w", err)
	}

	results := make([]ExternalFood, 0, len(pr.Hints))
	for _, h := range pr.Hints {
		results = append(results, ExternalFood{
			FoodID:    h.Food.FoodID,
			Label:     h.Food.Label,
			Category:  h.Food.Category,
			Image:     h.Food.Image,
			Nutrients: h.Food.Nutrients,
		})
	}
	return results, nil
}
