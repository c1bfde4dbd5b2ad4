package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

// Free-tier limits for the Gemini API plus a safety buffer so the
// upstream quota is never fully drained.
const (
	geminiModel           = "gemini-1.5-pro"
	geminiDailyLimit      = 1500
	geminiHourlyLimit     = 50
	geminiBufferFraction  = 0.1
	geminiMaxRetries      = 3
	geminiFallbackAfter   = 3 // consecutive failures
	geminiRequestTimeout  = 15 * time.Second
	geminiFallbackNote    = "(Note: Using fallback response due to API issues)"
	geminiQuotaExceeded   = "I've reached my daily limit. Please try again tomorrow."
	geminiRateLimited     = "I'm experiencing high traffic right now. Please try again in a few minutes."
	geminiConnectionError = "I'm having trouble connecting right now. Please try again in a moment."
)

// Canned answers keyed by topic, used whenever the upstream API is
// unavailable or over quota.
var fallbackResponses = map[string]string{
	"greeting":      "Hello! I'm your diet assistant. I can help you with meal planning, nutrition advice, and healthy eating tips. What would you like to know?",
	"meal_planning": "For meal planning, I recommend focusing on balanced meals with protein, healthy carbs, and vegetables. Would you like specific meal suggestions?",
	"nutrition":     "Good nutrition includes a variety of whole foods, plenty of vegetables, lean proteins, and healthy fats. What specific nutrition questions do you have?",
	"weight_loss":   "Sustainable weight loss involves creating a calorie deficit through diet and exercise. Focus on whole foods and regular physical activity.",
	"general":       "I'm here to help with your diet and nutrition goals. Please try asking about meal planning, nutrition advice, or healthy eating tips.",
}

type QuotaStatus struct {
	DailyRequests           int    `json:"dailyRequests"`
	DailyLimit              int    `json:"dailyLimit"`
	DailyBufferLimit        int    `json:"dailyBufferLimit"`
	HourlyRequests          int    `json:"hourlyRequests"`
	HourlyLimit             int    `json:"hourlyLimit"`
	QuotaExceeded           bool   `json:"quotaExceeded"`
	RemainingDailyRequests  int    `json:"remainingDailyRequests"`
	RemainingHourlyRequests int    `json:"remainingHourlyRequests"`
	ConsecutiveFailures     int    `json:"consecutiveFailures"`
	TotalRequests           int    `json:"totalRequests"`
	TotalFailures           int    `json:"totalFailures"`
	LastResetDate           string `json:"lastResetDate"`
	SuccessRate             int    `json:"successRate"`
}

type ChatResponse struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	Fallback    bool        `json:"fallback,omitempty"`
	QuotaStatus QuotaStatus `json:"quotaStatus"`
}

// ChatbotService proxies chat messages to the Gemini REST API with
// process-local quota accounting. All mutable state sits behind one
// mutex; handlers share a single instance.
type ChatbotService struct {
	apiKey string
	client *http.Client

	mu                  sync.Mutex
	history             []geminiContent
	dailyRequests       int
	hourlyRequests      int
	lastResetDate       string
	lastHourReset       int
	quotaExceeded       bool
	consecutiveFailures int
	totalRequests       int
	totalFailures       int
}

func NewChatbotService() *ChatbotService {
	now := time.Now()
	return &ChatbotService{
		apiKey:        os.Getenv("GEMINI_API_KEY"),
		client:        &http.Client{Timeout: geminiRequestTimeout},
		lastResetDate: now.Format(dayKeyLayout),
		lastHourReset: now.Hour(),
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GetResponse answers a chat message, preferring the live API and
// degrading to a canned topical response when quota or connectivity
// rules it out.
func (s *ChatbotService) GetResponse(message string) ChatResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rollQuotaWindowsLocked(time.Now())

	if !s.canRequestLocked() {
		reason := geminiQuotaExceeded
		if !s.quotaExceeded && s.hourlyRequests >= geminiHourlyLimit {
			reason = "Hourly limit reached. Please try again in a few minutes."
		}
		return ChatResponse{
			Success:     true,
			Message:     fallbackFor(message) + "\n\n" + reason,
			Fallback:    true,
			QuotaStatus: s.quotaStatusLocked(),
		}
	}

	s.dailyRequests++
	s.hourlyRequests++
	s.totalRequests++

	text, err := s.sendLocked(message)
	if err == nil {
		s.consecutiveFailures = 0
		return ChatResponse{
			Success:     true,
			Message:     text,
			QuotaStatus: s.quotaStatusLocked(),
		}
	}

	s.consecutiveFailures++
	s.totalFailures++

	if isRateLimited(err) {
		s.quotaExceeded = true
		return ChatResponse{
			Success:     false,
			Message:     geminiRateLimited,
			QuotaStatus: s.quotaStatusLocked(),
		}
	}
	if s.consecutiveFailures >= geminiFallbackAfter {
		return ChatResponse{
			Success:     true,
			Message:     fallbackFor(message) + "\n\n" + geminiFallbackNote,
			Fallback:    true,
			QuotaStatus: s.quotaStatusLocked(),
		}
	}
	return ChatResponse{
		Success:     false,
		Message:     geminiConnectionError,
		QuotaStatus: s.quotaStatusLocked(),
	}
}

// sendLocked posts the conversation to Gemini, retrying with
// exponential backoff on 429s. Caller holds the mutex.
func (s *ChatbotService) sendLocked(message string) (string, error) {
	contents := append(append([]geminiContent{}, s.history...), geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: message}},
	})
	body, err := json.Marshal(geminiRequest{Contents: contents})
	if err != nil {
		return "", err
	}

	u := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		geminiModel, s.apiKey,
	)

	var lastErr error
	for attempt := 0; attempt < geminiMaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<attempt) * time.Second)
		}

		resp, err := s.client.Post(u, "application/json", bytes.NewReader(body))
		if err != nil {
			lastErr = fmt.Errorf("failed to call Gemini API: %w", err)
			continue
		}
		raw, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read Gemini response: %w", err)
			continue
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = errRateLimited
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("gemini API error %d: %s", resp.StatusCode, string(raw))
		}

		var gr geminiResponse
		if err := json.Unmarshal(raw, &gr); err != nil {
			return "", fmt.Errorf("failed to parse Gemini JSON: %w", err)
		}
		if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
			return "", fmt.Errorf("gemini returned no candidates")
		}
		text := gr.Candidates[0].Content.Parts[0].Text

		s.history = append(s.history,
			geminiContent{Role: "user", Parts: []geminiPart{{Text: message}}},
			geminiContent{Role: "model", Parts: []geminiPart{{Text: text}}},
		)
		return text, nil
	}
	return "", lastErr
}

var errRateLimited = fmt.Errorf("rate limited")

func isRateLimited(err error) bool {
	return err == errRateLimited || strings.Contains(err.Error(), "quota") || strings.Contains(err.Error(), "Too Many Requests")
}

func (s *ChatbotService) QuotaStatus() QuotaStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rollQuotaWindowsLocked(time.Now())
	return s.quotaStatusLocked()
}

// ResetChat drops the conversation history, not the quota counters.
func (s *ChatbotService) ResetChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.consecutiveFailures = 0
}

func (s *ChatbotService) rollQuotaWindowsLocked(now time.Time) {
	today := now.Format(dayKeyLayout)
	if today != s.lastResetDate {
		s.dailyRequests = 0
		s.lastResetDate = today
		s.quotaExceeded = false
		s.consecutiveFailures = 0
	}
	if now.Hour() != s.lastHourReset {
		s.hourlyRequests = 0
		s.lastHourReset = now.Hour()
	}
}

func (s *ChatbotService) canRequestLocked() bool {
	if s.quotaExceeded {
		return false
	}
	if s.hourlyRequests >= geminiHourlyLimit {
		return false
	}
	return s.dailyRequests < dailyBufferLimit()
}

func dailyBufferLimit() int {
	return int(float64(geminiDailyLimit) * (1 - geminiBufferFraction))
}

func (s *ChatbotService) quotaStatusLocked() QuotaStatus {
	buffer := dailyBufferLimit()
	successRate := 100
	if s.totalRequests > 0 {
		successRate = roundInt(float64(s.totalRequests-s.totalFailures) / float64(s.totalRequests) * 100)
	}
	return QuotaStatus{
		DailyRequests:           s.dailyRequests,
		DailyLimit:              geminiDailyLimit,
		DailyBufferLimit:        buffer,
		HourlyRequests:          s.hourlyRequests,
		HourlyLimit:             geminiHourlyLimit,
		QuotaExceeded:           s.quotaExceeded,
		RemainingDailyRequests:  maxInt(0, buffer-s.dailyRequests),
		RemainingHourlyRequests: maxInt(0, geminiHourlyLimit-s.hourlyRequests),
		ConsecutiveFailures:     s.consecutiveFailures,
		TotalRequests:           s.totalRequests,
		TotalFailures:           s.totalFailures,
		LastResetDate:           s.lastResetDate,
		SuccessRate:             successRate,
	}
}

// fallbackFor picks the canned response whose topic best matches the
// query keywords.
func fallbackFor(query string) string {
	q := strings.ToLower(query)
	switch {
	case containsAny(q, "hello", "hi", "hey"):
		return fallbackResponses["greeting"]
	case containsAny(q, "meal", "food", "eat", "breakfast", "lunch", "dinner"):
		return fallbackResponses["meal_planning"]
	case containsAny(q, "nutrition", "nutrient", "vitamin", "protein", "carb", "fat"):
		return fallbackResponses["nutrition"]
	case containsAny(q, "weight", "lose", "diet", "calorie", "burn"):
		return fallbackResponses["weight_loss"]
	default:
		return fallbackResponses["general"]
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
