package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFallbackFor(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"Hello there", fallbackResponses["greeting"]},
		{"what should I eat for breakfast", fallbackResponses["meal_planning"]},
		{"how much protein do I need", fallbackResponses["nutrition"]},
		{"help me lose weight", fallbackResponses["weight_loss"]},
		{"tell me a joke", fallbackResponses["general"]},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, fallbackFor(tc.query), "query %q", tc.query)
	}
}

func TestQuotaWindowRollover(t *testing.T) {
	s := NewChatbotService()
	s.dailyRequests = 100
	s.hourlyRequests = 10
	s.quotaExceeded = true
	s.consecutiveFailures = 2

	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
	s.lastResetDate = now.Format(dayKeyLayout)
	s.lastHourReset = now.Hour()

	// Same day, same hour: nothing resets.
	s.rollQuotaWindowsLocked(now)
	assert.Equal(t, 100, s.dailyRequests)
	assert.Equal(t, 10, s.hourlyRequests)
	assert.True(t, s.quotaExceeded)

	// Next hour: only the hourly counter resets.
	s.rollQuotaWindowsLocked(now.Add(time.Hour))
	assert.Equal(t, 100, s.dailyRequests)
	assert.Zero(t, s.hourlyRequests)

	// Next day: everything resets.
	s.rollQuotaWindowsLocked(now.AddDate(0, 0, 1))
	assert.Zero(t, s.dailyRequests)
	assert.False(t, s.quotaExceeded)
	assert.Zero(t, s.consecutiveFailures)
}

func TestCanRequestLimits(t *testing.T) {
	s := NewChatbotService()
	assert.True(t, s.canRequestLocked())

	s.quotaExceeded = true
	assert.False(t, s.canRequestLocked())

	s.quotaExceeded = false
	s.hourlyRequests = geminiHourlyLimit
	assert.False(t, s.canRequestLocked())

	s.hourlyRequests = 0
	s.dailyRequests = dailyBufferLimit()
	assert.False(t, s.canRequestLocked(), "buffer keeps a reserve below the hard daily limit")
}

func TestQuotaStatusRemaining(t *testing.T) {
	s := NewChatbotService()
	s.dailyRequests = 10
	s.hourlyRequests = 3
	s.totalRequests = 10
	s.totalFailures = 1

	status := s.quotaStatusLocked()

	assert.Equal(t, dailyBufferLimit()-10, status.RemainingDailyRequests)
	assert.Equal(t, geminiHourlyLimit-3, status.RemainingHourlyRequests)
	assert.Equal(t, 90, status.SuccessRate)
	assert.Equal(t, geminiDailyLimit, status.DailyLimit)
}
