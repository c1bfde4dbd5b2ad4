package controllers

import (
	"net/http"
	"strings"

	"backend/services"

	"github.com/gin-gonic/gin"
)

// One shared instance: the quota counters are process state.
var chatbot = services.NewChatbotService()

func Chat(c *gin.Context) {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Message is required and must be a string",
		})
		return
	}

	c.JSON(http.StatusOK, chatbot.GetResponse(body.Message))
}

func ChatQuota(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"quota":   chatbot.QuotaStatus(),
	})
}

func ResetChat(c *gin.Context) {
	chatbot.ResetChat()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Chat history reset successfully",
	})
}
