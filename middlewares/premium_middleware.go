package middlewares

import (
	"net/http"
	"time"

	"backend/config"
	"backend/models"

	"github.com/gin-gonic/gin"
)

// PremiumMiddleware gates routes behind an active premium subscription.
// Runs after AuthMiddleware, which sets userID.
func PremiumMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")

		var user models.User
		if err := config.DB.First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		expired := user.PremiumExpiryDate != nil && user.PremiumExpiryDate.Before(time.Now())
		if !user.IsPremium || expired {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "This feature requires a premium subscription"})
			return
		}

		c.Next()
	}
}
