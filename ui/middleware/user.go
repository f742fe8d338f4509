package middleware

import (
	"net/http"

	"hormoiq/domain/core"

	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// RequireUserID parses the :id path parameter as a user ID and aborts with 400
// when it is not a UUID
func RequireUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := core.ParseUserID(c.Param("id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_INPUT"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the user ID stored by RequireUserID
func UserID(c *gin.Context) core.UserID {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(core.UserID); ok {
			return id
		}
	}
	return ""
}
