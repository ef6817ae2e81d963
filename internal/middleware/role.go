package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studymate/studymate-api/internal/repository"
)

// RequireStoredRole gates a route on the caller's STORED role. The role claim
// inside the token is client-supplied and never trusted; the gate always
// resolves the session email against the users table.
func RequireStoredRole(userRepo repository.UserStore, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		session, err := GetUserSession(c)
		if err != nil {
			_ = c.Error(err) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
			c.Abort()
			return
		}

		user, err := userRepo.GetByEmail(c.Request.Context(), session.Email)
		if err != nil {
			_ = c.Error(err) //nolint:errcheck
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			c.Abort()
			return
		}

		if user == nil || !allowed[user.Role] {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
			c.Abort()
			return
		}

		c.Next()
	}
}
