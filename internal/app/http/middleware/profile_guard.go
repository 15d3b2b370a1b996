package middleware

import (
	"net/http"

	"companion-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

const profileContextKey = "profile"

// RequireProfile loads the authenticated user's profile and stashes it in
// the request context. Runs after AuthMiddleware. A missing profile row
// means the account was never fully provisioned, so the request is refused
// rather than treated as a server fault.
func RequireProfile(profiles users.ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		profile, err := profiles.ByUserID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Profile not found",
			})
			return
		}

		c.Set(profileContextKey, profile)
		c.Next()
	}
}

// ProfileFromContext returns the profile stashed by RequireProfile.
func ProfileFromContext(c *gin.Context) (*users.UserProfile, bool) {
	v, exists := c.Get(profileContextKey)
	if !exists {
		return nil, false
	}
	profile, ok := v.(*users.UserProfile)
	return profile, ok
}
