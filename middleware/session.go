package middleware

import (
	"net/http"

	"campusboard/models"
	"campusboard/services/auth"
	"campusboard/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "board_session"

const currentUserKey = "currentUser"

// SessionMiddleware resolves the session cookie to the authenticated
// user and stashes it in the request context. Anonymous requests pass
// through untouched.
func SessionMiddleware(authSvc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookieName)
		if err == nil && cookie != "" {
			usr, err := authSvc.CurrentUser(cookie)
			if err != nil {
				utils.GetLogger().Warn("failed to resolve session", zap.Error(err))
			} else if usr != nil {
				c.Set(currentUserKey, *usr)
			}
		}
		c.Next()
	}
}

// RequireAuthenticated gates mutating endpoints: requests without an
// authenticated session are rejected with 401.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(currentUserKey); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by SessionMiddleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, ok := c.Get(currentUserKey)
	if !ok {
		return models.User{}, false
	}
	usr, ok := val.(models.User)
	return usr, ok
}
