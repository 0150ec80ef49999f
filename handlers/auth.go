package handlers

import (
	"errors"
	"net/http"
	"time"

	"campusboard/middleware"
	"campusboard/services/auth"
	"campusboard/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes the login/logout/current-user endpoints.
type AuthHandler struct {
	AuthSvc      auth.AuthService
	SessionTTL   time.Duration
	SecureCookie bool
}

func NewAuthHandler(svc auth.AuthService, ttl time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{AuthSvc: svc, SessionTTL: ttl, SecureCookie: secureCookie}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler handles POST /api/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		return
	}

	session, cookieValue, err := h.AuthSvc.Login(req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	case errors.Is(err, auth.ErrAdminMissing):
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Admin user not found"})
		return
	case err != nil:
		utils.GetLogger().Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to log in"})
		return
	}

	c.SetCookie(middleware.SessionCookieName, cookieValue,
		int(h.SessionTTL.Seconds()), "/", "", h.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    session.User,
	})
}

// LogoutHandler handles POST /api/logout.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie != "" {
		if err := h.AuthSvc.Logout(cookie); err != nil {
			utils.GetLogger().Error("failed to destroy session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging out"})
			return
		}
	}
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// CurrentUserHandler handles GET /api/auth/user. It is public and
// answers null for anonymous callers instead of erroring.
func (h *AuthHandler) CurrentUserHandler(c *gin.Context) {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || cookie == "" {
		c.JSON(http.StatusOK, nil)
		return
	}
	usr, err := h.AuthSvc.CurrentUser(cookie)
	if err != nil {
		utils.GetLogger().Error("failed to fetch current user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch user"})
		return
	}
	if usr == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, usr)
}
