package routes

import (
	"net/http"
	"time"

	"campusboard/handlers"
	"campusboard/middleware"
	"campusboard/services/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle collects everything route registration needs.
type HandlerBundle struct {
	AuthHandler         *handlers.AuthHandler
	AnnouncementHandler *handlers.AnnouncementHandler
	AuthSvc             auth.AuthService
	LoginRequestsPerMin int

	// UploadDir is served at /uploads when the local image store is
	// active; empty disables the static route.
	UploadDir string
}

// RegisterAuthRoutes registers login, logout, and the public who-am-i
// endpoint.
func RegisterAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.POST("/api/login", middleware.RateLimitMiddleware(hb.LoginRequestsPerMin), hb.AuthHandler.LoginHandler)
	r.POST("/api/logout", hb.AuthHandler.LogoutHandler)
	r.GET("/api/auth/user", hb.AuthHandler.CurrentUserHandler)
}

// RegisterAnnouncementRoutes registers the public feed and the
// auth-gated authoring endpoints.
func RegisterAnnouncementRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api")
	{
		// Public feed.
		api.GET("/announcements", hb.AnnouncementHandler.ListHandler)
		api.GET("/announcements/:id", hb.AnnouncementHandler.GetHandler)

		// Every mutating endpoint sits behind the session gate.
		protected := api.Group("")
		protected.Use(middleware.RequireAuthenticated())
		protected.POST("/announcements", hb.AnnouncementHandler.CreateHandler)
		protected.PUT("/announcements/:id", hb.AnnouncementHandler.UpdateHandler)
		protected.DELETE("/announcements/:id", hb.AnnouncementHandler.DeleteHandler)
		protected.POST("/summarize", hb.AnnouncementHandler.SummarizeHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Campus noticeboard is up"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.SessionMiddleware(hb.AuthSvc))

	if hb.UploadDir != "" {
		r.Static("/uploads", hb.UploadDir)
	}

	RegisterAuthRoutes(r, hb)
	RegisterAnnouncementRoutes(r, hb)
	RegisterHealthRoute(r)
}
