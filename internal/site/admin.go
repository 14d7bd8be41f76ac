package site

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/trailfolio/internal/theme"
)

// PrefsAdmin is the slice of the preference store the admin routes need.
type PrefsAdmin interface {
	Count(ctx context.Context, name, value string) (int64, error)
	Cleanup(ctx context.Context, maxAge time.Duration) (int64, error)
}

type AdminOptions struct {
	Username string
	Password string
	Store    PrefsAdmin
	MaxAge   time.Duration
}

type ThemeStats struct {
	Dark  int64 `json:"dark"`
	Light int64 `json:"light"`
}

type admin struct {
	opts  AdminOptions
	token string
}

func generateAdminToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// authMiddleware rejects requests without the session cookie issued at login.
func (a *admin) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || !constantTimeEqual(token, a.token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func (a *admin) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	userOK := constantTimeEqual(username, a.opts.Username)
	passOK := constantTimeEqual(password, a.opts.Password)
	if !userOK || !passOK {
		log.Printf("Failed admin login attempt")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("admin_token", a.token, 3600*24, "/admin", "", false, true)
	log.Printf("Admin login successful")
	c.JSON(http.StatusOK, gin.H{"message": "logged in"})
}

func (a *admin) logout(c *gin.Context) {
	c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (a *admin) stats(c *gin.Context) {
	ctx := c.Request.Context()
	var stats ThemeStats
	var err error
	if stats.Dark, err = a.opts.Store.Count(ctx, "theme", theme.Dark.String()); err == nil {
		stats.Light, err = a.opts.Store.Count(ctx, "theme", theme.Light.String())
	}
	if err != nil {
		log.Printf("Error loading admin stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (a *admin) cleanup(c *gin.Context) {
	removed, err := a.opts.Store.Cleanup(c.Request.Context(), a.opts.MaxAge)
	if err != nil {
		log.Printf("Error cleaning preferences: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cleanup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// mountAdmin adds the admin routes. Without credentials or a store they stay off.
func mountAdmin(r *gin.Engine, opts *AdminOptions) {
	if opts == nil || opts.Store == nil || opts.Username == "" || opts.Password == "" {
		log.Println("Admin routes disabled: set ADMIN_USERNAME and ADMIN_PASSWORD to enable")
		return
	}

	token, err := generateAdminToken()
	if err != nil {
		log.Printf("Admin routes disabled: %v", err)
		return
	}
	a := &admin{opts: *opts, token: token}

	r.POST("/admin/login", a.login)
	r.POST("/admin/logout", a.logout)

	group := r.Group("/admin")
	group.Use(a.authMiddleware())
	group.GET("/api/stats", a.stats)
	group.POST("/privacy/cleanup", a.cleanup)
}
