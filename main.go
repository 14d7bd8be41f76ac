package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/trailfolio/internal/config"
	"github.com/Zachkp/trailfolio/internal/contact"
	"github.com/Zachkp/trailfolio/internal/content"
	"github.com/Zachkp/trailfolio/internal/prefs"
	"github.com/Zachkp/trailfolio/internal/site"
	"github.com/Zachkp/trailfolio/internal/theme"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	profile, err := loadProfile(cfg.ContentPath)
	if err != nil {
		log.Fatal("Failed to load profile: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := site.Options{
		Profile:   profile,
		Trail:     cfg.Trail,
		StaticDir: cfg.StaticDir,
		Themes:    theme.NewPreferences(nil),
	}

	if cfg.DBPath != "" {
		store, err := prefs.Open(cfg.DBPath, visitorSalt(cfg.VisitorSalt))
		if err != nil {
			// the site still works, it just forgets themes between visits
			log.Printf("Theme persistence disabled: %v", err)
		} else {
			defer store.Close()
			opts.Themes = theme.NewPreferences(store)
			opts.Admin = &site.AdminOptions{
				Username: cfg.AdminUsername,
				Password: cfg.AdminPassword,
				Store:    store,
				MaxAge:   cfg.PrefsMaxAge,
			}
			go cleanupDaily(ctx, store, cfg.PrefsMaxAge)
		}
	}

	if cfg.SMTP.Configured() {
		if cfg.SMTP.To == "" {
			cfg.SMTP.To = profile.Email
		}
		opts.Mailer = contact.NewSMTPMailer(cfg.SMTP)
	} else {
		log.Println("SMTP credentials not configured, contact form will hand off to mailto")
	}

	srv, err := site.New(opts)
	if err != nil {
		log.Fatal("Failed to build site: ", err)
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Printf("Listening on :%s", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server error: ", err)
	}
}

func loadProfile(path string) (*content.Profile, error) {
	if path == "" {
		return content.Default()
	}
	return content.Load(path)
}

// visitorSalt falls back to a per-process salt, which means stored themes are
// forgotten on restart. Set VISITOR_SALT to keep them.
func visitorSalt(salt string) string {
	if salt != "" {
		return salt
	}
	log.Println("VISITOR_SALT not set, using a random salt for this run")
	return uuid.NewString()
}

func cleanupDaily(ctx context.Context, store *prefs.Store, maxAge time.Duration) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		if _, err := store.Cleanup(ctx, maxAge); err != nil {
			log.Printf("Error cleaning up preferences: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
