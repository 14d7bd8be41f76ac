// Package site serves the portfolio page and its HTMX endpoints.
package site

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/trailfolio/internal/contact"
	"github.com/Zachkp/trailfolio/internal/content"
	"github.com/Zachkp/trailfolio/internal/theme"
	"github.com/Zachkp/trailfolio/internal/trail"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	visitorCookie = "visitor_id"
	themeCookie   = "theme"
	cookieMaxAge  = 3600 * 24 * 365
)

type Options struct {
	Profile   *content.Profile
	Trail     trail.Config
	Themes    *theme.Preferences
	Mailer    contact.Mailer // nil falls back to mailto links
	StaticDir string
	Admin     *AdminOptions
}

type Server struct {
	profile   *content.Profile
	trail     trail.Config
	trailJSON string
	themes    *theme.Preferences
	mailer    contact.Mailer
	staticDir string
	admin     *AdminOptions
}

func New(opts Options) (*Server, error) {
	raw, err := json.Marshal(opts.Trail)
	if err != nil {
		return nil, err
	}
	themes := opts.Themes
	if themes == nil {
		themes = theme.NewPreferences(nil)
	}
	return &Server{
		profile:   opts.Profile,
		trail:     opts.Trail,
		trailJSON: string(raw),
		themes:    themes,
		mailer:    opts.Mailer,
		staticDir: opts.StaticDir,
		admin:     opts.Admin,
	}, nil
}

// Router builds the gin engine with every route mounted.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.New("").Funcs(template.FuncMap{
		"year": func() int { return time.Now().Year() },
	}).ParseFS(templateFS, "templates/*.html")))

	if s.staticDir != "" {
		r.Static("/static", s.staticDir)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/trail.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.trail)
	})

	page := r.Group("/")
	page.Use(visitorMiddleware())
	page.GET("/", s.index)
	page.GET("/contact-form", s.contactForm)
	page.POST("/contact", s.submitContact)
	page.POST("/theme", s.setTheme)

	mountAdmin(r, s.admin)

	return r
}

// visitorMiddleware hands every browser a random id so its theme can be
// remembered. Respects Do Not Track by issuing no cookie.
func visitorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(visitorCookie)
		if err == nil {
			if _, perr := uuid.Parse(id); perr == nil {
				c.Set(visitorCookie, id)
				c.Next()
				return
			}
		}

		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		id = uuid.NewString()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(visitorCookie, id, cookieMaxAge, "/", "", false, true)
		c.Set(visitorCookie, id)
		c.Next()
	}
}

func visitorID(c *gin.Context) string {
	return c.GetString(visitorCookie)
}

// currentTheme prefers the stored preference and falls back to the theme
// cookie for visitors without an id.
func (s *Server) currentTheme(c *gin.Context) theme.Theme {
	if id := visitorID(c); id != "" {
		return s.themes.Resolve(c.Request.Context(), id)
	}
	if raw, err := c.Cookie(themeCookie); err == nil {
		if t, err := theme.Parse(raw); err == nil {
			return t
		}
	}
	return theme.Default
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"profile":   s.profile,
		"theme":     s.currentTheme(c).String(),
		"trailJSON": s.trailJSON,
	})
}

func (s *Server) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"title": "Contact Me",
		"email": s.profile.Email,
	})
}

func (s *Server) submitContact(c *gin.Context) {
	var msg contact.Message
	if err := c.ShouldBind(&msg); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": "Sorry, that form could not be read."})
		return
	}
	msg.Normalize()
	if err := msg.Validate(); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": capitalize(err.Error()) + "."})
		return
	}

	if s.mailer == nil {
		s.mailto(c, msg)
		return
	}

	err := s.mailer.Send(c.Request.Context(), msg)
	switch {
	case errors.Is(err, contact.ErrNotConfigured):
		s.mailto(c, msg)
	case err != nil:
		log.Printf("Error sending email: %v", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
	default:
		c.HTML(http.StatusOK, "contact-success.html", gin.H{
			"success": "Thank you for your message! I'll get back to you soon.",
		})
	}
}

func (s *Server) mailto(c *gin.Context, msg contact.Message) {
	c.HTML(http.StatusOK, "contact-mailto.html", gin.H{
		"href": template.URL(contact.MailtoURL(s.profile.Email, msg)),
	})
}

// setTheme stores an explicit theme, or toggles the current one when the
// form carries none.
func (s *Server) setTheme(c *gin.Context) {
	next := s.currentTheme(c).Toggle()
	if raw := c.PostForm("theme"); raw != "" {
		t, err := theme.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		next = t
	}

	s.themes.Save(c.Request.Context(), visitorID(c), next)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(themeCookie, next.String(), cookieMaxAge, "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{"theme": next.String()})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
