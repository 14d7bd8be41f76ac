package site

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/trailfolio/internal/contact"
	"github.com/Zachkp/trailfolio/internal/content"
	"github.com/Zachkp/trailfolio/internal/prefs"
	"github.com/Zachkp/trailfolio/internal/theme"
	"github.com/Zachkp/trailfolio/internal/trail"
)

type fakeMailer struct {
	sent []contact.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg contact.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newTestRouter(t *testing.T, mailer contact.Mailer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	profile, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	store, err := prefs.Open(filepath.Join(t.TempDir(), "prefs.db"), "salt")
	if err != nil {
		t.Fatalf("prefs.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv, err := New(Options{
		Profile: profile,
		Trail:   trail.DefaultConfig(),
		Themes:  theme.NewPreferences(store),
		Mailer:  mailer,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv.Router()
}

func visitorCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == visitorCookie {
			return c
		}
	}
	t.Fatal("No visitor cookie set")
	return nil
}

func TestIndexRendersProfile(t *testing.T) {
	r := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Zach Kordas-Potter", "Terminal Mail", "Languages", `class="dark"`, "data-trail=", "scroll-progress"} {
		if !strings.Contains(body, want) {
			t.Errorf("Page missing %q", want)
		}
	}
	visitorCookieFrom(t, w)
}

func TestIndexRespectsDoNotTrack(t *testing.T) {
	r := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("DNT", "1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == visitorCookie {
			t.Errorf("Visitor cookie issued despite DNT")
		}
	}
}

func TestThemeTogglePersists(t *testing.T) {
	r := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := visitorCookieFrom(t, w)

	toggle := func(form url.Values) map[string]string {
		req := httptest.NewRequest(http.MethodPost, "/theme", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return resp
	}

	if got := toggle(url.Values{})["theme"]; got != "light" {
		t.Errorf("Expected first toggle to give light, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), `class="light"`) {
		t.Error("Stored light theme not applied to page")
	}

	if got := toggle(url.Values{"theme": {"dark"}})["theme"]; got != "dark" {
		t.Errorf("Expected explicit dark, got %q", got)
	}
}

func TestThemeRejectsUnknown(t *testing.T) {
	r := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/theme", strings.NewReader("theme=sepia"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func postContact(r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var validForm = url.Values{
	"fullName": {"Ada Lovelace"},
	"email":    {"ada@example.com"},
	"message":  {"Hello from the engine room"},
}

func TestContactSends(t *testing.T) {
	m := &fakeMailer{}
	r := newTestRouter(t, m)

	w := postContact(r, validForm)
	if !strings.Contains(w.Body.String(), "Thank you for your message") {
		t.Errorf("Expected success fragment, got %s", w.Body.String())
	}
	if len(m.sent) != 1 || m.sent[0].Name != "Ada Lovelace" || m.sent[0].Body != "Hello from the engine room" {
		t.Errorf("Unexpected sent messages: %+v", m.sent)
	}
}

func TestContactValidation(t *testing.T) {
	m := &fakeMailer{}
	r := newTestRouter(t, m)

	form := url.Values{"fullName": {"Ada"}, "email": {"not-an-email"}, "message": {"hi"}}
	w := postContact(r, form)
	if !strings.Contains(w.Body.String(), "valid email") {
		t.Errorf("Expected email error, got %s", w.Body.String())
	}
	if len(m.sent) != 0 {
		t.Error("Invalid message was sent")
	}
}

func TestContactSendFailure(t *testing.T) {
	r := newTestRouter(t, &fakeMailer{err: errors.New("relay down")})

	w := postContact(r, validForm)
	if !strings.Contains(w.Body.String(), "error sending your message") {
		t.Errorf("Expected send error fragment, got %s", w.Body.String())
	}
}

func TestContactFallsBackToMailto(t *testing.T) {
	for name, mailer := range map[string]contact.Mailer{
		"no mailer":      nil,
		"not configured": &fakeMailer{err: contact.ErrNotConfigured},
	} {
		t.Run(name, func(t *testing.T) {
			r := newTestRouter(t, mailer)
			w := postContact(r, validForm)
			if !strings.Contains(w.Body.String(), `href="mailto:zachkordaspotter@gmail.com?`) {
				t.Errorf("Expected mailto link, got %s", w.Body.String())
			}
		})
	}
}

func TestContactForm(t *testing.T) {
	r := newTestRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contact-form", nil))

	if !strings.Contains(w.Body.String(), `hx-post="/contact"`) {
		t.Errorf("Expected HTMX form, got %s", w.Body.String())
	}
}

func TestTrailConfigEndpoint(t *testing.T) {
	r := newTestRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/trail.json", nil))

	var cfg trail.Config
	if err := json.Unmarshal(w.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Length != 9 || cfg.MoveAlpha != 0.35 || cfg.Sentinel != (trail.Dot{X: -100, Y: -100}) {
		t.Errorf("Unexpected trail config: %+v", cfg)
	}
}
