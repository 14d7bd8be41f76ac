// Package theme handles the dark/light preference for the site shell.
package theme

import (
	"context"
	"fmt"
	"log"
	"strings"
)

type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"

	Default = Dark

	// preference name used in the store
	prefName = "theme"
)

func Parse(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Dark:
		return Dark, nil
	case Light:
		return Light, nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

func (t Theme) String() string { return string(t) }

// Store is the key-value backend the preference lives in.
type Store interface {
	Get(ctx context.Context, visitor, name string) (string, bool, error)
	Set(ctx context.Context, visitor, name, value string) error
}

// Preferences resolves and saves a visitor's theme. Storage problems never
// reach the caller: reads fall back to Default and failed writes are logged.
type Preferences struct {
	store Store
}

// NewPreferences accepts a nil store, in which case nothing is persisted.
func NewPreferences(store Store) *Preferences {
	return &Preferences{store: store}
}

func (p *Preferences) Resolve(ctx context.Context, visitor string) Theme {
	if p.store == nil || visitor == "" {
		return Default
	}

	raw, ok, err := p.store.Get(ctx, visitor, prefName)
	if err != nil {
		log.Printf("Error loading theme preference: %v", err)
		return Default
	}
	if !ok {
		return Default
	}

	t, err := Parse(raw)
	if err != nil {
		log.Printf("Ignoring stored theme: %v", err)
		return Default
	}
	return t
}

func (p *Preferences) Save(ctx context.Context, visitor string, t Theme) {
	if p.store == nil || visitor == "" {
		return
	}
	if err := p.store.Set(ctx, visitor, prefName, t.String()); err != nil {
		log.Printf("Error saving theme preference: %v", err)
	}
}
