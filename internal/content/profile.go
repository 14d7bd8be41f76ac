// Package content loads the static copy rendered on the portfolio page.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultProfile []byte

type Profile struct {
	Name     string       `yaml:"name" toml:"name" validate:"required"`
	Email    string       `yaml:"email" toml:"email" validate:"required,email"`
	Tagline  string       `yaml:"tagline" toml:"tagline"`
	About    string       `yaml:"about" toml:"about"`
	Location string       `yaml:"location" toml:"location"`
	Links    []Link       `yaml:"links" toml:"links" validate:"dive"`
	Projects []Project    `yaml:"projects" toml:"projects" validate:"dive"`
	Skills   []SkillGroup `yaml:"skills" toml:"skills" validate:"dive"`
}

type Link struct {
	Label string `yaml:"label" toml:"label" validate:"required"`
	URL   string `yaml:"url" toml:"url" validate:"required,url"`
}

type Project struct {
	Title       string   `yaml:"title" toml:"title" validate:"required"`
	Description string   `yaml:"description" toml:"description"`
	Tags        []string `yaml:"tags" toml:"tags"`
	Repo        string   `yaml:"repo" toml:"repo" validate:"omitempty,url"`
	Demo        string   `yaml:"demo" toml:"demo" validate:"omitempty,url"`
}

type SkillGroup struct {
	Category string   `yaml:"category" toml:"category" validate:"required"`
	Items    []string `yaml:"items" toml:"items" validate:"min=1"`
}

var validate = validator.New()

func (p *Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	return nil
}

// Default returns the profile compiled into the binary.
func Default() (*Profile, error) {
	return Parse(defaultProfile, ".yaml")
}

// Load reads a profile from disk; the extension picks the format.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

func Parse(data []byte, ext string) (*Profile, error) {
	var p Profile
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode yaml profile: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode toml profile: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported profile format %q", ext)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// FirstName is used in the hero greeting.
func (p *Profile) FirstName() string {
	if i := strings.IndexByte(p.Name, ' '); i > 0 {
		return p.Name[:i]
	}
	return p.Name
}
