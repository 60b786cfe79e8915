package generators

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	maxManifestNameLength        = 45
	maxManifestShortNameLength   = 12
	maxManifestDescriptionLength = 120

	defaultManifestStartURL    = "/"
	defaultManifestDisplay     = "standalone"
	defaultManifestOrientation = "portrait"
	defaultManifestColor       = "#ffffff"
	defaultIconSize            = "512x512"
)

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6}|rgb\([^)]*\))$`)

// ManifestIcon is a single icon entry of a web app manifest.
type ManifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type,omitempty"`
	Purpose string `json:"purpose,omitempty"`
}

// ManifestConfig holds the fields of a web app manifest.
type ManifestConfig struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name,omitempty"`
	Description     string         `json:"description,omitempty"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color,omitempty"`
	Icons           []ManifestIcon `json:"icons"`
	Orientation     string         `json:"orientation"`
	Scope           string         `json:"scope"`
}

// ManifestBuilder assembles a ManifestConfig, applying defaults and
// field sanitization on Build.
type ManifestBuilder struct {
	cfg ManifestConfig
}

// NewManifestBuilder returns an empty builder.
func NewManifestBuilder() *ManifestBuilder {
	return &ManifestBuilder{}
}

func (b *ManifestBuilder) Name(v string) *ManifestBuilder {
	b.cfg.Name = v
	return b
}

func (b *ManifestBuilder) ShortName(v string) *ManifestBuilder {
	b.cfg.ShortName = v
	return b
}

func (b *ManifestBuilder) Description(v string) *ManifestBuilder {
	b.cfg.Description = v
	return b
}

func (b *ManifestBuilder) StartURL(v string) *ManifestBuilder {
	b.cfg.StartURL = v
	return b
}

func (b *ManifestBuilder) Display(v string) *ManifestBuilder {
	b.cfg.Display = v
	return b
}

func (b *ManifestBuilder) BackgroundColor(v string) *ManifestBuilder {
	b.cfg.BackgroundColor = v
	return b
}

func (b *ManifestBuilder) ThemeColor(v string) *ManifestBuilder {
	b.cfg.ThemeColor = v
	return b
}

func (b *ManifestBuilder) Orientation(v string) *ManifestBuilder {
	b.cfg.Orientation = v
	return b
}

func (b *ManifestBuilder) Scope(v string) *ManifestBuilder {
	b.cfg.Scope = v
	return b
}

func (b *ManifestBuilder) AddIcon(icon ManifestIcon) *ManifestBuilder {
	b.cfg.Icons = append(b.cfg.Icons, icon)
	return b
}

// Build sanitizes all fields, applies defaults and requires a name.
func (b *ManifestBuilder) Build() (ManifestConfig, error) {
	cfg := b.cfg

	cfg.Name = sanitizeManifestText(cfg.Name, maxManifestNameLength)
	if cfg.Name == "" {
		return ManifestConfig{}, fmt.Errorf("manifest name is required")
	}
	cfg.ShortName = sanitizeManifestText(cfg.ShortName, maxManifestShortNameLength)
	cfg.Description = sanitizeManifestText(cfg.Description, maxManifestDescriptionLength)

	if cfg.StartURL == "" {
		cfg.StartURL = defaultManifestStartURL
	}
	if cfg.Display == "" {
		cfg.Display = defaultManifestDisplay
	}
	if cfg.Orientation == "" {
		cfg.Orientation = defaultManifestOrientation
	}
	if cfg.Scope == "" {
		cfg.Scope = defaultManifestStartURL
	}
	cfg.BackgroundColor = sanitizeColor(cfg.BackgroundColor)
	if cfg.ThemeColor != "" {
		cfg.ThemeColor = sanitizeColor(cfg.ThemeColor)
	}
	if cfg.Icons == nil {
		cfg.Icons = []ManifestIcon{}
	}

	return cfg, nil
}

// ManifestFromMetadata builds a manifest from front matter keys.
func ManifestFromMetadata(meta map[string]string) (ManifestConfig, error) {
	b := NewManifestBuilder().
		Name(meta["name"]).
		ShortName(meta["short_name"]).
		Description(meta["description"]).
		ThemeColor(meta["theme-color"]).
		BackgroundColor(meta["background-color"])

	if icon, ok := meta["icon"]; ok && icon != "" {
		b.AddIcon(ManifestIcon{Src: icon, Sizes: defaultIconSize})
	}
	return b.Build()
}

// Generate renders the manifest as indented JSON.
func (c ManifestConfig) Generate() (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding manifest: %w", err)
	}
	return string(data), nil
}

// sanitizeManifestText trims whitespace, strips control characters and
// caps the result at max bytes.
func sanitizeManifestText(v string, max int) string {
	v = strings.TrimSpace(v)
	v = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, v)
	if len(v) > max {
		v = v[:max]
	}
	return v
}

// sanitizeColor accepts #rgb, #rrggbb and rgb(...) forms; anything
// else falls back to white.
func sanitizeColor(v string) string {
	v = strings.TrimSpace(v)
	if colorPattern.MatchString(v) {
		return v
	}
	return defaultManifestColor
}
