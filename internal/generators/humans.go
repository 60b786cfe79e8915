// Package generators produces the auxiliary site artifacts that sit
// alongside the CNAME record: humans.txt, manifest.json, robots.txt,
// security.txt, sitemaps and the tag index.
package generators

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"
)

const maxHumansFieldLength = 100

// HumansConfig holds the sanitized fields of a humans.txt file.
type HumansConfig struct {
	AuthorName       string
	AuthorLocation   string
	AuthorTwitter    string
	AuthorWebsite    string
	SiteComponents   string
	SiteLastUpdated  string
	SiteSoftware     string
	SiteStandards    string
	Thanks           string
}

// HumansBuilder accumulates fields and validation failures before a
// HumansConfig is produced. The first failure wins.
type HumansBuilder struct {
	cfg HumansConfig
	err error
}

// NewHumansBuilder returns an empty builder.
func NewHumansBuilder() *HumansBuilder {
	return &HumansBuilder{}
}

func (b *HumansBuilder) set(dst *string, value string) *HumansBuilder {
	if b.err != nil {
		return b
	}
	*dst = sanitizeField(value)
	return b
}

func (b *HumansBuilder) AuthorName(v string) *HumansBuilder {
	return b.set(&b.cfg.AuthorName, v)
}

func (b *HumansBuilder) AuthorLocation(v string) *HumansBuilder {
	return b.set(&b.cfg.AuthorLocation, v)
}

// AuthorTwitter normalizes a twitter handle into @name form. Handles
// containing characters outside [A-Za-z0-9_] are rejected.
func (b *HumansBuilder) AuthorTwitter(v string) *HumansBuilder {
	if b.err != nil {
		return b
	}
	handle, err := sanitizeTwitterHandle(v)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.AuthorTwitter = handle
	return b
}

// AuthorWebsite requires an http or https URL with a host.
func (b *HumansBuilder) AuthorWebsite(v string) *HumansBuilder {
	if b.err != nil {
		return b
	}
	if v == "" {
		b.cfg.AuthorWebsite = ""
		return b
	}
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		b.err = fmt.Errorf("invalid author website %q", v)
		return b
	}
	b.cfg.AuthorWebsite = v
	return b
}

func (b *HumansBuilder) SiteComponents(v string) *HumansBuilder {
	return b.set(&b.cfg.SiteComponents, v)
}

// SiteLastUpdated requires a YYYY-MM-DD date.
func (b *HumansBuilder) SiteLastUpdated(v string) *HumansBuilder {
	if b.err != nil {
		return b
	}
	if v == "" {
		b.cfg.SiteLastUpdated = ""
		return b
	}
	if _, err := time.Parse("2006-01-02", v); err != nil {
		b.err = fmt.Errorf("invalid last updated date %q", v)
		return b
	}
	b.cfg.SiteLastUpdated = v
	return b
}

func (b *HumansBuilder) SiteSoftware(v string) *HumansBuilder {
	return b.set(&b.cfg.SiteSoftware, v)
}

func (b *HumansBuilder) SiteStandards(v string) *HumansBuilder {
	return b.set(&b.cfg.SiteStandards, v)
}

func (b *HumansBuilder) Thanks(v string) *HumansBuilder {
	return b.set(&b.cfg.Thanks, v)
}

// Build returns the accumulated config or the first recorded failure.
func (b *HumansBuilder) Build() (HumansConfig, error) {
	if b.err != nil {
		return HumansConfig{}, b.err
	}
	return b.cfg, nil
}

// HumansFromMetadata builds a HumansConfig from front matter keys.
func HumansFromMetadata(meta map[string]string) (HumansConfig, error) {
	return NewHumansBuilder().
		AuthorName(meta["author"]).
		AuthorLocation(meta["author_location"]).
		AuthorTwitter(meta["author_twitter"]).
		AuthorWebsite(meta["author_website"]).
		SiteComponents(meta["site_components"]).
		SiteLastUpdated(meta["site_last_updated"]).
		SiteSoftware(meta["site_software"]).
		SiteStandards(meta["site_standards"]).
		Thanks(meta["thanks"]).
		Build()
}

// Generate renders the humans.txt content. Empty fields are omitted.
func (c HumansConfig) Generate() string {
	var sb strings.Builder

	sb.WriteString("/* TEAM */\n")
	writeHumansLine(&sb, "Name", c.AuthorName)
	writeHumansLine(&sb, "Location", c.AuthorLocation)
	writeHumansLine(&sb, "Twitter", c.AuthorTwitter)
	writeHumansLine(&sb, "Website", c.AuthorWebsite)

	sb.WriteString("\n/* THANKS */\n")
	writeHumansLine(&sb, "Thanks", c.Thanks)

	sb.WriteString("\n/* SITE */\n")
	writeHumansLine(&sb, "Last update", c.SiteLastUpdated)
	writeHumansLine(&sb, "Standards", c.SiteStandards)
	writeHumansLine(&sb, "Components", c.SiteComponents)
	writeHumansLine(&sb, "Software", c.SiteSoftware)

	return sb.String()
}

func writeHumansLine(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sb, "    %s: %s\n", label, value)
}

// sanitizeField trims whitespace, strips control characters and caps
// the result at maxHumansFieldLength.
func sanitizeField(v string) string {
	v = strings.TrimSpace(v)
	v = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, v)
	if len(v) > maxHumansFieldLength {
		v = v[:maxHumansFieldLength]
	}
	return v
}

func sanitizeTwitterHandle(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	name := strings.TrimPrefix(v, "@")
	for _, r := range name {
		if !isTwitterRune(r) {
			return "", fmt.Errorf("invalid twitter handle %q", v)
		}
	}
	if name == "" {
		return "", fmt.Errorf("invalid twitter handle %q", v)
	}
	return "@" + name, nil
}

func isTwitterRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') || r == '_'
}
