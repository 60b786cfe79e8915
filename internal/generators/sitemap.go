package generators

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	sitemapHeader = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`

	newsSitemapHeader = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9" xmlns:news="http://www.google.com/schemas/sitemap-news/0.9">`

	sitemapFooter = `</urlset>`

	maxNewsKeywords = 10
)

// validNewsGenres are the genre values Google News accepts.
var validNewsGenres = map[string]bool{
	"PressRelease":  true,
	"Satire":        true,
	"Blog":          true,
	"OpEd":          true,
	"Opinion":       true,
	"UserGenerated": true,
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}

// SitemapConfig controls sitemap generation over a built site tree.
type SitemapConfig struct {
	BaseURL    string
	ChangeFreq string
	LastMod    string
}

// Sitemap walks root for index.html files and renders a sitemap with
// one url entry per page directory, sorted by location.
func (c SitemapConfig) Sitemap(root string) (string, error) {
	base := strings.TrimSuffix(c.BaseURL, "/")

	var locs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != "index.html" {
			return nil
		}
		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		loc := base + "/"
		if rel != "." {
			loc += filepath.ToSlash(rel) + "/"
		}
		locs = append(locs, loc)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(locs)

	var sb strings.Builder
	sb.WriteString(sitemapHeader + "\n")
	for _, loc := range locs {
		sb.WriteString(c.sitemapEntry(loc))
	}
	sb.WriteString(sitemapFooter + "\n")
	return sb.String(), nil
}

func (c SitemapConfig) sitemapEntry(loc string) string {
	var sb strings.Builder
	sb.WriteString("  <url>\n")
	fmt.Fprintf(&sb, "    <loc>%s</loc>\n", xmlEscape(loc))
	if c.LastMod != "" {
		fmt.Fprintf(&sb, "    <lastmod>%s</lastmod>\n", xmlEscape(c.LastMod))
	}
	if c.ChangeFreq != "" {
		fmt.Fprintf(&sb, "    <changefreq>%s</changefreq>\n", xmlEscape(c.ChangeFreq))
	}
	sb.WriteString("  </url>\n")
	return sb.String()
}

// NewsEntry is one article entry of a Google News sitemap.
type NewsEntry struct {
	Loc             string
	PublicationName string
	Language        string
	Genres          []string
	Keywords        []string
	PublicationDate string
	Title           string
}

// NewsEntryFromMetadata builds a news entry from front matter keys.
func NewsEntryFromMetadata(meta map[string]string) NewsEntry {
	split := func(v string) []string {
		var out []string
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return NewsEntry{
		Loc:             meta["news_loc"],
		PublicationName: meta["news_publication_name"],
		Language:        meta["news_language"],
		Genres:          split(meta["news_genres"]),
		Keywords:        split(meta["news_keywords"]),
		PublicationDate: meta["news_publication_date"],
		Title:           meta["news_title"],
	}
}

// NewsSitemap renders a Google News sitemap from entries after
// validating each one.
func NewsSitemap(entries []NewsEntry) (string, error) {
	var sb strings.Builder
	sb.WriteString(newsSitemapHeader + "\n")
	for i, e := range entries {
		rendered, err := e.render()
		if err != nil {
			return "", fmt.Errorf("news entry %d: %w", i, err)
		}
		sb.WriteString(rendered)
	}
	sb.WriteString(sitemapFooter + "\n")
	return sb.String(), nil
}

func (e NewsEntry) render() (string, error) {
	if err := validateNewsURL(e.Loc); err != nil {
		return "", err
	}
	genres, err := validateNewsGenres(e.Genres)
	if err != nil {
		return "", err
	}
	keywords := validateNewsKeywords(e.Keywords)
	lang := validateNewsLanguage(e.Language)
	date := formatNewsDate(e.PublicationDate)

	var sb strings.Builder
	sb.WriteString("  <url>\n")
	fmt.Fprintf(&sb, "    <loc>%s</loc>\n", xmlEscape(e.Loc))
	sb.WriteString("    <news:news>\n")
	sb.WriteString("      <news:publication>\n")
	fmt.Fprintf(&sb, "        <news:name>%s</news:name>\n", xmlEscape(e.PublicationName))
	fmt.Fprintf(&sb, "        <news:language>%s</news:language>\n", lang)
	sb.WriteString("      </news:publication>\n")
	if len(genres) > 0 {
		fmt.Fprintf(&sb, "      <news:genres>%s</news:genres>\n", xmlEscape(strings.Join(genres, ", ")))
	}
	fmt.Fprintf(&sb, "      <news:publication_date>%s</news:publication_date>\n", date)
	fmt.Fprintf(&sb, "      <news:title>%s</news:title>\n", xmlEscape(e.Title))
	if len(keywords) > 0 {
		fmt.Fprintf(&sb, "      <news:keywords>%s</news:keywords>\n", xmlEscape(strings.Join(keywords, ", ")))
	}
	sb.WriteString("    </news:news>\n")
	sb.WriteString("  </url>\n")
	return sb.String(), nil
}

func validateNewsURL(loc string) error {
	if !strings.HasPrefix(loc, "http://") && !strings.HasPrefix(loc, "https://") {
		return fmt.Errorf("invalid news url %q", loc)
	}
	return nil
}

func validateNewsGenres(genres []string) ([]string, error) {
	for _, g := range genres {
		if !validNewsGenres[g] {
			return nil, fmt.Errorf("invalid news genre %q", g)
		}
	}
	return genres, nil
}

// validateNewsKeywords caps the keyword list at maxNewsKeywords.
func validateNewsKeywords(keywords []string) []string {
	if len(keywords) > maxNewsKeywords {
		return keywords[:maxNewsKeywords]
	}
	return keywords
}

// validateNewsLanguage accepts two-letter codes and falls back to "en".
func validateNewsLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if len(lang) != 2 {
		return "en"
	}
	for _, r := range lang {
		if r < 'a' || r > 'z' {
			return "en"
		}
	}
	return lang
}

// formatNewsDate converts RFC 1123 dates into the RFC 3339 form the
// news sitemap schema expects. Dates already in RFC 3339 pass through;
// anything unparsable becomes the current time.
func formatNewsDate(v string) string {
	v = strings.TrimSpace(v)
	for _, layout := range []string{time.RFC3339, time.RFC1123, time.RFC1123Z} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}
