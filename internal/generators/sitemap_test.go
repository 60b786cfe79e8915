package generators

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSitePage(t *testing.T, root string, parts ...string) {
	t.Helper()
	dir := filepath.Join(append([]string{root}, parts...)...)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html></html>"), 0o644))
}

func TestSitemap(t *testing.T) {
	root := t.TempDir()
	writeSitePage(t, root)
	writeSitePage(t, root, "posts", "hello")
	writeSitePage(t, root, "about")

	cfg := SitemapConfig{
		BaseURL:    "https://example.com",
		ChangeFreq: "weekly",
		LastMod:    "2026-08-30",
	}
	out, err := cfg.Sitemap(root)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, "<loc>https://example.com/</loc>")
	assert.Contains(t, out, "<loc>https://example.com/about/</loc>")
	assert.Contains(t, out, "<loc>https://example.com/posts/hello/</loc>")
	assert.Contains(t, out, "<changefreq>weekly</changefreq>")
	assert.Contains(t, out, "<lastmod>2026-08-30</lastmod>")

	// entries are sorted by location
	rootIdx := strings.Index(out, "https://example.com/</loc>")
	aboutIdx := strings.Index(out, "https://example.com/about/")
	postsIdx := strings.Index(out, "https://example.com/posts/")
	assert.Less(t, rootIdx, aboutIdx)
	assert.Less(t, aboutIdx, postsIdx)
}

func TestSitemapIgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	writeSitePage(t, root)
	require.NoError(t, os.WriteFile(filepath.Join(root, "style.css"), []byte("body{}"), 0o644))

	out, err := SitemapConfig{BaseURL: "https://example.com"}.Sitemap(root)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "<url>"))
}

func TestSitemapEmptyTree(t *testing.T) {
	out, err := SitemapConfig{BaseURL: "https://example.com"}.Sitemap(t.TempDir())
	require.NoError(t, err)
	assert.NotContains(t, out, "<url>")
	assert.Contains(t, out, "</urlset>")
}

func TestSitemapMissingRoot(t *testing.T) {
	_, err := SitemapConfig{BaseURL: "https://example.com"}.Sitemap(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestNewsSitemap(t *testing.T) {
	entries := []NewsEntry{{
		Loc:             "https://example.com/news/launch/",
		PublicationName: "Example News",
		Language:        "en",
		Genres:          []string{"PressRelease", "Blog"},
		Keywords:        []string{"go", "dns"},
		PublicationDate: "2026-08-30T10:00:00Z",
		Title:           "Launch <day>",
	}}

	out, err := NewsSitemap(entries)
	require.NoError(t, err)

	assert.Contains(t, out, `xmlns:news="http://www.google.com/schemas/sitemap-news/0.9"`)
	assert.Contains(t, out, "<news:name>Example News</news:name>")
	assert.Contains(t, out, "<news:genres>PressRelease, Blog</news:genres>")
	assert.Contains(t, out, "<news:keywords>go, dns</news:keywords>")
	assert.Contains(t, out, "<news:title>Launch &lt;day&gt;</news:title>")
	assert.Contains(t, out, "<news:publication_date>2026-08-30T10:00:00Z</news:publication_date>")
}

func TestNewsSitemapInvalidGenre(t *testing.T) {
	_, err := NewsSitemap([]NewsEntry{{
		Loc:    "https://example.com/",
		Genres: []string{"Tabloid"},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "genre")
}

func TestNewsSitemapInvalidURL(t *testing.T) {
	_, err := NewsSitemap([]NewsEntry{{Loc: "ftp://example.com/"}})
	assert.Error(t, err)
}

func TestNewsKeywordCap(t *testing.T) {
	keywords := make([]string, 15)
	for i := range keywords {
		keywords[i] = "kw"
	}
	assert.Len(t, validateNewsKeywords(keywords), maxNewsKeywords)
}

func TestNewsLanguageFallback(t *testing.T) {
	assert.Equal(t, "fr", validateNewsLanguage("FR"))
	assert.Equal(t, "en", validateNewsLanguage("english"))
	assert.Equal(t, "en", validateNewsLanguage(""))
	assert.Equal(t, "en", validateNewsLanguage("e1"))
}

func TestFormatNewsDate(t *testing.T) {
	got := formatNewsDate("Tue, 20 Jan 2026 15:04:05 UTC")
	assert.Equal(t, "2026-01-20T15:04:05Z", got)

	got = formatNewsDate("2026-01-20T15:04:05Z")
	assert.Equal(t, "2026-01-20T15:04:05Z", got)

	// unparsable dates fall back to now
	got = formatNewsDate("not a date")
	parsed, err := time.Parse(time.RFC3339, got)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute)
}

func TestNewsEntryFromMetadata(t *testing.T) {
	meta := map[string]string{
		"news_loc":              "https://example.com/news/",
		"news_publication_name": "Example News",
		"news_genres":           "Blog, Opinion",
		"news_keywords":         "go, dns, cname",
		"news_title":            "A Post",
	}
	e := NewsEntryFromMetadata(meta)
	assert.Equal(t, []string{"Blog", "Opinion"}, e.Genres)
	assert.Equal(t, []string{"go", "dns", "cname"}, e.Keywords)
	assert.Equal(t, "A Post", e.Title)
}
