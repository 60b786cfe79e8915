package generators

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// excludedTags are generic terms filtered out of tag extraction.
var excludedTags = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "by": true, "for": true, "from": true,
	"in": true, "is": true, "it": true, "of": true, "on": true,
	"or": true, "the": true, "to": true, "was": true, "with": true,
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func htmlEscape(s string) string {
	return htmlEscaper.Replace(s)
}

// TagPage is one page listed under a tag in the index.
type TagPage struct {
	Title       string
	Permalink   string
	Description string
}

// SanitizeTag lowercases a tag and strips everything that is not a
// letter or digit. Tags that sanitize to the empty string or land in
// the excluded set are dropped.
func SanitizeTag(tag string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(tag)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	clean := sb.String()
	if clean == "" || excludedTags[clean] {
		return ""
	}
	return clean
}

// ExtractTags reads the comma separated tags value from front matter
// and returns the sanitized, deduplicated tags in input order.
func ExtractTags(meta map[string]string) []string {
	var tags []string
	seen := map[string]bool{}
	for _, raw := range strings.Split(meta["tags"], ",") {
		tag := SanitizeTag(raw)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// TagIndex maps sanitized tags to the pages carrying them.
type TagIndex map[string][]TagPage

// NewTagIndex returns an empty index.
func NewTagIndex() TagIndex {
	return TagIndex{}
}

// AddPage registers page under every tag found in meta.
func (idx TagIndex) AddPage(meta map[string]string, page TagPage) {
	for _, tag := range ExtractTags(meta) {
		idx[tag] = append(idx[tag], page)
	}
}

// GenerateHTML renders the tag index as an HTML fragment with one
// section per tag, sorted alphabetically.
func (idx TagIndex) GenerateHTML() string {
	tags := make([]string, 0, len(idx))
	for tag := range idx {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var sb strings.Builder
	sb.WriteString("<div class=\"tags\">\n")
	for _, tag := range tags {
		fmt.Fprintf(&sb, "  <section id=\"tag-%s\">\n", htmlEscape(tag))
		fmt.Fprintf(&sb, "    <h2>%s</h2>\n", htmlEscape(tag))
		sb.WriteString("    <ul>\n")
		for _, page := range idx[tag] {
			fmt.Fprintf(&sb, "      <li><a href=\"%s\">%s</a>", htmlEscape(page.Permalink), htmlEscape(page.Title))
			if page.Description != "" {
				fmt.Fprintf(&sb, " - %s", htmlEscape(page.Description))
			}
			sb.WriteString("</li>\n")
		}
		sb.WriteString("    </ul>\n")
		sb.WriteString("  </section>\n")
	}
	sb.WriteString("</div>\n")
	return sb.String()
}
