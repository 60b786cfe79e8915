// Package metadata extracts YAML front matter from content files and
// flattens it into the string map the generators consume.
package metadata

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Extract splits content into its front matter map and remaining body.
// Content without a leading delimiter is returned unchanged with an
// empty map. A front matter block that is opened but never closed is an
// error.
func Extract(content string) (map[string]string, string, error) {
	if !strings.HasPrefix(content, delimiter+"\n") && content != delimiter {
		return map[string]string{}, content, nil
	}

	rest := strings.TrimPrefix(content, delimiter+"\n")

	var block, body string
	switch {
	// an immediately-closed empty block, e.g. "---\n---\nbody"
	case rest == delimiter || strings.HasPrefix(rest, delimiter+"\n"):
		body = strings.TrimPrefix(strings.TrimPrefix(rest, delimiter), "\n")
	default:
		idx := strings.Index(rest, "\n"+delimiter)
		if idx < 0 {
			return nil, "", fmt.Errorf("unterminated front matter block")
		}
		block = rest[:idx]
		body = strings.TrimPrefix(rest[idx+len("\n"+delimiter):], "\n")
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(block), &raw); err != nil {
		return nil, "", fmt.Errorf("parsing front matter: %w", err)
	}

	meta := make(map[string]string, len(raw))
	flatten("", raw, meta)
	return meta, body, nil
}

// ExtractFile reads path and extracts its front matter.
func ExtractFile(path string) (map[string]string, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	meta, body, err := Extract(string(content))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return meta, body, nil
}

// flatten converts nested front matter into dotted string keys.
// Sequences are joined with ", " so list-valued fields such as
// keywords stay addressable as a single metadata value.
func flatten(prefix string, value any, out map[string]string) {
	switch v := value.(type) {
	case map[string]any:
		for key, child := range v {
			name := key
			if prefix != "" {
				name = prefix + "." + key
			}
			flatten(name, child, out)
		}
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		out[prefix] = strings.Join(parts, ", ")
	case nil:
		out[prefix] = ""
	default:
		out[prefix] = fmt.Sprint(v)
	}
}

// Keys returns the metadata keys in sorted order.
func Keys(meta map[string]string) []string {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
