package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastienrousseau/staticdatagen/internal/cname"
)

func newViper(settings map[string]any) *viper.Viper {
	v := viper.New()
	for key, value := range settings {
		v.Set(key, value)
	}
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, uint32(3600), cfg.Site.TTL)
	assert.Equal(t, "content", cfg.Content.Dir)
	assert.Equal(t, "public", cfg.Output.Dir)
	assert.NotNil(t, cfg.Metadata)
}

func TestLoadFullConfig(t *testing.T) {
	cfg, err := Load(newViper(map[string]any{
		"site.domain":   "example.com",
		"site.ttl":      7200,
		"site.base-url": "https://example.com",
		"content.dir":   "src",
		"output.dir":    "dist",
		"metadata":      map[string]string{"author": "Jane"},
	}))
	require.NoError(t, err)

	assert.Equal(t, "example.com", cfg.Site.Domain)
	assert.Equal(t, uint32(7200), cfg.Site.TTL)
	assert.Equal(t, "https://example.com", cfg.Site.BaseURL)
	assert.Equal(t, "src", cfg.Content.Dir)
	assert.Equal(t, "dist", cfg.Output.Dir)
	assert.Equal(t, "Jane", cfg.Metadata["author"])
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]any
	}{
		{"bad domain", map[string]any{"site.domain": "no-dots"}},
		{"zero ttl", map[string]any{"site.ttl": 0}},
		{"bad base url", map[string]any{"site.base-url": "example.com"}},
		{"empty content dir", map[string]any{"content.dir": ""}},
		{"empty output dir", map[string]any{"output.dir": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newViper(tt.settings))
			assert.Error(t, err)
		})
	}
}

func TestLoadInvalidDomainReportsKind(t *testing.T) {
	_, err := Load(newViper(map[string]any{"site.domain": " example.com"}))
	require.Error(t, err)
	assert.True(t, cname.IsKind(err, cname.ErrInvalidCharacters))
}

func TestBindEnv(t *testing.T) {
	t.Setenv("STATICDATAGEN_SITE_DOMAIN", "env.example.com")

	v := viper.New()
	BindEnv(v)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "env.example.com", cfg.Site.Domain)
}
