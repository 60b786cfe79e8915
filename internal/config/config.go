// Package config loads generation settings from the config file,
// environment and flags via viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/sebastienrousseau/staticdatagen/internal/cname"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// STATICDATAGEN_SITE_DOMAIN.
const EnvPrefix = "STATICDATAGEN"

// Config holds the resolved generation settings.
type Config struct {
	Site     SiteConfig        `mapstructure:"site"`
	Content  ContentConfig     `mapstructure:"content"`
	Output   OutputConfig      `mapstructure:"output"`
	Metadata map[string]string `mapstructure:"metadata"`
}

// SiteConfig describes the site the artifacts are generated for.
type SiteConfig struct {
	Domain  string `mapstructure:"domain"`
	TTL     uint32 `mapstructure:"ttl"`
	BaseURL string `mapstructure:"base-url"`
}

// ContentConfig points at the source content tree.
type ContentConfig struct {
	Dir string `mapstructure:"dir"`
}

// OutputConfig points at the artifact output tree.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("site.ttl", cname.DefaultTTL)
	v.SetDefault("content.dir", "content")
	v.SetDefault("output.dir", "public")
}

// Load resolves the configuration from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.Metadata == nil {
		cfg.Metadata = map[string]string{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that generation depends on. The domain
// is validated with the same rules the record layer applies, so bad
// configuration fails before any files are written.
func (c *Config) Validate() error {
	if c.Site.Domain != "" {
		if _, err := cname.ValidateDomain(c.Site.Domain); err != nil {
			return fmt.Errorf("site.domain: %w", err)
		}
	}
	if c.Site.TTL == 0 {
		return fmt.Errorf("site.ttl must be positive")
	}
	if c.Site.BaseURL != "" &&
		!strings.HasPrefix(c.Site.BaseURL, "http://") &&
		!strings.HasPrefix(c.Site.BaseURL, "https://") {
		return fmt.Errorf("site.base-url must start with http:// or https://")
	}
	if c.Content.Dir == "" {
		return fmt.Errorf("content.dir must not be empty")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	return nil
}

// BindEnv wires environment variable overrides onto v. Keys are bound
// explicitly because AutomaticEnv alone does not surface env-only keys
// through Unmarshal.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"site.domain", "site.ttl", "site.base-url",
		"content.dir", "output.dir",
	} {
		// BindEnv only fails on zero arguments
		_ = v.BindEnv(key)
	}
}
