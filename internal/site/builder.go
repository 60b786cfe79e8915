// Package site orchestrates artifact generation: it reads the site
// configuration and content metadata, runs every generator and writes
// the results into the output tree.
package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sebastienrousseau/staticdatagen/internal/cname"
	"github.com/sebastienrousseau/staticdatagen/internal/config"
	"github.com/sebastienrousseau/staticdatagen/internal/generators"
	"github.com/sebastienrousseau/staticdatagen/internal/logging"
	"github.com/sebastienrousseau/staticdatagen/internal/metadata"
)

// Builder generates the full artifact set for one site.
type Builder struct {
	cfg    *config.Config
	logger logging.Logger
}

// BuildReport lists what a build produced and what failed.
type BuildReport struct {
	Written []string
	Errors  []*ArtifactError
}

// NewBuilder returns a Builder for cfg.
func NewBuilder(cfg *config.Config, logger logging.Logger) *Builder {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Builder{cfg: cfg, logger: logger.WithComponent("builder")}
}

// Build generates every artifact into the output directory. Individual
// artifact failures are collected and reported together; only setup
// failures abort the build.
func (b *Builder) Build(ctx context.Context) (*BuildReport, error) {
	if err := os.MkdirAll(b.cfg.Output.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	meta, err := b.collectMetadata()
	if err != nil {
		return nil, err
	}

	report := &BuildReport{}
	collector := NewErrorCollector()

	b.buildCNAME(ctx, meta, report, collector)
	b.buildHumans(ctx, meta, report, collector)
	b.buildManifest(ctx, meta, report, collector)
	b.buildRobots(ctx, report, collector)
	b.buildSecurity(ctx, meta, report, collector)
	b.buildSitemap(ctx, report, collector)
	b.buildNewsSitemap(ctx, meta, report, collector)
	b.buildTagIndex(ctx, report, collector)

	report.Errors = collector.Errors()
	b.logger.Info(ctx, "build finished",
		"written", len(report.Written),
		"failed", len(report.Errors),
	)
	return report, collector.Err()
}

// collectMetadata merges config metadata with the front matter of the
// content root's index.md. Front matter wins on key conflicts.
func (b *Builder) collectMetadata() (map[string]string, error) {
	meta := make(map[string]string, len(b.cfg.Metadata))
	for k, v := range b.cfg.Metadata {
		meta[k] = v
	}

	indexPath := filepath.Join(b.cfg.Content.Dir, "index.md")
	if _, err := os.Stat(indexPath); err == nil {
		fm, _, err := metadata.ExtractFile(indexPath)
		if err != nil {
			return nil, err
		}
		for k, v := range fm {
			meta[k] = v
		}
	}

	if _, ok := meta["cname"]; !ok && b.cfg.Site.Domain != "" {
		meta["cname"] = b.cfg.Site.Domain
	}
	return meta, nil
}

func (b *Builder) write(ctx context.Context, name, content string, report *BuildReport, collector *ErrorCollector) {
	path := filepath.Join(b.cfg.Output.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		collector.Add(name, err)
		return
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		collector.Add(name, err)
		return
	}
	report.Written = append(report.Written, name)
	b.logger.Debug(ctx, "artifact written", "artifact", name)
}

func (b *Builder) buildCNAME(ctx context.Context, meta map[string]string, report *BuildReport, collector *ErrorCollector) {
	if meta["cname"] == "" {
		b.logger.Debug(ctx, "no cname metadata, skipping CNAME")
		return
	}
	record, err := cname.FromMetadata(meta)
	if err != nil {
		collector.Add("CNAME", err)
		return
	}
	b.write(ctx, "CNAME", record, report, collector)
}

func (b *Builder) buildHumans(ctx context.Context, meta map[string]string, report *BuildReport, collector *ErrorCollector) {
	cfg, err := generators.HumansFromMetadata(meta)
	if err != nil {
		collector.Add("humans.txt", err)
		return
	}
	b.write(ctx, "humans.txt", cfg.Generate(), report, collector)
}

func (b *Builder) buildManifest(ctx context.Context, meta map[string]string, report *BuildReport, collector *ErrorCollector) {
	if meta["name"] == "" {
		b.logger.Debug(ctx, "no name metadata, skipping manifest")
		return
	}
	cfg, err := generators.ManifestFromMetadata(meta)
	if err != nil {
		collector.Add("manifest.json", err)
		return
	}
	content, err := cfg.Generate()
	if err != nil {
		collector.Add("manifest.json", err)
		return
	}
	b.write(ctx, "manifest.json", content, report, collector)
}

func (b *Builder) buildRobots(ctx context.Context, report *BuildReport, collector *ErrorCollector) {
	if b.cfg.Site.BaseURL == "" {
		b.logger.Debug(ctx, "no base url, skipping robots.txt")
		return
	}
	b.write(ctx, "robots.txt", generators.Robots(b.cfg.Site.BaseURL), report, collector)
}

func (b *Builder) buildSecurity(ctx context.Context, meta map[string]string, report *BuildReport, collector *ErrorCollector) {
	content := generators.SecurityFromMetadata(meta).Generate()
	if content == "" {
		b.logger.Debug(ctx, "security metadata incomplete, skipping security.txt")
		return
	}
	b.write(ctx, filepath.Join(".well-known", "security.txt"), content, report, collector)
}

func (b *Builder) buildSitemap(ctx context.Context, report *BuildReport, collector *ErrorCollector) {
	if b.cfg.Site.BaseURL == "" {
		return
	}
	cfg := generators.SitemapConfig{BaseURL: b.cfg.Site.BaseURL, ChangeFreq: "weekly"}
	content, err := cfg.Sitemap(b.cfg.Output.Dir)
	if err != nil {
		collector.Add("sitemap.xml", err)
		return
	}
	b.write(ctx, "sitemap.xml", content, report, collector)
}

func (b *Builder) buildNewsSitemap(ctx context.Context, meta map[string]string, report *BuildReport, collector *ErrorCollector) {
	if meta["news_loc"] == "" {
		return
	}
	content, err := generators.NewsSitemap([]generators.NewsEntry{
		generators.NewsEntryFromMetadata(meta),
	})
	if err != nil {
		collector.Add("news-sitemap.xml", err)
		return
	}
	b.write(ctx, "news-sitemap.xml", content, report, collector)
}

func (b *Builder) buildTagIndex(ctx context.Context, report *BuildReport, collector *ErrorCollector) {
	idx := generators.NewTagIndex()

	err := filepath.WalkDir(b.cfg.Content.Dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".md" {
			return err
		}
		fm, _, err := metadata.ExtractFile(path)
		if err != nil {
			return err
		}
		if fm["tags"] == "" {
			return nil
		}
		rel, err := filepath.Rel(b.cfg.Content.Dir, path)
		if err != nil {
			return err
		}
		permalink := "/" + filepath.ToSlash(rel)
		idx.AddPage(fm, generators.TagPage{
			Title:       fm["title"],
			Permalink:   permalink,
			Description: fm["description"],
		})
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			b.logger.Debug(ctx, "content dir missing, skipping tag index")
			return
		}
		collector.Add("tags/index.html", err)
		return
	}
	if len(idx) == 0 {
		return
	}
	b.write(ctx, filepath.Join("tags", "index.html"), idx.GenerateHTML(), report, collector)
}
