package cname

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustConfig(t *testing.T, domain string, ttl uint32) RecordConfig {
	t.Helper()
	cfg, err := NewRecordConfig(domain, &ttl, nil)
	require.NoError(t, err)
	return cfg
}

func TestBatchGeneratePreservesOrder(t *testing.T) {
	configs := []RecordConfig{
		mustConfig(t, "b.example.com", 3600),
		mustConfig(t, "a.example.com", 3600),
	}

	results := BatchGenerate(configs)
	require.Len(t, results, 2)
	assert.Equal(t, "b.example.com 3600 IN CNAME www.b.example.com", results[0].Record)
	assert.Equal(t, "a.example.com 3600 IN CNAME www.a.example.com", results[1].Record)
	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[1].Err)
}

func TestBatchGenerateEmptyInput(t *testing.T) {
	assert.Empty(t, BatchGenerate(nil))
	assert.Empty(t, BatchGenerate([]RecordConfig{}))
}

func TestBatchGenerateLargeInputOrder(t *testing.T) {
	const n = 10_000
	configs := make([]RecordConfig, 0, n)
	for i := 0; i < n; i++ {
		configs = append(configs, mustConfig(t, fmt.Sprintf("host%d.example.com", i), 3600))
	}

	results := BatchGenerate(configs)
	require.Len(t, results, n)
	for i, res := range results {
		require.NoError(t, res.Err)
		want := fmt.Sprintf("host%d.example.com 3600 IN CNAME www.host%d.example.com", i, i)
		require.Equal(t, want, res.Record, "result %d out of order", i)
	}
}

func TestBatchGenerateSingleConfig(t *testing.T) {
	results := BatchGenerate([]RecordConfig{mustConfig(t, "example.com", 60)})
	require.Len(t, results, 1)
	assert.Equal(t, "example.com 60 IN CNAME www.example.com", results[0].Record)
}

func TestExportBatchToFile(t *testing.T) {
	configs := []RecordConfig{
		mustConfig(t, "example.com", 3600),
		mustConfig(t, "sub.example.com", 3600),
	}

	path := filepath.Join(t.TempDir(), "CNAME")
	require.NoError(t, ExportBatchToFile(configs, path, "\n"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"example.com 3600 IN CNAME www.example.com\nsub.example.com 3600 IN CNAME www.sub.example.com",
		string(content))
}

func TestExportBatchToFileCustomDelimiter(t *testing.T) {
	configs := []RecordConfig{
		mustConfig(t, "example.com", 3600),
		mustConfig(t, "sub.example.com", 3600),
	}

	path := filepath.Join(t.TempDir(), "records.txt")
	require.NoError(t, ExportBatchToFile(configs, path, "---\n"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "---\n")
}

func TestExportBatchToFileEmptyBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, ExportBatchToFile(nil, path, "\n"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, string(content), "empty batch must overwrite with an empty file")
}

func TestExportBatchToFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CNAME")
	require.NoError(t, os.WriteFile(path, []byte("old content"), 0o644))

	require.NoError(t, ExportBatchToFile([]RecordConfig{mustConfig(t, "example.com", 3600)}, path, "\n"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "example.com 3600 IN CNAME www.example.com", string(content))
}

func TestExportBatchToFileIOError(t *testing.T) {
	configs := []RecordConfig{mustConfig(t, "example.com", 3600)}
	err := ExportBatchToFile(configs, filepath.Join(t.TempDir(), "missing", "dir", "file.txt"), "\n")
	assert.Error(t, err)
}
