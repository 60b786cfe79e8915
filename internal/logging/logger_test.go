package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"info", LevelInfo, false},
		{"", LevelInfo, false},
		{"WARN", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "debug", LevelDebug.String())
	assert.Equal(t, "error", LevelError.String())
}

func TestJSONLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: LevelInfo, Format: "json", Output: &buf})

	logger.Info(context.Background(), "record generated", "domain", "example.com")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "record generated", entry["msg"])
	assert.Equal(t, "example.com", entry["domain"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: LevelWarn, Format: "text", Output: &buf})

	logger.Debug(context.Background(), "dropped")
	logger.Info(context.Background(), "also dropped")
	assert.Empty(t, buf.String())

	logger.Warn(context.Background(), nil, "kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: LevelInfo, Format: "json", Output: &buf})

	logger.Error(context.Background(), errors.New("boom"), "generation failed", "domain", "example.com")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "example.com", entry["domain"])
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: LevelInfo, Format: "json", Output: &buf})

	logger.WithComponent("builder").Info(context.Background(), "started")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "builder", entry["component"])
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info(context.Background(), "ignored")
	logger.Error(context.Background(), errors.New("ignored"), "ignored")
}
