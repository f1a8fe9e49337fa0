package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithValidConfig(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "json stdout",
			config: Config{Level: "debug", Format: "json", Output: "stdout"},
		},
		{
			name:   "text stderr",
			config: Config{Level: "info", Format: "text", Output: "stderr"},
		},
		{
			name:   "rotating file in missing directory",
			config: Config{Level: "warn", Format: "json", Output: filepath.Join(dir, "log", "appLog.txt"), MaxSizeBytes: 1024, MaxBackups: 2},
		},
		{
			name:    "invalid level",
			config:  Config{Level: "invalid", Format: "json", Output: "stdout"},
			wantErr: true,
		},
		{
			name:    "invalid format",
			config:  Config{Level: "debug", Format: "xml", Output: "stdout"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, log)
			assert.NoError(t, log.Close())
		})
	}
}

func TestNew_FileOutputWritesLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appLog.txt")

	log, err := New(Config{Level: "info", Format: "text", Output: path, MaxSizeBytes: 10 << 20, MaxBackups: 10})
	require.NoError(t, err)

	log.Info("rotation finished", Field{Key: "stage", Value: "purge-temp-1"})
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rotation finished")
	assert.Contains(t, string(data), "stage=purge-temp-1")
}

func TestMegabytes(t *testing.T) {
	tests := []struct {
		limit int64
		want  int
	}{
		{0, math.MaxInt32},
		{-5, math.MaxInt32},
		{1, 1},
		{bytesPerMegabyte, 1},
		{bytesPerMegabyte + 1, 2},
		{10 << 20, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, megabytes(tt.limit), "limit %d", tt.limit)
	}
}

func TestLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := NewWithWriter(buf, "debug", "json")
	require.NoError(t, err)

	log.Debug("debug message", Field{Key: "k", Value: "v"})
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message", errors.New("disk full"), Field{Key: "folder", Value: "x"})
	log.InfoCtx(context.Background(), "info with context")
	log.ErrorCtx(context.Background(), "error with context", nil)

	output := buf.String()
	for _, msg := range []string{"debug message", "info message", "warn message", "error message", "disk full", "info with context", "error with context"} {
		assert.Contains(t, output, msg)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level string
		want  []bool // debug, info, warn, error
	}{
		{"debug", []bool{true, true, true, true}},
		{"info", []bool{false, true, true, true}},
		{"warn", []bool{false, false, true, true}},
		{"error", []bool{false, false, false, true}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			log, err := NewWithWriter(buf, tt.level, "json")
			require.NoError(t, err)

			log.Debug("debug message")
			log.Info("info message")
			log.Warn("warn message")
			log.Error("error message", nil)

			output := buf.String()
			assert.Equal(t, tt.want[0], strings.Contains(output, "debug message"))
			assert.Equal(t, tt.want[1], strings.Contains(output, "info message"))
			assert.Equal(t, tt.want[2], strings.Contains(output, "warn message"))
			assert.Equal(t, tt.want[3], strings.Contains(output, "error message"))
		})
	}
}

func TestLogger_WithAndJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := NewWithWriter(buf, "info", "json")
	require.NoError(t, err)

	log.With(Field{Key: "run_id", Value: "abc"}).Info("purge started", Field{Key: "root", Value: "/tmp/x"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "purge started", entry["msg"])
	assert.Equal(t, "abc", entry["run_id"])
	assert.Equal(t, "/tmp/x", entry["root"])
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Error("ignored", errors.New("x"))
	assert.NoError(t, log.Close())
}
