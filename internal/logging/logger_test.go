package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetOutput(&buf)

	logger.Info("dataset loaded", Component("dataset"), Int("rows", 42))

	out := buf.String()
	assert.Contains(t, out, "[INFO] dataset loaded")
	assert.Contains(t, out, "component=dataset")
	assert.Contains(t, out, "rows=42")
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetOutput(&buf)
	logger.SetFormat("json")

	logger.Warn("single label class present", String("column", "loan_status_num"))

	var entry Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry.Level)
	assert.Equal(t, "single label class present", entry.Message)
	assert.Equal(t, "loan_status_num", entry.Fields["column"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetOutput(&buf)
	logger.SetLevel(WARN)

	logger.Debug("should not appear")
	logger.Info("should not appear either")
	logger.Warn("should appear")

	assert.NotContains(t, buf.String(), "should not appear")
	assert.Contains(t, buf.String(), "should appear")
}

func TestLogger_Fatal(t *testing.T) {
	var buf bytes.Buffer
	code := -1
	logger := New()
	logger.SetOutput(&buf)
	logger.exit = func(c int) { code = c }

	logger.Fatal("cannot continue", assert.AnError)

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "[FATAL] cannot continue")
	assert.Contains(t, buf.String(), "error=")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel("WARN"))
	assert.Equal(t, INFO, ParseLevel("unknown"))
}
