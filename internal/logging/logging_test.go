package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Cleanup(func() { Init(LevelInfo, FormatText, os.Stderr) })
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug": LevelDebug,
		"INFO":  LevelInfo,
		"":      LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestInitJSON(t *testing.T) {
	restore(t)
	var buf bytes.Buffer
	log := Init(LevelInfo, FormatJSON, &buf)

	log.Debug("hidden")
	log.Info("solved", "elapsed", 1500*time.Millisecond, "words", 4)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "solved", rec["msg"])
	assert.Equal(t, 1.5, rec["elapsed"])
	assert.Equal(t, 4.0, rec["words"])

	_, err := time.Parse(time.RFC3339, rec["time"].(string))
	assert.NoError(t, err)
}

func TestInitTextDebug(t *testing.T) {
	restore(t)
	var buf bytes.Buffer
	Init(LevelDebug, FormatText, &buf)

	Logger().Debug("do-over", "words", 0)
	assert.Contains(t, buf.String(), "msg=do-over")
	assert.Contains(t, buf.String(), "words=0")
}

func TestInitLevelFilters(t *testing.T) {
	restore(t)
	var buf bytes.Buffer
	Init(LevelError, FormatText, &buf)

	Logger().Warn("ignored")
	assert.Empty(t, buf.String())
	Logger().Error("kept")
	assert.Contains(t, buf.String(), "kept")
}
