package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestZerologErrorCarriesComponentAndMessage(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.DebugLevel)

	log.Error("FrameProcessor", errors.New("bad dims"), map[string]interface{}{"width": 3})

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "error", entries[0]["level"])
	assert.Equal(t, "FrameProcessor", entries[0]["component"])
	assert.Equal(t, "bad dims", entries[0]["error"])
	assert.EqualValues(t, 3, entries[0]["width"])
}

func TestZerologLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.WarnLevel)

	log.Debug("c", "hidden", nil)
	log.Info("c", "hidden", nil)
	log.Warning("c", "shown", nil)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["message"])
}

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "console", zerolog.InfoLevel)

	log.Info("EdgeFrame", "wrote output", map[string]interface{}{"path": "edge.png"})

	out := buf.String()
	assert.Contains(t, out, "wrote output")
	assert.Contains(t, out, "EdgeFrame")
	assert.False(t, strings.HasPrefix(strings.TrimSpace(out), "{"))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"WARNING", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("chatty")
	assert.Error(t, err)
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	log.Error("c", errors.New("x"), nil)
	log.Info("c", "m", nil)
}
