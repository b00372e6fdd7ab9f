package zerolog

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

type name string

func (n name) String() string {
	return "name:" + string(n)
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		m := make(map[string]any)
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}

	return out
}

func TestLogger_Fields(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLogger(zerolog.New(buf))

	l.Info("msg", []any{
		"err", errors.New("boom"),
		"who", name("x"),
		"count", 3,
		42, "skipped",
		"dangling",
	})

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, map[string]any{
		"level":   "info",
		"message": "msg",
		"err":     "boom",
		"who":     "name:x",
		"count":   float64(3),
	}, lines[0])
}

func TestLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLogger(zerolog.New(buf).Level(zerolog.TraceLevel))

	l.Trace("t", nil)
	l.Debug("d", nil)
	l.Info("i", nil)
	l.Warn("w", nil)
	l.Error("e", nil)

	levels := make([]any, 0, 5)
	for _, line := range decodeLines(t, buf) {
		levels = append(levels, line["level"])
	}
	assert.Equal(t, []any{"trace", "debug", "info", "warn", "error"}, levels)
}
