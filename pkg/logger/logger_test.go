package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		entries = append(entries, entry)
	}
	return entries
}

func TestNew_JSONOutputWithFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "info", Format: "json", Output: &buf})
	require.NoError(t, err)

	log.With("component", "engine").Info("sorted", "games", 3)
	log.Debug("hidden")
	require.NoError(t, log.Sync())

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1, "debug entries are below the info level")
	assert.Equal(t, "sorted", entries[0]["msg"])
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "engine", entries[0]["component"])
	assert.EqualValues(t, 3, entries[0]["games"])
	assert.Contains(t, entries[0], "timestamp")
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
	assert.Panics(t, func() { MustNew(Config{Level: "loud"}) })
}

func TestWith_DoesNotLeakBetweenSiblings(t *testing.T) {
	var buf bytes.Buffer
	base := MustNew(Config{Level: "debug", Output: &buf})
	parent := base.With("a", 1)
	first := parent.With("b", 2)
	second := parent.With("c", 3)

	first.Info("first")
	second.Info("second")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.NotContains(t, entries[1], "b")
	assert.EqualValues(t, 3, entries[1]["c"])
	assert.EqualValues(t, 1, entries[1]["a"])
}

func TestNamed(t *testing.T) {
	var buf bytes.Buffer
	log := MustNew(Config{Output: &buf}).Named("api")
	log.Warn("careful")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "api", entries[0]["logger"])
	assert.Equal(t, "warn", entries[0]["level"])
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Info("nothing")
	assert.NotNil(t, log.ZapLogger())
}

func TestFromZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core)).With("component", "test")
	log.Debug("observed", "n", 2)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "observed", entries[0].Message)
	assert.Equal(t, "test", entries[0].ContextMap()["component"])
	assert.EqualValues(t, 2, entries[0].ContextMap()["n"])
}
