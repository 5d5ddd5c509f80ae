package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warn":    LevelWarning,
		"warning": LevelWarning,
		" error ": LevelError,
		"none":    LevelNone,
	}
	for s, expected := range cases {
		l, err := ParseLevel(s)
		require.NoError(t, err, s)
		assert.Equal(t, expected, l, s)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetLevel(LevelWarning)

	SetLevel(LevelInfo)
	Debug("hidden %d", 1)
	Info("shown %d", 2)
	Warning("shown %d", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, 2, strings.Count(out, "shown"))
	assert.Contains(t, out, "I ")
	assert.Contains(t, out, "W ")
	assert.Equal(t, LevelInfo, CurrentLevel())

	buf.Reset()
	SetLevel(LevelNone)
	Error("silent")
	assert.Empty(t, buf.String())
}
