package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, TRACE, ParseLevel("trace"))
	assert.Equal(t, WARN, ParseLevel(" warning "))
	assert.Equal(t, ERROR, ParseLevel("ERROR"))
	assert.Equal(t, INFO, ParseLevel("nonsense"), "неизвестный уровень даёт INFO")
	assert.Equal(t, "DEBUG", DEBUG.String())
}

func TestNewLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	Configure(dir, ERROR, DEBUG)
	defer Configure("", INFO, DEBUG)

	l, err := NewLogger("player")
	require.NoError(t, err)

	l.Trace("не должно попасть в файл")
	l.Debug("block placed at %d", 42)
	require.NoError(t, l.Close())

	files, err := filepath.Glob(filepath.Join(dir, "player_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.Contains(content, "[DEBUG] [player] block placed at 42"))
	assert.False(t, strings.Contains(content, "не должно"))
}

func TestConsoleOnlyLoggerByDefault(t *testing.T) {
	l, err := NewLogger("console")
	require.NoError(t, err)
	assert.Nil(t, l.file, "без каталога логов файл не создаётся")
	assert.NoError(t, l.Close())
}
