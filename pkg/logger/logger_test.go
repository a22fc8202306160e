package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, err := New(path, "info")
	require.NoError(t, err)

	log.Info("FindAvailability: store=%d", 1)
	log.Debug("hidden %s", "debug")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "FindAvailability: store=1")
	assert.False(t, strings.Contains(string(data), "hidden debug"))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.ErrorIs(t, err, ErrInvalidLevel)
}
