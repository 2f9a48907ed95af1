package logging

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFunctions_NoopBeforeSetup(t *testing.T) {
	assert.False(t, IsEnabled())
	LogInfo("nothing %d", 1)
	DebugLog("nothing")
	LogWarning("nothing")
	LogError("nothing")
}

func TestSetupLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "psnreval.log")
	require.NoError(t, SetupLogger(path))
	t.Cleanup(CloseLogger)

	assert.True(t, IsEnabled())
	LogInfo("collected %d files", 3)
	LogWarning("skipped %s", "dup.png")
	LogPairProcessed("a.png", "scored", math.Inf(1))
	LogImageLoaded("/ref/a.png", false, "decode failed")
	CloseLogger()
	assert.False(t, IsEnabled())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(b)
	assert.Contains(t, content, "collected 3 files")
	assert.Contains(t, content, "skipped dup.png")
	assert.Contains(t, content, "key=a.png")
	assert.Contains(t, content, "decode failed")
	assert.Contains(t, content, "debug log closed")
}

func TestSetupLogger_BadPath(t *testing.T) {
	err := SetupLogger(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	assert.Error(t, err)
	assert.False(t, IsEnabled())
}
