package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/tilequest/internal/animation"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tilequest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, appstate.Level01, cfg.Level())
	assert.Equal(t, 200*time.Millisecond, cfg.MoveDuration())
	assert.Equal(t, animation.CircularInOut, cfg.Ease())
	assert.Equal(t, 2*time.Second, cfg.SplashDuration())
}

func TestCustomPathOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, "width: 640\nstart_level: level03\nmove_ease: SineInOut\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
	assert.Equal(t, appstate.Level03, cfg.Level())
	assert.Equal(t, animation.SineInOut, cfg.Ease())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "height: 480\n")
	t.Setenv("TILEQUEST_HEIGHT", "600")
	t.Setenv("TILEQUEST_MUTE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 600, cfg.Height)
	assert.True(t, cfg.Mute)
}

func TestMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestValidation(t *testing.T) {
	cases := map[string]string{
		"size":   "width: 0\n",
		"level":  "start_level: level99\n",
		"ease":   "move_ease: wobbly\n",
		"volume": "volume: 2\n",
		"log":    "log_level: loud\n",
		"camera": "camera_follow: 0\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
