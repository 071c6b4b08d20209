package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
	assert.NoError(t, s.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scene: neptune
window:
  width: 800
animation:
  paused: true
log:
  level: debug
`), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, SceneNeptune, s.Scene)
	assert.Equal(t, 800, s.Window.Width)
	assert.Equal(t, 720, s.Window.Height, "unset fields keep defaults")
	assert.True(t, s.Animation.Paused)

	lvl, err := s.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "window: [1, 2"},
		{"unknown field", "windw:\n  width: 3\n"},
		{"unknown scene", "scene: pluto\n"},
		{"zero height", "window:\n  height: 0\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"negative burst", "control:\n  burst: -1\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestRestartRequired(t *testing.T) {
	a := Default()
	b := a
	b.Animation.Paused = true
	assert.Empty(t, RestartRequired(a, b))

	b.Window.Width = 10
	b.Metrics.Addr = ""
	assert.Equal(t, []string{"window", "metrics"}, RestartRequired(a, b))
}

func TestStringRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	want := Default()
	want.Scene = SceneMoon
	require.NoError(t, os.WriteFile(path, []byte(want.String()), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("animation:\n  paused: false\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan Settings, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, nil, func(s Settings) { changes <- s })
	}()

	// give the watcher time to register before writing
	require.Eventually(t, func() bool {
		if err := os.WriteFile(path, []byte("animation:\n  paused: true\n"), 0o644); err != nil {
			return false
		}
		select {
		case s := <-changes:
			return s.Animation.Paused
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1"), 0o644))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}
