package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, DefaultTitle, c.Window.Title)
	assert.Equal(t, DefaultWidth, c.Window.Width)
	assert.Equal(t, DefaultHeight, c.Window.Height)
	assert.Equal(t, DefaultDataDir, c.Editor.DataDir)
	assert.Equal(t, DefaultFileID, c.Editor.FileID)
	assert.Empty(t, c.Editor.ModelPath)
	assert.Equal(t, 500*time.Millisecond, c.AnimationDuration())
	assert.Equal(t, time.Second, c.ProfilerInterval())
	assert.Equal(t, [3]float64{0.1, 0.1, 0.1}, c.Renderer.Background)
	assert.False(t, c.Profiler.Enabled)
	assert.NoError(t, c.Validate())
}

func TestParseOverridesDefaults(t *testing.T) {
	src := `
[window]
title = "Shirt"
width = 800

[editor]
file_id = "shirt-42"
animation_ms = 750
max_camera_distance = 2.5

[renderer]
uncapped = true
background = [0.2, 0.3, 0.4]

[profiler]
enabled = true
`
	c, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "Shirt", c.Window.Title)
	assert.Equal(t, 800, c.Window.Width)
	assert.Equal(t, DefaultHeight, c.Window.Height)
	assert.Equal(t, "shirt-42", c.Editor.FileID)
	assert.Equal(t, 750*time.Millisecond, c.AnimationDuration())
	assert.Equal(t, float32(2.5), c.Editor.MaxCameraDistance)
	assert.Equal(t, float32(DefaultMinCameraDistance), c.Editor.MinCameraDistance)
	assert.True(t, c.Renderer.Uncapped)
	assert.Equal(t, [3]float64{0.2, 0.3, 0.4}, c.Renderer.Background)
	assert.True(t, c.Profiler.Enabled)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("[window]\ncolour = \"red\"\n"))
	assert.Error(t, err)
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse(strings.NewReader("[window\n"))
	assert.Error(t, err)
}

func TestParseValidates(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"negative width", "[window]\nwidth = -1\n"},
		{"negative animation", "[editor]\nanimation_ms = -5\n"},
		{"negative workers", "[editor]\nsave_workers = -1\n"},
		{"inverted distances", "[editor]\nmin_camera_distance = 2.0\nmax_camera_distance = 1.0\n"},
		{"negative interval", "[profiler]\ninterval_ms = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customizer.toml")
	require.NoError(t, os.WriteFile(path, []byte("[editor]\ndata_dir = \"/tmp/saves\"\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/saves", c.Editor.DataDir)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "config: read")
}
