package config

import (
	"os"
	"path/filepath"
	"testing"

	"deedles.dev/wlui/layer"
	"deedles.dev/wlui/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wlui.toml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 24, c.Cursor.Size)
	assert.Equal(t, "info", c.Logging.Level)
	assert.True(t, c.Window.Enabled)
	assert.False(t, c.Layer.Enabled)

	s, err := c.Settings()
	require.NoError(t, err)
	require.NotNil(t, s.Window)
	assert.Equal(t, surface.Size{W: 800, H: 600}, s.Window.Size)
	assert.Nil(t, s.Layer)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
app_id = "dev.example.panel"
exit_on_close_request = true

[window]
enabled = false

[layer]
enabled = true
namespace = "panel"
layer = "overlay"
anchor = ["bottom", "left", "right"]
height = 40
exclusive_zone = 40
margin = [0, 0, 8, 0]
keyboard = "on_demand"
`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dev.example.panel", c.AppID)

	s, err := c.Settings()
	require.NoError(t, err)
	assert.True(t, s.ExitOnCloseRequest)
	assert.Nil(t, s.Window)
	require.NotNil(t, s.Layer)
	assert.Equal(t, surface.Size{H: 40}, s.Layer.Size)
	assert.Equal(t, surface.LayerParams{
		Layer:                 layer.Overlay,
		Anchor:                layer.AnchorBottom | layer.AnchorLeft | layer.AnchorRight,
		Margin:                layer.Margin{Bottom: 8},
		ExclusiveZone:         40,
		KeyboardInteractivity: layer.KeyboardInteractivityOnDemand,
		Namespace:             "panel",
	}, s.Layer.Layer)
}

func TestEnvOverride(t *testing.T) {
	path := writeConfig(t, "[cursor]\nsize = 32\n")
	t.Setenv("WLUI_CURSOR_SIZE", "48")
	t.Setenv("WLUI_CURSOR_THEME", "Adwaita")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 48, c.Cursor.Size)

	s, err := c.Settings()
	require.NoError(t, err)
	assert.Equal(t, "Adwaita", s.Loop.CursorTheme)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[window\nenabled = true"))
	assert.Error(t, err)
}

func TestBadLayerSettings(t *testing.T) {
	tests := []struct {
		name  string
		layer LayerConfig
	}{
		{"layer", LayerConfig{Enabled: true, Layer: "middle"}},
		{"anchor", LayerConfig{Enabled: true, Layer: "top", Anchor: []string{"center"}}},
		{"keyboard", LayerConfig{Enabled: true, Layer: "top", Keyboard: "always"}},
		{"margin", LayerConfig{Enabled: true, Layer: "top", Margin: []int32{1, 2}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := Default
			c.Layer = test.layer
			_, err := c.Settings()
			assert.Error(t, err)
		})
	}
}
