// Package config loads settings for running an application from a
// wlui.toml file and the environment.
//
// Every setting can be overridden by an environment variable named
// after its key with a WLUI_ prefix, such as WLUI_CURSOR_SIZE for
// cursor.size.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"deedles.dev/wlui/app"
	"deedles.dev/wlui/eventloop"
	"deedles.dev/wlui/layer"
	"deedles.dev/wlui/surface"
	"github.com/spf13/viper"
)

type Config struct {
	AppID              string `mapstructure:"app_id"`
	ExitOnCloseRequest bool   `mapstructure:"exit_on_close_request"`

	// Workers limits the number of background tasks that run at once.
	// Zero means one per CPU.
	Workers int `mapstructure:"workers"`

	Cursor  CursorConfig  `mapstructure:"cursor"`
	Logging LoggingConfig `mapstructure:"logging"`
	Window  WindowConfig  `mapstructure:"window"`
	Layer   LayerConfig   `mapstructure:"layer"`
}

type CursorConfig struct {
	Theme string `mapstructure:"theme"`
	Size  int    `mapstructure:"size"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// WindowConfig describes a window to open on startup.
type WindowConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Title   string `mapstructure:"title"`
	Width   uint32 `mapstructure:"width"`
	Height  uint32 `mapstructure:"height"`
}

// LayerConfig describes a layer surface to open on startup.
type LayerConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`

	// Layer is one of background, bottom, top, or overlay.
	Layer string `mapstructure:"layer"`

	// Anchor lists the edges to attach to: top, bottom, left, right.
	Anchor []string `mapstructure:"anchor"`

	Width         uint32 `mapstructure:"width"`
	Height        uint32 `mapstructure:"height"`
	ExclusiveZone int32  `mapstructure:"exclusive_zone"`

	// Margin is top, right, bottom, left.
	Margin []int32 `mapstructure:"margin"`

	// Keyboard is one of none, exclusive, or on_demand.
	Keyboard string `mapstructure:"keyboard"`
}

var Default = Config{
	Workers: 0,
	Cursor: CursorConfig{
		Size: 24,
	},
	Logging: LoggingConfig{
		Level: "info",
	},
	Window: WindowConfig{
		Enabled: true,
		Width:   800,
		Height:  600,
	},
	Layer: LayerConfig{
		Layer:    "top",
		Keyboard: "none",
	},
}

// Load reads the configuration. If path is empty, wlui.toml is looked
// for in $XDG_CONFIG_HOME/wlui and then in the current directory, and
// it is not an error if there isn't one.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("wlui")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "wlui"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("WLUI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	err = v.Unmarshal(&c)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &c, nil
}

// setDefaults registers every key so that AutomaticEnv can find it
// during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app_id", Default.AppID)
	v.SetDefault("exit_on_close_request", Default.ExitOnCloseRequest)
	v.SetDefault("workers", Default.Workers)

	v.SetDefault("cursor.theme", Default.Cursor.Theme)
	v.SetDefault("cursor.size", Default.Cursor.Size)

	v.SetDefault("logging.level", Default.Logging.Level)

	v.SetDefault("window.enabled", Default.Window.Enabled)
	v.SetDefault("window.title", Default.Window.Title)
	v.SetDefault("window.width", Default.Window.Width)
	v.SetDefault("window.height", Default.Window.Height)

	v.SetDefault("layer.enabled", Default.Layer.Enabled)
	v.SetDefault("layer.namespace", Default.Layer.Namespace)
	v.SetDefault("layer.layer", Default.Layer.Layer)
	v.SetDefault("layer.anchor", Default.Layer.Anchor)
	v.SetDefault("layer.width", Default.Layer.Width)
	v.SetDefault("layer.height", Default.Layer.Height)
	v.SetDefault("layer.exclusive_zone", Default.Layer.ExclusiveZone)
	v.SetDefault("layer.margin", Default.Layer.Margin)
	v.SetDefault("layer.keyboard", Default.Layer.Keyboard)
}

// Settings converts the configuration into settings for app.Run.
func (c *Config) Settings() (app.Settings, error) {
	s := app.Settings{
		ExitOnCloseRequest: c.ExitOnCloseRequest,
		Workers:            c.Workers,
		Loop: eventloop.Options{
			CursorTheme: c.Cursor.Theme,
			CursorSize:  c.Cursor.Size,
		},
	}

	if c.Window.Enabled {
		s.Window = &surface.Params{
			Title: c.Window.Title,
			AppID: c.AppID,
			Size:  surface.Size{W: c.Window.Width, H: c.Window.Height},
		}
	}

	if c.Layer.Enabled {
		params, err := c.Layer.params()
		if err != nil {
			return s, err
		}
		s.Layer = params
	}

	return s, nil
}

func (c *LayerConfig) params() (*surface.Params, error) {
	l, err := parseLayer(c.Layer)
	if err != nil {
		return nil, err
	}
	anchor, err := parseAnchor(c.Anchor)
	if err != nil {
		return nil, err
	}
	ki, err := parseKeyboard(c.Keyboard)
	if err != nil {
		return nil, err
	}

	var margin layer.Margin
	switch len(c.Margin) {
	case 0:
	case 4:
		margin = layer.Margin{Top: c.Margin[0], Right: c.Margin[1], Bottom: c.Margin[2], Left: c.Margin[3]}
	default:
		return nil, fmt.Errorf("layer margin needs 4 values, not %v", len(c.Margin))
	}

	return &surface.Params{
		Size: surface.Size{W: c.Width, H: c.Height},
		Layer: surface.LayerParams{
			Layer:                 l,
			Anchor:                anchor,
			Margin:                margin,
			ExclusiveZone:         c.ExclusiveZone,
			KeyboardInteractivity: ki,
			Namespace:             c.Namespace,
		},
	}, nil
}

func parseLayer(name string) (layer.Layer, error) {
	for _, l := range []layer.Layer{layer.Background, layer.Bottom, layer.Top, layer.Overlay} {
		if strings.EqualFold(name, l.String()) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown layer %q", name)
}

func parseAnchor(edges []string) (layer.Anchor, error) {
	var anchor layer.Anchor
	for _, edge := range edges {
		switch strings.ToLower(edge) {
		case "top":
			anchor |= layer.AnchorTop
		case "bottom":
			anchor |= layer.AnchorBottom
		case "left":
			anchor |= layer.AnchorLeft
		case "right":
			anchor |= layer.AnchorRight
		default:
			return 0, fmt.Errorf("unknown anchor edge %q", edge)
		}
	}
	return anchor, nil
}

func parseKeyboard(name string) (layer.KeyboardInteractivity, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return layer.KeyboardInteractivityNone, nil
	case "exclusive":
		return layer.KeyboardInteractivityExclusive, nil
	case "on_demand":
		return layer.KeyboardInteractivityOnDemand, nil
	}
	return 0, fmt.Errorf("unknown keyboard interactivity %q", name)
}
