package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

type Settings struct {
	Scene     string            `yaml:"scene"`
	Window    WindowSettings    `yaml:"window"`
	Assets    AssetSettings     `yaml:"assets"`
	Animation AnimationSettings `yaml:"animation"`
	Control   ControlSettings   `yaml:"control"`
	Metrics   MetricsSettings   `yaml:"metrics"`
	Log       LogSettings       `yaml:"log"`
}

type WindowSettings struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

type AssetSettings struct {
	Dir string `yaml:"dir"`
}

type AnimationSettings struct {
	Paused bool `yaml:"paused"`
}

// ControlSettings configure the websocket selection host. An empty Addr
// disables it.
//
// RatePerSecond bounds commands per connection, zero means unlimited.
type ControlSettings struct {
	Addr          string  `yaml:"addr"`
	RatePerSecond float64 `yaml:"ratePerSecond"`
	Burst         int     `yaml:"burst"`
}

// MetricsSettings configure the /metrics listener. An empty Addr disables it.
type MetricsSettings struct {
	Addr string `yaml:"addr"`
}

type LogSettings struct {
	Level string `yaml:"level"`
}

// Scenes that can be shown
const (
	SceneSystem  = "system"
	SceneMoon    = "moon"
	SceneNeptune = "neptune"
)

func Default() Settings {
	return Settings{
		Scene: SceneSystem,
		Window: WindowSettings{
			Width:  1280,
			Height: 720,
			Title:  "Orrery",
			VSync:  true,
		},
		Assets: AssetSettings{
			Dir: "assets/textures",
		},
		Control: ControlSettings{
			Addr:          "localhost:8080",
			RatePerSecond: 20,
			Burst:         10,
		},
		Metrics: MetricsSettings{
			Addr: "localhost:9100",
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// Load reads settings from path on top of the defaults. A missing file is
// not an error.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Default(), fmt.Errorf("error parsing %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid %s: %w", path, err)
	}
	return s, nil
}

func (s Settings) Validate() error {
	switch s.Scene {
	case SceneSystem, SceneMoon, SceneNeptune:
	default:
		return fmt.Errorf("unknown scene %q", s.Scene)
	}
	if s.Window.Width < 1 || s.Window.Height < 1 {
		return fmt.Errorf("window size %dx%d", s.Window.Width, s.Window.Height)
	}
	if s.Control.RatePerSecond < 0 || s.Control.Burst < 0 {
		return errors.New("control rate and burst must not be negative")
	}
	if s.Control.RatePerSecond > 0 && s.Control.Burst < 1 {
		return errors.New("control burst must be at least 1 when a rate is set")
	}
	if _, err := s.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Log.Level (debug, info, warn, error)
func (s Settings) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}

// RestartRequired lists the settings that changed between old and updated
// but only take effect on the next start
func RestartRequired(old, updated Settings) []string {
	var fields []string
	if old.Scene != updated.Scene {
		fields = append(fields, "scene")
	}
	if old.Window != updated.Window {
		fields = append(fields, "window")
	}
	if old.Assets != updated.Assets {
		fields = append(fields, "assets")
	}
	if old.Control != updated.Control {
		fields = append(fields, "control")
	}
	if old.Metrics != updated.Metrics {
		fields = append(fields, "metrics")
	}
	if old.Log != updated.Log {
		fields = append(fields, "log")
	}
	return fields
}

// Watch reloads path whenever it changes and hands the new settings to
// onChange. It watches the directory so editors that replace the file are
// picked up too. A file that fails to parse is logged and skipped. Watch
// blocks until ctx is done.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func(Settings)) error {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			s, err := Load(abs)
			if err != nil {
				logger.Warn("settings reload failed", "path", path, "err", err)
				continue
			}
			onChange(s)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("settings watcher error", "err", err)
		}
	}
}

// String renders the settings as YAML
func (s Settings) String() string {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err.Error()
	}
	enc.Close()
	return b.String()
}
