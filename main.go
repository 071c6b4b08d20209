package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/time/rate"

	"orrery/config"
	"orrery/control"
	"orrery/core"
	"orrery/metrics"
	"orrery/rendering/opengl"
	"orrery/rendering/textures"
	"orrery/scene"
)

func init() {
	// GL and glfw calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", "settings.yaml", "Settings file, watched for changes")
		sceneName  = flag.String("scene", "", "Scene to show (system, moon, neptune), overrides settings")
		assetsDir  = flag.String("assets", "", "Texture directory, overrides settings")
		width      = flag.Int("width", 0, "Window width, overrides settings")
		height     = flag.Int("height", 0, "Window height, overrides settings")
	)
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *sceneName != "" {
		settings.Scene = *sceneName
	}
	if *assetsDir != "" {
		settings.Assets.Dir = *assetsDir
	}
	if *width > 0 {
		settings.Window.Width = *width
	}
	if *height > 0 {
		settings.Window.Height = *height
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, _ := settings.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(settings, *configPath, logger); err != nil {
		logger.Error("orrery stopped", "err", err)
		os.Exit(1)
	}
}

func run(settings config.Settings, configPath string, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "scene", settings.Scene,
		"window", fmt.Sprintf("%dx%d", settings.Window.Width, settings.Window.Height),
		"assets", settings.Assets.Dir)

	collector := metrics.NewCollector()
	if settings.Metrics.Addr != "" {
		go func() {
			logger.Info("metrics listening", "addr", settings.Metrics.Addr)
			if err := collector.Serve(ctx, settings.Metrics.Addr); err != nil {
				logger.Error("metrics server failed", "err", err)
			}
		}()
	}

	src := textures.NewDirSource(settings.Assets.Dir)
	keys := make(map[glfw.Key]func())

	host, err := opengl.NewHost(opengl.HostOptions{
		Width:  settings.Window.Width,
		Height: settings.Window.Height,
		Title:  settings.Window.Title,
		VSync:  settings.Window.VSync,
		Logger: logger,
		Keys:   keys,
	})
	if err != nil {
		return err
	}
	defer host.Terminate()

	var surface opengl.Surface
	switch settings.Scene {
	case config.SceneMoon:
		surface = opengl.NewMoonRenderer(src, logger, collector)
	case config.SceneNeptune:
		surface = opengl.NewNeptuneRenderer(src, logger, collector)
	default:
		solar, err := scene.NewSolarSystem(core.DefaultSystem())
		if err != nil {
			return err
		}
		solar.SetPaused(settings.Animation.Paused)
		wireSystem(ctx, solar, settings, configPath, host, keys, logger, collector)
		surface = opengl.NewSystemRenderer(solar, src, logger, collector)
	}

	logger.Info("controls: left/right or click select, space pauses, esc quits")
	err = host.Run(ctx, surface)
	logger.Info("shutting down")
	return err
}

// selectionTitle is the window title while body is selected
func selectionTitle(base, body string) string {
	if body == "" {
		return base
	}
	return base + " - " + body
}

// wireSystem connects the selection to the keyboard, mouse, window title
// and the websocket control server, and the pause flag to the settings
// watcher
func wireSystem(ctx context.Context, solar *scene.SolarSystem, settings config.Settings, configPath string,
	host *opengl.Host, keys map[glfw.Key]func(), logger *slog.Logger, collector *metrics.Collector) {

	var ctl *control.Server
	if settings.Control.Addr != "" {
		limit := rate.Inf
		if settings.Control.RatePerSecond > 0 {
			limit = rate.Limit(settings.Control.RatePerSecond)
		}
		ctl = control.NewServer(solar.System, solar.Selection, control.Options{
			Rate:    limit,
			Burst:   settings.Control.Burst,
			Logger:  logger,
			Metrics: collector,
		})
		go func() {
			if err := ctl.ListenAndServe(ctx, settings.Control.Addr); err != nil {
				logger.Error("control server failed", "err", err)
			}
		}()
	}

	showTitle := func(idx int) {
		if b, err := solar.System.Selectable(idx); err == nil {
			host.SetTitle(selectionTitle(settings.Window.Title, b.Name))
		}
	}
	showTitle(solar.Selection.Current())

	selected := func(idx int, direction, source string) {
		collector.RecordSelection(direction, source)
		if b, err := solar.System.Selectable(idx); err == nil {
			logger.Info("selected", "index", idx, "body", b.Name)
		}
		showTitle(idx)
		if ctl != nil {
			ctl.Broadcast()
		}
	}
	move := func(direction string, step func() int) func() {
		return func() {
			selected(step(), direction, "keyboard")
		}
	}
	keys[glfw.KeyRight] = move(control.ActionNext, solar.Selection.SelectNext)
	keys[glfw.KeyLeft] = move(control.ActionPrevious, solar.Selection.SelectPrevious)
	keys[glfw.KeySpace] = func() {
		solar.SetPaused(!solar.Paused())
		logger.Info("animation", "paused", solar.Paused())
	}

	go func() {
		err := config.Watch(ctx, configPath, logger, func(updated config.Settings) {
			solar.SetPaused(updated.Animation.Paused)
			logger.Info("settings reloaded", "paused", updated.Animation.Paused)
			if fields := config.RestartRequired(settings, updated); len(fields) > 0 {
				logger.Warn("changed settings need a restart", "fields", fields)
			}
		})
		if err != nil {
			logger.Warn("settings hot reload disabled", "err", err)
		}
	}()

	host.SetClickHandler(func(x, y float64) {
		idx, ok := solar.Pick(x, y)
		if !ok || idx == solar.Selection.Current() {
			return
		}
		if _, err := solar.Selection.Set(idx); err != nil {
			logger.Warn("click selection failed", "index", idx, "err", err)
			return
		}
		selected(idx, control.ActionSet, "mouse")
	})
}
