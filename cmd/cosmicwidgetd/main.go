// Package main is the entry point for cosmicwidgetd.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/freetype/truetype"

	"github.com/cosmicwidgetd/cosmicwidgetd/internal/config"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/font"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/glyphatlas"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/launch"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/loop"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/render"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/surface"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/watch"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/wlwire"
)

var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("cosmicwidgetd version", version)
		return
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("cosmicwidgetd exiting", "error", err)
		os.Exit(1)
	}
}

// loadedFontProvider adapts an already-loaded font to font.Provider, since
// SystemProvider.Load only needs to run once at startup.
type loadedFontProvider struct{ font *truetype.Font }

func (p loadedFontProvider) Load() (*truetype.Font, error) { return p.font, nil }

func run(logger *slog.Logger) error {
	logger.Info("starting cosmicwidgetd", "version", version)

	configPath, err := config.Path()
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		// A bad config falls back to defaults at startup rather than
		// refusing to run.
		logger.Warn("config invalid, falling back to defaults", "path", configPath, "error", err)
		cfg = config.Default()
	}

	fileWatcher, err := watch.New(configPath, logger)
	if err != nil {
		return fmt.Errorf("create config file watcher: %w", err)
	}
	if err := fileWatcher.Start(); err != nil {
		// Degrade gracefully: hot-reload disabled, manual restart required.
		logger.Warn("config hot-reload disabled: failed to start file watcher", "error", err)
	}
	defer fileWatcher.Stop()

	fontProvider := font.NewSystemProvider(logger)
	ttFont, err := fontProvider.Load()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	atlas, err := glyphatlas.New(loadedFontProvider{ttFont}, logger)
	if err != nil {
		return fmt.Errorf("build glyph atlas: %w", err)
	}

	conn, err := wlwire.Dial(logger)
	if err != nil {
		return fmt.Errorf("connect to compositor: %w", err)
	}
	defer conn.Close()

	// surface.New fails fast when the compositor does not advertise
	// zwlr_layer_shell_v1.
	controller, err := surface.New(conn, logger)
	if err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}

	driver := render.New(controller.Pool(), atlas, logger)
	launcher := launch.New(logger)

	eventLoop, err := loop.New(conn, controller, driver, launcher, fileWatcher, configPath, cfg, logger)
	if err != nil {
		return fmt.Errorf("build event loop: %w", err)
	}

	position := config.Position(cfg.Panel.Position)
	if err := controller.Bind(cfg.Panel.Width, cfg.Panel.Height, position, cfg.Panel.Margin); err != nil {
		return fmt.Errorf("bind surface: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	return eventLoop.Run(ctx)
}
