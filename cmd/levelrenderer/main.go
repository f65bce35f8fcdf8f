package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"levelrenderer/internal/assets"
	"levelrenderer/internal/audio"
	"levelrenderer/internal/config"
	"levelrenderer/internal/game"
	"levelrenderer/internal/hud"
	"levelrenderer/internal/level"
	"levelrenderer/internal/logger"
	"levelrenderer/internal/platform"
	"levelrenderer/internal/render"
)

func main() {
	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	configPath := flag.String("config", config.DefaultPath, "renderer config file")
	levelIndex := flag.Int("level", 0, "index of the first level in the configured list")
	flag.Parse()

	if err := run(*configPath, *levelIndex); err != nil {
		log.Fatal(err)
	}
}

// run owns every resource main opens, so deferred closes finish before the
// process exits with an error.
func run(configPath string, levelIndex int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) || configPath != config.DefaultPath {
			return fmt.Errorf("config: %w", err)
		}
		log.Printf("Config: %s not found, using defaults", config.DefaultPath)
	}

	lf, err := logger.Open(cfg.Paths.LevelLoaderLog, os.Stdout)
	if err != nil {
		return fmt.Errorf("log: %w", err)
	}
	defer lf.Close()

	win := platform.OpenWindow(cfg.Window)
	defer win.Close()

	src, err := render.LoadShaderSources(cfg.Paths.VertexShader, cfg.Paths.PixelShader)
	if err != nil {
		return fmt.Errorf("shader: %w", err)
	}
	cache := assets.New()
	defer cache.Unload()
	device, err := platform.NewDevice(src, cache.LoadTextures(cfg.TexturePaths()))
	if err != nil {
		return fmt.Errorf("shader: %w", err)
	}
	defer device.Close()

	h, err := hud.Load(cfg.Paths.HUD)
	if err != nil {
		log.Printf("HUD: %v", err)
		h = &hud.HUD{}
	}
	font, err := hud.LoadFont(cfg.Paths.Font)
	if err != nil {
		log.Printf("Font: %v", err)
	}

	sound := audio.Disabled()
	if cfg.Audio.Enabled {
		sound = audio.Init(cfg.Paths.LoadingSound, cfg.Paths.Music, cfg.Audio.CueVolume, cfg.Audio.MusicVolume)
	}
	defer sound.Close()

	app := game.New(&cfg, game.Deps{
		Window:  win,
		Device:  device,
		Input:   &platform.Poller{},
		Audio:   sound,
		Overlay: &platform.Overlay{},
		Loader:  &level.Loader{ModelDir: cfg.Paths.Models, Log: lf.Logger},
		HUD:     h,
		Font:    font,
		Log:     lf.Logger,
	})
	if err := app.Start(levelIndex); err != nil {
		lf.Printf("Level: %v", err)
		return fmt.Errorf("level: %w", err)
	}
	app.Run()
	return nil
}
