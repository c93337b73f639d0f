package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/traceable/config"
	"github.com/milk9111/traceable/logger"
	"github.com/milk9111/traceable/logger/console"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and overlay")
	configPath := flag.String("config", "", "board config YAML layered over the defaults")
	assetsDir := flag.String("assets", "", "directory to ingest at start and on Upload")
	envFile := flag.String("env", ".env", "env file with TRACEABLE_* overrides")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cl := console.NewConsoleLogger(console.ConsoleLoggerParams{Debug: *debug, Prefix: "traceable"})
	logger.Init(cl)

	if err := config.LoadEnvFiles(*envFile); err != nil {
		logger.Warn("env file ignored", "err", err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("config", "err", err)
		os.Exit(1)
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		logger.Warn("env overrides ignored", "err", err)
	}
	if *assetsDir != "" {
		cfg.Ingest.AssetsDir = *assetsDir
	}
	if *debug {
		cfg.Log.Debug = true
	}
	cl.SetDebug(cfg.Log.Debug)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game, err := NewGame(Options{
		Config:     cfg,
		ConfigPath: *configPath,
		Console:    cl,
	})
	if err != nil {
		logger.Fatal("start", "err", err)
		os.Exit(1)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("run", "err", err)
		game.Close()
		os.Exit(1)
	}
}
