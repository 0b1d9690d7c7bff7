package main

import (
	"flag"
	"os"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"grid-viewer/internal/app"
	"grid-viewer/internal/debug"
	"grid-viewer/internal/engineconfig"
	"grid-viewer/internal/fonts"
	"grid-viewer/internal/graphics"
	"grid-viewer/internal/logger"
)

// keyBindings maps keys to session commands.
var keyBindings = []struct {
	key  int32
	name string
}{
	{rl.KeyEscape, app.CmdDeselect},
	{rl.KeyD, app.CmdResetCamera},
	{rl.KeyT, app.CmdTopView},
	{rl.KeyI, app.CmdToggleMode},
}

func main() {
	configPath := flag.String("config", engineconfig.ConfigPath, "viewer preferences (YAML)")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	logFile := flag.String("log-file", logger.LogFilePath, "JSON log file; empty logs to stderr only")
	run := flag.String("run", "", "comma-separated commands to execute after startup, e.g. top-view,toggle-mode")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: *logLevel, File: *logFile})
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	prefs, err := engineconfig.Load(*configPath)
	if err != nil {
		log.Warn("config not loaded; using defaults", zap.String("path", *configPath), zap.Error(err))
	}

	win := graphics.Open(prefs.Window)
	defer win.Close()
	renderer := graphics.NewRenderer(log.Named("graphics"))
	defer renderer.Close()

	a, err := app.New(win, renderer, prefs, log)
	if err != nil {
		log.Error("start viewer", zap.Error(err))
		return
	}
	defer a.Close()

	cmds := a.Commands()
	for _, b := range keyBindings {
		if err := cmds.Bind(b.key, b.name); err != nil {
			log.Error("bind key", zap.Int32("key", b.key), zap.Error(err))
		}
	}
	for _, name := range strings.Split(*run, ",") {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		if err := cmds.Execute(name); err != nil {
			log.Warn("startup command", zap.String("command", name), zap.Error(err))
		}
	}

	overlay := debug.New()
	overlay.SetShowStats(a.Host().Stats() != nil)
	if prefs.OverlayFont != "" {
		if path, err := fonts.Find(fonts.BaseDirs(), prefs.OverlayFont); err != nil {
			log.Warn("overlay font", zap.String("font", prefs.OverlayFont), zap.Error(err))
		} else {
			font := rl.LoadFont(path)
			defer rl.UnloadFont(font)
			overlay.SetFont(font)
		}
	}

	log.Info("viewer started",
		zap.Int("rows", prefs.Rows),
		zap.Stringer("mode", a.Mode()),
		zap.Float32("fps_limit", prefs.FPSLimit))

	graphics.Run(a.Host(), renderer, overlay, func(key int32) {
		if _, err := cmds.HandleKey(key); err != nil {
			log.Warn("key command", zap.Int32("key", key), zap.Error(err))
		}
	})
}
