package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	args, parser, err := parseArgs(argv)
	switch {
	case errors.Is(err, arg.ErrHelp):
		parser.WriteHelp(os.Stdout)
		return 0
	case errors.Is(err, arg.ErrVersion):
		fmt.Println(Args{}.Version())
		return 0
	case err != nil:
		if parser != nil {
			parser.WriteUsage(os.Stderr)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		return 2
	}

	setupLogging(args.Debug)

	configPath := args.configFilePath()
	status := loadConfigFromPath(configPath)
	for _, w := range status.Warnings {
		logger.Warn().Str("path", configPath).Msg(w)
	}
	if err := args.applyTo(&status.Config); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 2
	}
	config := status.Config

	album, err := collectAlbum(args.Paths, config.SortMethod)
	if err != nil {
		logger.Error().Err(err).Msg("failed to collect media")
		return 1
	}
	if len(album.Items) == 0 {
		logger.Error().Strs("paths", args.Paths).Msg("no media files specified")
		return 1
	}
	logger.Info().
		Int("items", len(album.Items)).
		Str("sort", getSortMethodName(config.SortMethod)).
		Str("config", status.Status).
		Msg("album loaded")

	if err := InitGraphics(); err != nil {
		logger.Error().Err(err).Msg("failed to load font")
		return 1
	}

	viewer := NewViewer(album, status, configPath)
	viewer.SetOverrides(args.applyTo)
	if watcher, err := NewConfigWatcher(configPath); err != nil {
		logger.Warn().Err(err).Msg("config reload disabled")
	} else {
		viewer.SetWatcher(watcher)
	}

	keys := NewKeyboardSource(viewer.keys)
	mouse := NewMouseSource(viewer.mouse)
	viewer.Open(time.Now(), keys, mouse, NewTouchSource())
	defer viewer.Close()

	title := "Album"
	if album.Title != "" {
		title = album.Title + " - Album"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowSizeLimits(minWidth, minHeight, -1, -1)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)
	if config.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(viewer); err != nil {
		logger.Error().Err(err).Msg("viewer stopped")
		return 1
	}
	return 0
}
