package main

import (
	"fmt"

	"github.com/alexflint/go-arg"
)

// Args holds the command line
type Args struct {
	Paths      []string `arg:"positional" help:"directories, media files, archives or album.json manifests"`
	Slideshow  bool     `arg:"-s,--slideshow" help:"start with the slideshow playing"`
	Interval   int      `arg:"-i,--interval" help:"slideshow interval in milliseconds"`
	ConfigPath string   `arg:"-c,--config" help:"config file (default ~/.album.json)"`
	Sort       string   `arg:"--sort" help:"sort order: natural|simple|entry"`
	Fullscreen bool     `arg:"-f,--fullscreen" help:"start fullscreen"`
	Debug      bool     `arg:"-d,--debug" help:"enable debug logging"`
}

// Description returns the program description for go-arg
func (Args) Description() string {
	return "Page through photos and videos like an album"
}

// Version returns the version string for go-arg
func (Args) Version() string {
	return "album 1.0.0"
}

// parseArgs parses argv (without the program name). The parser is returned
// even on error so callers can print usage.
func parseArgs(argv []string) (Args, *arg.Parser, error) {
	var args Args
	p, err := arg.NewParser(arg.Config{Program: "album"}, &args)
	if err != nil {
		return Args{}, nil, err
	}
	if err := p.Parse(argv); err != nil {
		return Args{}, p, err
	}
	return args, p, nil
}

// configFilePath is the config file to load and save
func (a Args) configFilePath() string {
	if a.ConfigPath != "" {
		return a.ConfigPath
	}
	return getConfigPath()
}

// applyTo overrides config values given on the command line
func (a Args) applyTo(config *Config) error {
	if a.Sort != "" {
		method, ok := parseSortMethod(a.Sort)
		if !ok {
			return fmt.Errorf("unknown sort order %q", a.Sort)
		}
		config.SortMethod = method
	}

	if a.Interval != 0 {
		if a.Interval < minAutoplayIntervalMs || a.Interval > maxAutoplayIntervalMs {
			return fmt.Errorf("interval must be between %d and %d ms", minAutoplayIntervalMs, maxAutoplayIntervalMs)
		}
		config.AutoplayIntervalMs = a.Interval
	}

	if a.Slideshow {
		config.Slideshow = true
	}
	if a.Fullscreen {
		config.Fullscreen = true
	}
	return nil
}
