package main

import (
	"testing"

	"github.com/alexflint/go-arg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	args, p, err := parseArgs([]string{"-s", "--interval", "3000", "--sort", "entry", "-d", "holiday", "extra.zip"})
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, Args{
		Paths:     []string{"holiday", "extra.zip"},
		Slideshow: true,
		Interval:  3000,
		Sort:      "entry",
		Debug:     true,
	}, args)
}

func TestParseArgsHelpAndVersion(t *testing.T) {
	_, p, err := parseArgs([]string{"--help"})
	assert.ErrorIs(t, err, arg.ErrHelp)
	assert.NotNil(t, p)

	_, _, err = parseArgs([]string{"--version"})
	assert.ErrorIs(t, err, arg.ErrVersion)
}

func TestParseArgsUnknownFlag(t *testing.T) {
	_, p, err := parseArgs([]string{"--rotate"})
	assert.Error(t, err)
	assert.NotNil(t, p, "parser is returned for usage output")
}

func TestArgsConfigFilePath(t *testing.T) {
	assert.Equal(t, "/tmp/custom.json", Args{ConfigPath: "/tmp/custom.json"}.configFilePath())
	assert.Equal(t, getConfigPath(), Args{}.configFilePath())
}

func TestArgsApplyTo(t *testing.T) {
	tests := []struct {
		name    string
		args    Args
		wantErr bool
		check   func(t *testing.T, c Config)
	}{
		{
			name: "no overrides",
			args: Args{},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, defaultConfig(), c)
			},
		},
		{
			name: "slideshow and fullscreen",
			args: Args{Slideshow: true, Fullscreen: true},
			check: func(t *testing.T, c Config) {
				assert.True(t, c.Slideshow)
				assert.True(t, c.Fullscreen)
			},
		},
		{
			name: "interval",
			args: Args{Interval: 2500},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, 2500, c.AutoplayIntervalMs)
			},
		},
		{
			name:    "interval too short",
			args:    Args{Interval: 10},
			wantErr: true,
		},
		{
			name:    "interval too long",
			args:    Args{Interval: maxAutoplayIntervalMs + 1},
			wantErr: true,
		},
		{
			name: "sort",
			args: Args{Sort: "simple"},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, SortSimple, c.SortMethod)
			},
		},
		{
			name:    "unknown sort",
			args:    Args{Sort: "random"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			err := tt.args.applyTo(&cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
