// Package config loads driftwm's TOML configuration file, grounded on
// _examples/noisetorch-NoiseTorch/config.go's load-or-default shape
// (xdgOrFallback, DecodeFile, initializeConfigIfNot) adapted to return a
// *Config rather than calling log.Fatal, since driftwm's caller decides
// whether a missing file is fatal.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Binding is one key chord to action mapping, in TOML form.
type Binding struct {
	Mods   string `toml:"mods"`   // e.g. "ctrl+alt", "alt", "shift+alt"
	Key    string `toml:"key"`    // a letter, digit, or named key ("return")
	Action string `toml:"action"` // "quit", "cycle_layout", "close", "layout:grid", "launch:<cmd>"
}

// Config is driftwm's full set of user-tunable values.
type Config struct {
	GapSize        uint16 `toml:"gap_size"`
	BorderWidth    uint16 `toml:"border_width"`
	BarHeight      uint16 `toml:"bar_height"`
	BorderActive   string `toml:"border_active"`
	BorderInactive string `toml:"border_inactive"`

	Bindings []Binding `toml:"bindings"`
}

const (
	fileName    = "config.toml"
	dirName     = "driftwm"
	defaultGap  = 2
	defaultBW   = 2
	defaultBar  = 20
)

// Default returns the built-in configuration, matching spec's visual
// constants and default key bindings.
func Default() *Config {
	return &Config{
		GapSize:        defaultGap,
		BorderWidth:    defaultBW,
		BarHeight:      defaultBar,
		BorderActive:   "#5294e2",
		BorderInactive: "#333333",
		Bindings: []Binding{
			{Mods: "ctrl+alt", Key: "q", Action: "quit"},
			{Mods: "shift+alt", Key: "q", Action: "close"},
			{Mods: "alt", Key: "l", Action: "cycle_layout"},
			{Mods: "alt", Key: "p", Action: "launch:dmenu_run"},
			{Mods: "alt", Key: "return", Action: "launch:xterm"},
		},
	}
}

// Dir resolves driftwm's config directory under $XDG_CONFIG_HOME, falling
// back to $HOME/.config.
func Dir() string {
	return filepath.Join(xdgOrFallback("XDG_CONFIG_HOME", filepath.Join(os.Getenv("HOME"), ".config")), dirName)
}

// Load reads config.toml from dir, falling back to Default() when the file
// does not exist.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, fileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

func xdgOrFallback(xdg, fallback string) string {
	if dir := os.Getenv(xdg); dir != "" {
		return dir
	}
	return fallback
}
