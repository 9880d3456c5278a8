// Package session loads the optional .tarnishrc.yaml configuration file
// that customizes the REPL's banner, prompt, color and history
// settings, the file-configurable counterpart to main/main.go's
// hardcoded BANNER/VERSION/AUTHOR/PROMPT/LINE package vars.
package session

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every knob .tarnishrc.yaml can set. Any field left out
// of the file keeps its Default* value.
type Config struct {
	Banner      string `yaml:"banner"`
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	Color       *bool  `yaml:"color"`
}

const (
	DefaultPrompt      = "tarnish> "
	DefaultHistoryFile = ".tarnish_history"
)

var DefaultBanner = `Tarnish - a small scripting language
Type '.exit' to quit, arrow keys for history.
`

// Default returns the configuration used when no .tarnishrc.yaml is
// present or it fails to parse.
func Default() *Config {
	return &Config{
		Banner:      DefaultBanner,
		Prompt:      DefaultPrompt,
		HistoryFile: DefaultHistoryFile,
	}
}

// Load reads path (typically ".tarnishrc.yaml" in the working
// directory) and merges it over Default(). A missing file is not an
// error: Load silently returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return cfg, err
	}

	if override.Banner != "" {
		cfg.Banner = override.Banner
	}
	if override.Prompt != "" {
		cfg.Prompt = override.Prompt
	}
	if override.HistoryFile != "" {
		cfg.HistoryFile = override.HistoryFile
	}
	if override.Color != nil {
		cfg.Color = override.Color
	}
	return cfg, nil
}

// ColorForced reports whether the config explicitly turned color on or
// off; ok is false when the setting was left to TTY auto-detection.
func (c *Config) ColorForced() (enabled, ok bool) {
	if c.Color == nil {
		return false, false
	}
	return *c.Color, true
}
