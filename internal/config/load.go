package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xdg/hermit/internal/pathutil"
)

// Load reads the configuration from the default path. A missing file
// yields the defaults and writes them out for the user to edit; a file
// that exists but cannot be parsed is an error, never silently ignored.
func Load() (*Config, error) {
	return loadFrom(Path())
}

func loadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			if writeErr := writeTo(path, cfg); writeErr != nil {
				// First-run convenience only; the defaults still apply.
				return cfg, nil
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	applyDefaults(cfg)
	cfg.Screenshots.Dir = pathutil.ExpandHome(cfg.Screenshots.Dir)
	return cfg, nil
}

// Parse parses YAML data into a Config, rejecting unknown fields so
// typos in the file surface early. Empty input is a valid zero config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	err := decoder.Decode(&cfg)
	if errors.Is(err, io.EOF) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decode YAML: %w", err)
	}
	return &cfg, nil
}
