// Package config provides hermit's global configuration. The types map
// to the YAML file at $XDG_CONFIG_HOME/hermit/config.yaml.
package config

// Config is the top-level hermit configuration.
type Config struct {
	Container   ContainerConfig   `yaml:"container,omitempty"`
	Update      UpdateConfig      `yaml:"update,omitempty"`
	Screenshots ScreenshotsConfig `yaml:"screenshots,omitempty"`
}

// ContainerConfig controls the sandbox container.
type ContainerConfig struct {
	// Image is the container image to run.
	Image string `yaml:"image,omitempty"`
	// Agent is the command launched inside the container when hermit is
	// invoked without a subcommand.
	Agent string `yaml:"agent,omitempty"`
	// Env lists extra KEY=VALUE pairs passed into the container.
	Env []string `yaml:"env,omitempty"`
}

// UpdateConfig controls self-update sources.
type UpdateConfig struct {
	BinaryURL string `yaml:"binary_url,omitempty"`
	SkillsURL string `yaml:"skills_url,omitempty"`
}

// ScreenshotsConfig controls the clipboard proxy's screenshot source.
type ScreenshotsConfig struct {
	// Dir overrides the screenshot directory. The
	// CLIPBOARD_SCREENSHOTS_DIR environment variable wins over this.
	Dir string `yaml:"dir,omitempty"`
	// Patterns restrict which file names qualify (doublestar globs
	// against the base name). Empty means every file.
	Patterns []string `yaml:"patterns,omitempty"`
}
