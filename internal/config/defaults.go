package config

// Default sources for self-update and the sandbox image.
const (
	DefaultImage     = "ghcr.io/xdg/hermit:latest"
	DefaultAgent     = "claude"
	DefaultBinaryURL = "https://github.com/xdg/hermit/releases/latest/download/hermit"
	DefaultSkillsURL = "https://github.com/xdg/hermit/releases/latest/download/skills.tar.gz"
)

// Default returns the built-in configuration, used when no config file
// exists and as the basis for the file written on first run.
func Default() *Config {
	return &Config{
		Container: ContainerConfig{
			Image: DefaultImage,
			Agent: DefaultAgent,
		},
		Update: UpdateConfig{
			BinaryURL: DefaultBinaryURL,
			SkillsURL: DefaultSkillsURL,
		},
	}
}

// applyDefaults fills zero-valued fields a config file left out.
func applyDefaults(cfg *Config) {
	if cfg.Container.Image == "" {
		cfg.Container.Image = DefaultImage
	}
	if cfg.Container.Agent == "" {
		cfg.Container.Agent = DefaultAgent
	}
	if cfg.Update.BinaryURL == "" {
		cfg.Update.BinaryURL = DefaultBinaryURL
	}
	if cfg.Update.SkillsURL == "" {
		cfg.Update.SkillsURL = DefaultSkillsURL
	}
}
