package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the kubevet.yaml file. Only the correction service needs
// configuration, the analyzer core runs with none.
type Config struct {
	Fix     FixConfig `yaml:"fix"`
	Verbose bool      `yaml:"-"` // CLI flag only
}

// FixConfig configures the OpenAI-compatible correction service.
type FixConfig struct {
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Parallel       int    `yaml:"parallel"` // concurrent suggestion requests
}

func Default() Config {
	return Config{
		Fix: FixConfig{
			BaseURL:        "https://api.groq.com/openai/v1",
			Model:          "llama-3.1-70b-versatile",
			TimeoutSeconds: 60,
			Parallel:       4,
		},
	}
}

// Load reads the config file and merges it over the defaults. An empty
// path falls back to kubevet.yaml in the current directory, then in the
// user's config directory; a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = findDefault()
		if path == "" {
			cfg.applyEnv()
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func findDefault() string {
	candidates := []string{"kubevet.yaml"}
	if d, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(d, "kubevet", "kubevet.yaml"))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.Mode().IsRegular() {
			return c
		}
	}
	return ""
}

// applyEnv fills the API key from the environment when the file leaves it
// empty. GROQ_API_KEY is checked first to match the default provider.
func (c *Config) applyEnv() {
	if c.Fix.APIKey != "" {
		return
	}
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		c.Fix.APIKey = key
	} else if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.Fix.APIKey = key
	}
}
