package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Defaults used when neither the config file nor the environment sets a value.
// Replace DefaultURL with the public address of the tracker under test.
const (
	DefaultURL     = "TU_URL_DE_NGROK_AQUI"
	DefaultProject = "testproject"
	DefaultOutput  = "json"
)

// Config holds the tracker endpoint and how responses are printed.
type Config struct {
	URL     string `yaml:"url"     mapstructure:"url"`
	Project string `yaml:"project" mapstructure:"project"`
	Output  string `yaml:"output"  mapstructure:"output"`
}

// DefaultPath returns the default config file path (~/.issue-probe.yaml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".issue-probe.yaml"
	}
	return filepath.Join(home, ".issue-probe.yaml")
}

// Load reads config from the YAML file and applies env var overrides.
// configPath may be empty to use the default path.
func Load(configPath string) (Config, error) {
	v := viper.New()

	if configPath == "" {
		configPath = DefaultPath()
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetDefault("url", DefaultURL)
	v.SetDefault("project", DefaultProject)
	v.SetDefault("output", DefaultOutput)

	v.BindEnv("url", "ISSUE_PROBE_URL")
	v.BindEnv("project", "ISSUE_PROBE_PROJECT")
	v.BindEnv("output", "ISSUE_PROBE_OUTPUT")

	// A missing file is fine: defaults and env vars still apply.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the URL is usable and the project and output are set.
func (c Config) Validate() error {
	if c.URL == "" || c.URL == DefaultURL {
		return fmt.Errorf("tracker URL is required (set in config file, ISSUE_PROBE_URL env var or --url)")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("parsing tracker URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("tracker URL %q must be an absolute http(s) URL", c.URL)
	}
	if c.Project == "" {
		return fmt.Errorf("project is required (set in config file, ISSUE_PROBE_PROJECT env var or --project)")
	}
	switch c.Output {
	case "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", c.Output)
	}
	return nil
}

// Save writes the config to the given path (or default path if empty).
func Save(cfg Config, configPath string) error {
	if configPath == "" {
		configPath = DefaultPath()
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
