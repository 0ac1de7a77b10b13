package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds the contents of .sfcmap/config.yaml.
type ProjectConfig struct {
	Version string   `yaml:"version"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
	Workers int      `yaml:"workers"`
	Out     string   `yaml:"out"`
	Format  string   `yaml:"format"`
	Report  string   `yaml:"report"`
	McpLog  string   `yaml:"mcp_log"`
}

const projectConfigPath = ".sfcmap/config.yaml"

// loadProjectConfig reads .sfcmap/config.yaml from the current directory.
// Returns nil (no error) if the file does not exist.
func loadProjectConfig() (*ProjectConfig, error) {
	data, err := os.ReadFile(projectConfigPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveString applies the fallback chain: explicit flag value, then the
// project config value, then the built-in default.
func resolveString(flagValue, configValue, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if configValue != "" {
		return configValue
	}
	return def
}
