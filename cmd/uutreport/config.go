package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = ".uutreport.yml"

// Config captures CLI options sourced from the config file or flags
type Config struct {
	ServerURL string `yaml:"server_url"`
	Token     string `yaml:"token"`
	Verbose   bool   `yaml:"verbose"`

	Prometheus PrometheusConfig `yaml:"prometheus"`
}

// PrometheusConfig controls the optional metrics endpoint of the upload
// command
type PrometheusConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Default returns the baseline configuration used when no flags or config
// file specify values
func Default() Config {
	return Config{
		Prometheus: PrometheusConfig{
			Namespace: "wats",
		},
	}
}

// Load reads .uutreport.yml from dir when present. Missing files are
// ignored.
func Load(dir string) (Config, error) {
	cfg := Default()
	path := filepath.Join(dir, configFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	return merge(cfg, fileCfg), nil
}

func merge(base, override Config) Config {
	out := base
	if override.ServerURL != "" {
		out.ServerURL = override.ServerURL
	}
	if override.Token != "" {
		out.Token = override.Token
	}
	if override.Verbose {
		out.Verbose = true
	}
	if override.Prometheus.Enabled {
		out.Prometheus.Enabled = true
	}
	if override.Prometheus.Namespace != "" {
		out.Prometheus.Namespace = override.Prometheus.Namespace
	}

	return out
}
