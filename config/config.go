// Package config loads the engine, agent and controller configuration.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/akmonengine/glide"
	"github.com/akmonengine/glide/actor"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of a glide setup
type Config struct {
	Agent      actor.AgentConfig        `yaml:"agent"`
	Engine     glide.Settings           `yaml:"engine"`
	Controller glide.ControllerSettings `yaml:"controller"`
	Replay     ReplayConfig             `yaml:"replay"`
	Log        LogConfig                `yaml:"log"`
}

// ReplayConfig holds the trace replay parameters.
type ReplayConfig struct {
	DT float64 `yaml:"dt"` // seconds per trace row
}

// LogConfig holds logging parameters.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Defaults returns the embedded configuration.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	return cfg, nil
}

// Load reads the embedded defaults, then overlays the file at path.
// Only the fields present in the file are overwritten. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Parse(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse overlays YAML data onto cfg
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Agent.Validate(); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if c.Controller.Gravity < 0 || c.Controller.JumpSpeed < 0 || c.Controller.GroundTolerance < 0 {
		return fmt.Errorf("controller: negative value in %+v", c.Controller)
	}
	if !(c.Replay.DT > 0) {
		return fmt.Errorf("replay: dt %v must be positive", c.Replay.DT)
	}
	return nil
}
