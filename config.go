package vkdev

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the application-facing configuration consumed at device
// creation, loadable from YAML.
type Config struct {
	// AppName identifies the client application to the driver.
	AppName string `yaml:"app_name"`
	// EnableValidation requests validation layers during instance setup.
	EnableValidation bool `yaml:"enable_validation"`
	// DeviceExtensions lists extra device extensions to enable.
	DeviceExtensions []string `yaml:"device_extensions"`
	// StagingBufferSize overrides the standard staging buffer size class in
	// bytes. Zero keeps DefaultStagingBufferSize.
	StagingBufferSize uint64 `yaml:"staging_buffer_size"`
}

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() *Config {
	return &Config{AppName: "vkdev"}
}

// ParseConfig decodes a YAML configuration.
func ParseConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.AppName == "" {
		cfg.AppName = "vkdev"
	}
	return cfg, nil
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseConfig(f)
}
