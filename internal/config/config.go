// Package config reads and writes the YAML profile file holding mainframe
// connection details.
package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile = "~/.zmconfig"
	DefaultPort       = 21
)

type Profile struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	HLQ      string `yaml:"hlq"`

	// WarehouseDir is used by import-mainframe when neither --target-dir
	// nor --warehouse-dir is given.
	WarehouseDir string `yaml:"warehouse_dir,omitempty"`
}

type Config struct {
	Profiles       map[string]*Profile `yaml:"profiles"`
	DefaultProfile string              `yaml:"default_profile"`
}

// Path expands path, or the default config file when path is empty.
func Path(path string) (string, error) {
	if path == "" {
		path = DefaultConfigFile
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("cannot find home directory: %w", err)
	}
	return expanded, nil
}

func Load(path string) (*Config, error) {
	path, err := Path(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s\nRun 'zmimport config setup' to create one", path)
		}
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]*Profile)
	}
	for _, p := range cfg.Profiles {
		if p.Port == 0 {
			p.Port = DefaultPort
		}
	}

	return &cfg, nil
}

func (c *Config) Save(path string) error {
	path, err := Path(path)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	// 0600: owner read/write only (contains password)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}

	return nil
}

func (c *Config) GetProfile(name string) (*Profile, error) {
	if name == "" {
		name = c.DefaultProfile
	}
	if name == "" {
		return nil, fmt.Errorf("no profile specified and no default profile set")
	}

	p, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile '%s' not found", name)
	}

	return p, nil
}

func (p *Profile) Validate() error {
	if p.Host == "" {
		return fmt.Errorf("host is required")
	}
	if p.User == "" {
		return fmt.Errorf("user is required")
	}
	if p.Password == "" {
		return fmt.Errorf("password is required")
	}
	if p.Port < 1 || p.Port > 65535 {
		return fmt.Errorf("port %d is out of range", p.Port)
	}
	return nil
}
