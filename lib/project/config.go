// Package project reads and writes tisane.yaml, the per-project
// configuration file.
package project

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const ConfigFile = "tisane.yaml"

type Config struct {
	Name         string       `yaml:"name"`
	Description  string       `yaml:"description"`
	Version      string       `yaml:"version"`
	Main         string       `yaml:"main"`
	Author       string       `yaml:"author"`
	License      string       `yaml:"license"`
	Dependencies []Dependency `yaml:"dependencies,omitempty"`
}

type Dependency struct {
	Package    string `yaml:"package"`
	Version    string `yaml:"version"`
	Identifier string `yaml:"identifier"`
}

// CreateDefault fills c with the scaffold values used by `tisane init`.
func (c *Config) CreateDefault(name string) {
	if name == "" || name == "." {
		name = "NewProject"
	}
	c.Name = name
	c.Description = "A new Tisane project"
	c.Version = "1.0.0"
	c.Main = "main.tsn"
	c.Author = "Anonymous"
	c.License = "MIT"
}

// Save writes c to path. An existing file is only replaced when overwrite
// is set.
func (c *Config) Save(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return os.ErrExist
	}

	out, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}

// Load reads the config from dir.
func Load(dir string) (Config, error) {
	file, err := os.Open(filepath.Join(dir, ConfigFile))
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var conf Config
	if err := yaml.NewDecoder(file).Decode(&conf); err != nil {
		return Config{}, err
	}
	return conf, nil
}
