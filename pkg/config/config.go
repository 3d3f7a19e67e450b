// Package config loads run settings for the console and desktop hosts.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"goprelude/pkg/console"
	"goprelude/pkg/memory"
)

var ErrInvalidConfig = errors.New("invalid config")

// minMemory leaves room for the null page and a few guest frames.
const minMemory = 4096

type Window struct {
	Title string `yaml:"title"`
	Cols  int    `yaml:"cols"`
	Rows  int    `yaml:"rows"`
	Scale int    `yaml:"scale"`
}

type Config struct {
	Program    string `yaml:"program"`
	Input      string `yaml:"input"`
	MemorySize int    `yaml:"memory_size"`
	Window     Window `yaml:"window"`
	Screenshot string `yaml:"screenshot"`
}

func Default() Config {
	return Config{
		MemorySize: memory.DefaultSize,
		Window: Window{
			Title: "Prelude Console",
			Cols:  console.DefaultCols,
			Rows:  console.DefaultRows,
			Scale: 2,
		},
	}
}

// Load reads a YAML file on top of Default. Relative paths inside it are
// resolved against the file's directory.
func Load(path string) (Config, error) {
	fullPath, err := filepath.Abs(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return Parse(data, filepath.Dir(fullPath))
}

func Parse(data []byte, baseDir string) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.Input = resolve(baseDir, cfg.Input)
	cfg.Screenshot = resolve(baseDir, cfg.Screenshot)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func resolve(baseDir, p string) string {
	if p == "" || baseDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

func (c Config) Validate() error {
	switch {
	case c.MemorySize < minMemory:
		return fmt.Errorf("%w: memory_size %d is below %d", ErrInvalidConfig, c.MemorySize, minMemory)
	case int64(c.MemorySize) > 1<<31:
		return fmt.Errorf("%w: memory_size %d does not fit a 32-bit address space", ErrInvalidConfig, c.MemorySize)
	case c.Window.Cols <= 0 || c.Window.Rows <= 0:
		return fmt.Errorf("%w: window must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Window.Cols, c.Window.Rows)
	case c.Window.Scale <= 0:
		return fmt.Errorf("%w: window scale must be positive, got %d", ErrInvalidConfig, c.Window.Scale)
	}
	return nil
}
