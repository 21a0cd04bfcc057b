package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileNames lists the config files looked up in the book root, in order.
var FileNames = []string{"book.yaml", "book.yml", "book.json"}

// Config holds the settings of one book project. Src and Dest are
// absolute after Load.
type Config struct {
	Title       string `yaml:"title" json:"title"`
	Author      string `yaml:"author" json:"author"`
	Description string `yaml:"description" json:"description"`
	Language    string `yaml:"language" json:"language"`
	Src         string `yaml:"src" json:"src"`
	Dest        string `yaml:"dest" json:"dest"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Language: "en",
		Src:      "src",
		Dest:     "book",
	}
}

// Load reads the first config file found in root. A missing file yields
// the defaults. Relative src and dest paths are resolved against root.
func Load(root string) (*Config, error) {
	cfg := DefaultConfig()

	path, err := find(root)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := decode(path, cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.Src == "" {
		cfg.Src = "src"
	}
	if cfg.Dest == "" {
		cfg.Dest = "book"
	}

	cfg.ExpandPaths(root)

	if err := cfg.Validate(root); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Path returns the config file Load would read in root, or "" if none exists.
func Path(root string) string {
	path, _ := find(root)
	return path
}

func find(root string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(root, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to stat config %s: %w", path, err)
		}
	}
	return "", nil
}

func decode(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if filepath.Ext(path) == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// ExpandPaths makes Src and Dest absolute, resolving relative ones against root.
func (c *Config) ExpandPaths(root string) {
	c.Src = resolve(root, c.Src)
	c.Dest = resolve(root, c.Dest)
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// Validate checks the configuration for errors. Builds empty dest, so it
// must not be the project root and must not contain src.
func (c *Config) Validate(root string) error {
	if c.Src == "" {
		return fmt.Errorf("src cannot be empty")
	}
	if c.Dest == "" {
		return fmt.Errorf("dest cannot be empty")
	}

	src := resolve(root, c.Src)
	dest := resolve(root, c.Dest)
	if src == dest {
		return fmt.Errorf("src and dest must be different directories")
	}
	if root != "" && dest == filepath.Clean(root) {
		return fmt.Errorf("dest cannot be the book root")
	}
	if within(dest, src) {
		return fmt.Errorf("dest %s contains the source directory", c.Dest)
	}
	return nil
}

// within reports whether child lies below parent.
func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Save writes the configuration as YAML to path, storing src and dest
// relative to root when possible.
func (c *Config) Save(path, root string) error {
	out := *c
	out.Src = relative(root, c.Src)
	out.Dest = relative(root, c.Dest)

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func relative(root, p string) string {
	if rel, err := filepath.Rel(root, p); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return p
}
