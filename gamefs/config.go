package gamefs

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/dendrascience/assetvfs/archive"
	"github.com/dendrascience/assetvfs/vfs"
)

// PackageFormat selects which files in a search path are packages and how
// they are parsed.
type PackageFormat struct {
	Extensions []string `yaml:"extensions,omitempty"`
	// Extension is accepted as shorthand for a single extension.
	Extension string `yaml:"extension,omitempty"`
	Format    string `yaml:"format"`
}

// TextureConfig describes where texture wads are mounted and looked up.
type TextureConfig struct {
	Format      string   `yaml:"format,omitempty"`
	Root        string   `yaml:"root,omitempty"`
	SearchPaths []string `yaml:"searchpaths,omitempty"`
	Wads        []string `yaml:"wads,omitempty"`
}

// Config is the asset part of a game configuration.
type Config struct {
	Name          string        `yaml:"name"`
	SearchPath    string        `yaml:"searchpath"`
	PackageFormat PackageFormat `yaml:"packageformat"`
	// DefaultAssets are host directories mounted below everything else.
	DefaultAssets []string `yaml:"defaultassets,omitempty"`
	// GameAssets is the game's own assets folder. A relative path is resolved
	// against the directory of the configuration file.
	GameAssets string        `yaml:"gameassets,omitempty"`
	Textures   TextureConfig `yaml:"textures,omitempty"`
}

// Extensions returns the package extensions, folded and with a leading dot.
func (c Config) Extensions() []string {
	exts := c.PackageFormat.Extensions
	if c.PackageFormat.Extension != "" {
		exts = append([]string{c.PackageFormat.Extension}, exts...)
	}
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext == "" {
			continue
		}
		out = append(out, vfs.NormalizeExtension(ext))
	}
	return out
}

// Validate checks the settings Initialize depends on.
func (c Config) Validate() error {
	if c.SearchPath == "" {
		return configError(ErrMissingSetting, "searchpath is not set", map[string]interface{}{"game": c.Name})
	}
	if c.PackageFormat.Format == "" {
		return configError(ErrMissingSetting, "packageformat.format is not set", map[string]interface{}{"game": c.Name})
	}
	if _, err := archive.Lookup(c.PackageFormat.Format); err != nil {
		return configError(err, fmt.Sprintf("package format %q is not supported", c.PackageFormat.Format),
			map[string]interface{}{"game": c.Name, "format": c.PackageFormat.Format})
	}
	if len(c.Extensions()) == 0 {
		return configError(ErrMissingSetting, "packageformat.extensions is empty", map[string]interface{}{"game": c.Name})
	}
	return nil
}

// LoadConfig decodes a YAML game configuration and validates it.
func LoadConfig(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, configError(err, "cannot decode game configuration", nil)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads the configuration at path in fsys. A relative
// GameAssets folder is made relative to the file's directory.
func LoadConfigFile(fsys afero.Fs, path string) (Config, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return Config{}, configError(err, "cannot open game configuration", map[string]interface{}{"path": path})
	}
	defer f.Close()

	cfg, err := LoadConfig(f)
	if err != nil {
		return Config{}, err
	}
	if cfg.GameAssets != "" && !filepath.IsAbs(cfg.GameAssets) {
		cfg.GameAssets = filepath.Join(filepath.Dir(path), cfg.GameAssets)
	}
	return cfg, nil
}
