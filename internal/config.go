package internal

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/vimcmd/internal/catalog"
	pkgconfig "github.com/starford/vimcmd/pkg/config"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Cache   CacheConfig       `yaml:"cache"`
	Sources SourcesConfig     `yaml:"sources"`
	Display DisplayConfig     `yaml:"display"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	return c.Sources.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// CacheConfig holds the location of the usage ledger.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the cache configuration and expands a leading "~".
func (c *CacheConfig) Validate() error {
	c.Path = pkgconfig.ExpandHome(c.Path)
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SourcesConfig holds the source registry and the source used when none is
// given on the command line.
//
// Registry entries from a config file are merged over the defaults, so the
// built-in "basic" source stays available unless it is redefined.
type SourcesConfig struct {
	Default  string            `yaml:"default"`
	Registry map[string]string `yaml:"registry"`
}

// Validate validates the sources configuration and expands a leading "~" in
// registry paths.
func (c *SourcesConfig) Validate() error {
	for name, path := range c.Registry {
		c.Registry[name] = pkgconfig.ExpandHome(path)
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Default, validation.Required),
		validation.Field(&c.Registry, validation.Required, validation.Each(validation.Required)),
	)
}

// Catalogs returns the registry as a request-scoped catalog.Registry copy.
func (c *SourcesConfig) Catalogs() catalog.Registry {
	reg := make(catalog.Registry, len(c.Registry))
	for name, path := range c.Registry {
		reg[name] = path
	}
	return reg
}

// DisplayConfig controls terminal output.
type DisplayConfig struct {
	Styled bool `yaml:"styled"`
}

// DefaultConfigPath returns the config file location used when --config is
// not given.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "vimcmd", "config.yaml")
}

// BuiltinCatalogPath returns where the built-in catalog is installed.
func BuiltinCatalogPath() string {
	return filepath.Join(xdg.DataHome, "vimcmd", "vim-basic.csv")
}

// DefaultCachePath returns the ledger location under the user's home
// directory.
func DefaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".vimcmd_cache")
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelWarn,
		},
		Cache: CacheConfig{
			Path: DefaultCachePath(),
		},
		Sources: SourcesConfig{
			Default: catalog.BuiltinName,
			Registry: map[string]string{
				catalog.BuiltinName: BuiltinCatalogPath(),
			},
		},
	}
}
