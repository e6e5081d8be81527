// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Generate GenerateConfig `toml:"generate"`
	Storage  StorageConfig  `toml:"storage"`
	Sources  SourcesConfig  `toml:"sources"`
	Log      LogConfig      `toml:"log"`
}

// GenerateConfig maps passphrase generation settings.
type GenerateConfig struct {
	Count        *int    `toml:"count"`
	MinFrequency *uint32 `toml:"min-frequency"`
	Variant      *string `toml:"variant"`
	Secure       *bool   `toml:"secure"`
	Strict       *bool   `toml:"strict"`
}

// StorageConfig maps storage directory settings.
type StorageConfig struct {
	DataDir     *string `toml:"data-dir"`
	KeepArchive *bool   `toml:"keep-archive"`
}

// SourcesConfig overrides the download locations.
type SourcesConfig struct {
	WordNetURL *string `toml:"wordnet-url"`
	CorpusURL  *string `toml:"corpus-url"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
