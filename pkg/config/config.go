package config

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/minigit-vcs/minigit/pkg/common/fileops"
	"github.com/minigit-vcs/minigit/pkg/repository/mgpath"
)

// DefaultBranch is the branch a new repository starts on unless configured
// otherwise.
const DefaultBranch = "main"

// Config is the per-repository configuration, stored as TOML in the
// metadata directory.
type Config struct {
	User UserConfig `toml:"user"`
	Core CoreConfig `toml:"core"`
}

// UserConfig identifies the person recorded in new commits
type UserConfig struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// CoreConfig holds repository behavior settings
type CoreConfig struct {
	DefaultBranch string `toml:"default_branch"`
}

// Default returns the configuration a fresh repository starts with
func Default() Config {
	return Config{
		Core: CoreConfig{DefaultBranch: DefaultBranch},
	}
}

// Load reads the configuration file. A missing file yields the defaults.
func Load(minigit mgpath.MiniGitPath) (Config, error) {
	path := minigit.ConfigPath().ToAbsolutePath()

	exists, existsErr := fileops.Exists(path)
	if existsErr != nil {
		return Config{}, existsErr
	}
	if !exists {
		return Default(), nil
	}

	cfg := Default()
	if _, decodeErr := toml.DecodeFile(path.String(), &cfg); decodeErr != nil {
		return Config{}, fmt.Errorf("decode config: %w", decodeErr)
	}

	if cfg.Core.DefaultBranch == "" {
		cfg.Core.DefaultBranch = DefaultBranch
	}

	return cfg, nil
}

// Save writes the configuration file
func Save(minigit mgpath.MiniGitPath, cfg Config) error {
	var buf bytes.Buffer
	if encodeErr := toml.NewEncoder(&buf).Encode(cfg); encodeErr != nil {
		return fmt.Errorf("encode config: %w", encodeErr)
	}

	path := minigit.ConfigPath().ToAbsolutePath()
	if writeErr := fileops.WriteConfig(path, buf.Bytes()); writeErr != nil {
		return fmt.Errorf("write config: %w", writeErr)
	}
	return nil
}
