package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppDirName is the directory name used under the XDG base directories.
const AppDirName = "borrow"

// FallbackDataDir is used when no XDG data directory can be determined.
const FallbackDataDir = ".borrow"

// EnvPrefix prefixes every configuration environment variable.
const EnvPrefix = "BORROW_"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		Prompt: PromptConfig{
			NonInteractive: false,
		},
		Output: OutputConfig{
			Color:   true,
			Verbose: false,
			Quiet:   false,
		},
	}
}

// defaultMap mirrors DefaultConfig for the koanf defaults layer.
func defaultMap() map[string]interface{} {
	d := DefaultConfig()
	return map[string]interface{}{
		"data_dir":               d.DataDir,
		"prompt.non_interactive": d.Prompt.NonInteractive,
		"output.color":           d.Output.Color,
		"output.verbose":         d.Output.Verbose,
		"output.quiet":           d.Output.Quiet,
		"github.token":           d.GitHub.Token,
	}
}

// DefaultDataDir returns $XDG_DATA_HOME/borrow, or ./.borrow when the data
// home is unknown.
func DefaultDataDir() string {
	if xdg.DataHome == "" {
		return FallbackDataDir
	}
	return filepath.Join(xdg.DataHome, AppDirName)
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/borrow/config.toml.
func DefaultConfigPath() string {
	if xdg.ConfigHome == "" {
		return ""
	}
	return filepath.Join(xdg.ConfigHome, AppDirName, "config.toml")
}
