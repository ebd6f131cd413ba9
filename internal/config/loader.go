package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Loader defines the interface for loading configuration files.
type Loader interface {
	// Load loads configuration from the specified file path.
	Load(path string) (*Config, error)
	// LoadOrDefault loads configuration or falls back to defaults if the file doesn't exist.
	LoadOrDefault(path string) (*Config, error)
	// Validate validates the configuration.
	Validate(config *Config) error
}

// FileLoader layers defaults, a TOML file and BORROW_* environment variables.
type FileLoader struct {
	// Environ overrides os.Environ for the environment layer (tests).
	Environ func() []string
}

// NewLoader creates a new FileLoader instance.
func NewLoader() Loader {
	return &FileLoader{}
}

// Load loads configuration from the specified file path. The file must exist.
func (l *FileLoader) Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, newLayerError(ConfigNotFound, LayerFile, path, "configuration file not found", err)
		}
		return nil, newLayerError(ConfigInvalid, LayerFile, path, "failed to read configuration file", err)
	}
	return l.load(path)
}

// LoadOrDefault loads configuration or returns defaults (plus environment
// overrides) if the file doesn't exist. An empty path skips the file layer.
func (l *FileLoader) LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return l.load("")
	}
	cfg, err := l.Load(path)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return l.load("")
		}
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (l *FileLoader) Validate(config *Config) error {
	if strings.TrimSpace(config.DataDir) == "" {
		return NewValidationError("data_dir", "data directory cannot be empty")
	}
	if config.Output.Quiet && config.Output.Verbose {
		return NewValidationError("output.quiet", "quiet and verbose cannot both be set")
	}
	return nil
}

func (l *FileLoader) load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, newLayerError(ConfigInvalid, LayerDefaults, "", "failed to load defaults", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, newLayerError(ConfigInvalid, LayerFile, path, "invalid TOML syntax", err)
		}
	}

	if err := l.loadEnv(k); err != nil {
		return nil, newLayerError(ConfigInvalid, LayerEnv, "", "failed to load environment", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, newLayerError(ConfigInvalid, LayerDecode, path, "failed to decode configuration", err)
	}

	expanded, err := ExpandPath(cfg.DataDir)
	if err != nil {
		return nil, newLayerError(ConfigInvalid, LayerDecode, path, "failed to expand data_dir", err)
	}
	cfg.DataDir = expanded

	return &cfg, nil
}

// loadEnv maps BORROW_DATA_DIR to data_dir and BORROW_OUTPUT__COLOR to
// output.color: a double underscore separates sections.
func (l *FileLoader) loadEnv(k *koanf.Koanf) error {
	transform := func(s string) string {
		return envKey(s)
	}

	if l.Environ == nil {
		return k.Load(env.Provider(EnvPrefix, ".", transform), nil)
	}

	values := make(map[string]interface{})
	for _, kv := range l.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		values[envKey(name)] = value
	}
	return k.Load(confmap.Provider(values, "."), nil)
}

func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// ExpandPath expands a leading ~ and environment variables in path.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path, nil
}
