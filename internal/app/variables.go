package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/borrowdev/borrow/internal/logging"
)

// FilePrefix marks a value that is read from a file.
const FilePrefix = "@file:"

// ParseVarFlags parses KEY=VALUE pairs from --var flags. Later pairs win.
func ParseVarFlags(pairs []string) (map[string]string, error) {
	vars := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, NewVariableLoadError(
				fmt.Sprintf("invalid variable %q, expected KEY=VALUE", pair),
				nil,
			)
		}
		vars[key] = value
	}
	return vars, nil
}

// LoadVarsFile reads a YAML mapping of placeholder values. Scalars are
// converted to strings; nested mappings and sequences are rejected.
func LoadVarsFile(path string) (map[string]string, error) {
	logger := logging.Logger("app")
	logger.Debug().Str("path", path).Msg("loading variables file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewVariableLoadError(fmt.Sprintf("failed to read variables file %s", path), err)
	}

	raw := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, NewVariableLoadError(fmt.Sprintf("failed to parse variables file %s", path), err)
	}

	vars := make(map[string]string, len(raw))
	for key, value := range raw {
		str, err := valueToString(value)
		if err != nil {
			return nil, NewVariableLoadError(fmt.Sprintf("variable %s in %s", key, path), err)
		}
		vars[key] = str
	}

	logger.Debug().Int("count", len(vars)).Msg("variables file loaded")
	return vars, nil
}

// ResolveFileValues replaces every "@file:<path>" value with the content of
// that file. Paths are relative to baseDir and must stay inside it.
func ResolveFileValues(vars map[string]string, baseDir string) (map[string]string, error) {
	logger := logging.Logger("app")

	resolved := make(map[string]string, len(vars))
	for name, value := range vars {
		if !strings.HasPrefix(value, FilePrefix) {
			resolved[name] = value
			continue
		}

		filename := strings.TrimSpace(strings.TrimPrefix(value, FilePrefix))
		if filename == "" {
			return nil, NewVariableLoadError(
				fmt.Sprintf("variable %s: %s prefix without filename", name, FilePrefix),
				nil,
			)
		}

		absBase, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, NewVariableLoadError(fmt.Sprintf("variable %s: failed to resolve base directory", name), err)
		}
		absFile, err := filepath.Abs(filepath.Join(baseDir, filename))
		if err != nil {
			return nil, NewVariableLoadError(fmt.Sprintf("variable %s: failed to resolve file path", name), err)
		}
		rel, err := filepath.Rel(absBase, absFile)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, NewVariableLoadError(
				fmt.Sprintf("variable %s: %s path must be within %s", name, FilePrefix, absBase),
				nil,
			)
		}

		content, err := os.ReadFile(absFile)
		if err != nil {
			return nil, NewVariableLoadError(
				fmt.Sprintf("variable %s: failed to read %s%s", name, FilePrefix, filename),
				err,
			)
		}

		logger.Debug().Str("variable", name).Int("bytes", len(content)).Msg("value loaded from file")
		resolved[name] = string(content)
	}

	return resolved, nil
}

// valueToString converts a YAML scalar to its placeholder string form.
func valueToString(val interface{}) (string, error) {
	switch v := val.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported value type %T, expected a scalar", val)
	}
}
