package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/galaplate/schema/env"
	"gopkg.in/yaml.v3"
)

// envPattern matches ${VAR} and ${VAR:default}.
var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::([^}]*))?\}`)

// Loader loads configuration files from a directory
type Loader struct {
	configPath string
	lookup     func(string) string
}

// NewLoader creates a loader resolving ${VAR} placeholders through env.Get.
func NewLoader(configPath string) *Loader {
	return &Loader{configPath: configPath, lookup: env.Get}
}

// WithLookup replaces the variable lookup, mainly for tests.
func (l *Loader) WithLookup(lookup func(string) string) *Loader {
	l.lookup = lookup
	return l
}

// Load reads every *.yaml / *.yml file in the directory; each file becomes a
// top-level key named after the file.
func (l *Loader) Load() (map[string]any, error) {
	config := make(map[string]any)

	files, err := os.ReadDir(l.configPath)
	if err != nil {
		return config, fmt.Errorf("failed to read config directory: %w", err)
	}

	for _, file := range files {
		ext := filepath.Ext(file.Name())
		if file.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		filename := filepath.Join(l.configPath, file.Name())
		data, err := l.LoadFile(filename)
		if err != nil {
			return config, fmt.Errorf("failed to load config file %s: %w", filename, err)
		}
		config[strings.TrimSuffix(file.Name(), ext)] = data
	}

	return config, nil
}

// LoadFile reads one YAML file after substituting environment placeholders.
func (l *Loader) LoadFile(filename string) (any, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var data any
	if err := yaml.Unmarshal([]byte(l.expand(string(content))), &data); err != nil {
		return nil, err
	}
	return normalize(data), nil
}

func (l *Loader) expand(content string) string {
	return envPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envPattern.FindStringSubmatch(match)
		if value := l.lookup(groups[1]); value != "" {
			return value
		}
		return groups[2]
	})
}

// normalize turns map[any]any nodes into map[string]any so dot lookups work.
func normalize(data any) any {
	switch v := data.(type) {
	case map[any]any:
		result := make(map[string]any, len(v))
		for key, val := range v {
			result[fmt.Sprintf("%v", key)] = normalize(val)
		}
		return result
	case map[string]any:
		for key, val := range v {
			v[key] = normalize(val)
		}
		return v
	case []any:
		for i, val := range v {
			v[i] = normalize(val)
		}
		return v
	default:
		return v
	}
}
