package file

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/patternpath/pagepatch/internal/core/domain"
	"github.com/patternpath/pagepatch/internal/core/ports/driven"
)

// DefaultConfigFile is looked up in the working directory when no path is given.
const DefaultConfigFile = "pagepatch.toml"

// Configuration keys.
const (
	KeyCorpusDir        = "corpus_dir"
	KeyDataDir          = "data_dir"
	KeyExclusions       = "exclusions"
	KeyConcurrency      = "concurrency"
	KeyDataImportPrefix = "data_import_prefix"
	KeyAssetsPrefix     = "assets_prefix"
	KeySteps            = "steps"
	KeyTemplate         = "generate.template"
	KeyDescriptors      = "generate.descriptors"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewConfigStore creates a TOML-based config store for path.
// If path is empty, DefaultConfigFile is used. A missing file is not an
// error; the store starts empty and Resolve returns the defaults.
func NewConfigStore(path string) (*ConfigStore, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	s := &ConfigStore{
		filePath: path,
		data:     make(map[string]any),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}

	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}

	// TOML integers are parsed as int64
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// GetStringSlice retrieves a string slice configuration value.
// A single string is treated as a one-element list.
func (s *ConfigStore) GetStringSlice(key string) []string {
	val, ok := s.Get(key)
	if !ok {
		return nil
	}

	// TOML arrays are parsed as []any
	switch v := val.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return nil
	}
}

// Set stores a configuration value in memory.
func (s *ConfigStore) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := toml.Marshal(unflattenMap(s.data))
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0644)
}

// Load reads configuration from the TOML file.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.data = make(map[string]any)
			return nil
		}
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}
	if loaded == nil {
		loaded = make(map[string]any)
	}

	s.data = flattenMap(loaded, "")
	return nil
}

// Resolve layers the file's values over domain.DefaultConfig.
func (s *ConfigStore) Resolve() (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if v := s.GetString(KeyCorpusDir); v != "" {
		cfg.CorpusDir = v
	}
	if v := s.GetString(KeyDataDir); v != "" {
		cfg.DataDir = v
	}
	if _, ok := s.Get(KeyExclusions); ok {
		cfg.Exclusions = s.GetStringSlice(KeyExclusions)
	}
	if _, ok := s.Get(KeyConcurrency); ok {
		cfg.Concurrency = s.GetInt(KeyConcurrency)
		if cfg.Concurrency < 1 {
			return cfg, fmt.Errorf("%w: %s must be at least 1", domain.ErrInvalidInput, KeyConcurrency)
		}
	}
	if v := s.GetString(KeyDataImportPrefix); v != "" {
		cfg.DataImportPrefix = v
	}
	if v := s.GetString(KeyAssetsPrefix); v != "" {
		cfg.AssetsPrefix = v
	}
	if names := s.GetStringSlice(KeySteps); len(names) > 0 {
		steps, err := domain.ParseTransitions(names)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", KeySteps, err)
		}
		cfg.Steps = steps
	}
	if v := s.GetString(KeyTemplate); v != "" {
		cfg.TemplateName = v
	}
	cfg.DescriptorsPath = s.GetString(KeyDescriptors)

	return cfg, nil
}

// Store sets every key from cfg. Call Save to persist.
func (s *ConfigStore) Store(cfg domain.Config) {
	steps := make([]string, len(cfg.Steps))
	for i, t := range cfg.Steps {
		steps[i] = string(t)
	}
	exclusions := cfg.Exclusions
	if exclusions == nil {
		exclusions = []string{}
	}

	s.Set(KeyCorpusDir, cfg.CorpusDir)
	s.Set(KeyDataDir, cfg.DataDir)
	s.Set(KeyExclusions, exclusions)
	s.Set(KeyConcurrency, cfg.Concurrency)
	s.Set(KeyDataImportPrefix, cfg.DataImportPrefix)
	s.Set(KeyAssetsPrefix, cfg.AssetsPrefix)
	s.Set(KeySteps, steps)
	s.Set(KeyTemplate, cfg.TemplateName)
	if cfg.DescriptorsPath != "" {
		s.Set(KeyDescriptors, cfg.DescriptorsPath)
	}
}

// WriteConfig writes cfg as a new configuration file at path.
func WriteConfig(path string, cfg domain.Config) error {
	s := &ConfigStore{filePath: path, data: make(map[string]any)}
	s.Store(cfg)
	return s.Save()
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}

// unflattenMap is the inverse of flattenMap, so saved files keep their tables.
func unflattenMap(m map[string]any) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		parts := strings.Split(key, ".")
		node := result
		for _, part := range parts[:len(parts)-1] {
			next, ok := node[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				node[part] = next
			}
			node = next
		}
		node[parts[len(parts)-1]] = value
	}

	return result
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
