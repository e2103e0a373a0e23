package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lovekit-dev/lovekit/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized keys.
const (
	KeyWorkspaceRoot = "workspaceRoot"
	KeyTemplateName  = "templateName"
	KeyEditor        = "editor"
	KeyLogLevel      = "logLevel"
)

// Defaults for keys that have one.
var defaults = map[string]string{
	KeyTemplateName: "default",
	KeyEditor:       "code",
	KeyLogLevel:     "warn",
}

// Keys returns the recognized keys in sorted order.
func Keys() []string {
	keys := []string{KeyWorkspaceRoot, KeyTemplateName, KeyEditor, KeyLogLevel}
	sort.Strings(keys)
	return keys
}

// IsKnown reports whether key is a recognized setting (case-insensitive).
func IsKnown(key string) bool {
	for _, k := range Keys() {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

// Provider is the key-value settings capability the core depends on.
type Provider interface {
	// Get returns the value of key and whether it is set to a non-empty value.
	Get(key string) (string, bool)
	// Set stores value under key.
	Set(key, value string) error
}

// Dir returns the path to the config directory (~/.lovekit/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the config file path. LOVEKIT_CONFIG overrides the
// default ~/.lovekit/config.yaml.
func FilePath() string {
	if v := os.Getenv(branding.EnvVar("CONFIG")); v != "" {
		return v
	}
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Store is a Provider backed by a YAML file and the environment.
type Store struct {
	mu   sync.Mutex
	v    *viper.Viper
	path string
}

// Open returns a Store reading path ("" means FilePath()). A missing file
// is not an error; a malformed one is.
func Open(path string) (*Store, error) {
	s := newStore(path)
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenUnread returns a Store for path without reading the file. Get serves
// defaults and the environment until the file parses again, and the first
// Set rewrites the file. It lets a broken file be repaired.
func OpenUnread(path string) *Store {
	return newStore(path)
}

func newStore(path string) *Store {
	if path == "" {
		path = FilePath()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return &Store{v: v, path: path}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string { return s.path }

// Get re-reads the config file and returns the value of key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Keep the last good values if the file became unreadable.
	_ = s.reload()
	val := s.v.GetString(key)
	return val, val != ""
}

// Set writes a key-value pair and saves the config file.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", filepath.Dir(s.path), err)
	}

	s.v.Set(key, value)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func (s *Store) reload() error {
	if err := s.v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", s.path, err)
	}
	return nil
}

// Memory is an in-process Provider, used by tests and embedders.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory returns a Memory provider seeded with values. Keys are
// case-insensitive, like the file-backed store.
func NewMemory(values map[string]string) *Memory {
	m := &Memory{values: make(map[string]string)}
	for k, v := range defaults {
		m.values[strings.ToLower(k)] = v
	}
	for k, v := range values {
		m.values[strings.ToLower(k)] = v
	}
	return m
}

// Get returns the value of key.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.values[strings.ToLower(key)]
	return v, v != ""
}

// Set stores value under key.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[strings.ToLower(key)] = value
	return nil
}
