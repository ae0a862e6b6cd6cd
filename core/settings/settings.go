package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DefaultFileName is the settings file created in the home directory.
const DefaultFileName = "astralkeys_config.json"

const keyFilePath = "file_path"

// Settings is what survives a restart.
type Settings struct {
	FilePath string `json:"file_path" mapstructure:"file_path"`
}

// Store reads and writes Settings as JSON.
type Store struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

// NewStore creates a store for cfg.Path, falling back to the home directory.
func NewStore(cfg Config, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	path := cfg.Path
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path, logger: logger}
}

// DefaultPath returns ~/astralkeys_config.json, or the bare file name when
// the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(home, DefaultFileName)
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the saved settings. A missing or unreadable file yields empty settings.
func (s *Store) Load() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err != nil {
		return Settings{}
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		s.logger.Debug("Ignoring unreadable settings", zap.String("path", s.path), zap.Error(err))
		return Settings{}
	}

	return Settings{FilePath: v.GetString(keyFilePath)}
}

// Save writes the settings, replacing the file.
func (s *Store) Save(st Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := viper.New()
	v.SetConfigType("json")
	v.Set(keyFilePath, st.FilePath)

	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
