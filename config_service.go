package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"slidecraft/config"
)

// ConfigProvider defines the config read interface.
type ConfigProvider interface {
	GetConfig() (config.Config, error)
	GetEffectiveConfig() (config.Config, error)
}

// ConfigPersister defines the config persistence interface.
type ConfigPersister interface {
	SaveConfig(cfg config.Config) error
}

// ConfigNotifier defines the config change notification interface.
type ConfigNotifier interface {
	OnConfigChanged(callback func(config.Config))
}

// ConfigService encapsulates all configuration management logic.
// Implements ConfigProvider, ConfigPersister and ConfigNotifier.
type ConfigService struct {
	storageDir string
	logger     func(string)
	callbacks  []func(config.Config)
	mu         sync.RWMutex
}

// NewConfigService creates a new ConfigService instance
func NewConfigService(logger func(string)) *ConfigService {
	return &ConfigService{
		logger:    logger,
		callbacks: make([]func(config.Config), 0),
	}
}

// Name returns the service name
func (cs *ConfigService) Name() string {
	return "config"
}

// Initialize ensures the storage directory exists
func (cs *ConfigService) Initialize(ctx context.Context) error {
	dir, err := cs.GetStorageDir()
	if err != nil {
		return WrapError("config", "Initialize", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return WrapError("config", "Initialize", WrapOperationError("create storage dir", err))
	}
	cs.log(fmt.Sprintf("ConfigService initialized, storage dir: %s", dir))
	return nil
}

// Shutdown closes the config service (no-op)
func (cs *ConfigService) Shutdown() error {
	return nil
}

// GetStorageDir returns the storage directory path (~/.slidecraft)
func (cs *ConfigService) GetStorageDir() (string, error) {
	cs.mu.RLock()
	sd := cs.storageDir
	cs.mu.RUnlock()

	if sd != "" {
		return sd, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", WrapOperationError("get home directory", err)
	}
	dir := filepath.Join(home, ".slidecraft")

	cs.mu.Lock()
	cs.storageDir = dir
	cs.mu.Unlock()
	return dir, nil
}

// SetStorageDir overrides the storage directory. Used by tests.
func (cs *ConfigService) SetStorageDir(dir string) {
	cs.mu.Lock()
	cs.storageDir = dir
	cs.mu.Unlock()
}

func (cs *ConfigService) configPath() (string, error) {
	dir, err := cs.GetStorageDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfig reads the config file from disk. A missing file yields the
// zero config with defaults applied by GetEffectiveConfig, not an error.
func (cs *ConfigService) GetConfig() (config.Config, error) {
	path, err := cs.configPath()
	if err != nil {
		return config.Config{}, WrapError("config", "GetConfig", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return config.Config{}, WrapError("config", "GetConfig", WrapOperationError("read config file", err))
	}

	var cfg config.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return config.Config{}, WrapError("config", "GetConfig", WrapOperationError("parse config file", err))
	}
	return cfg, nil
}

// GetEffectiveConfig returns the stored config with defaults applied.
func (cs *ConfigService) GetEffectiveConfig() (config.Config, error) {
	cfg, err := cs.GetConfig()
	if err != nil {
		return config.Config{}, err
	}
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "OpenAI"
	}
	if cfg.ModelName == "" {
		cfg.ModelName = "gpt-4o-mini"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 4096
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.ExportTimeoutSeconds <= 0 {
		cfg.ExportTimeoutSeconds = config.DefaultExportTimeoutSeconds
	}
	if cfg.DataCacheDir == "" {
		dir, err := cs.GetStorageDir()
		if err != nil {
			return config.Config{}, WrapError("config", "GetEffectiveConfig", err)
		}
		cfg.DataCacheDir = filepath.Join(dir, "cache")
	}
	return cfg, nil
}

// SaveConfig persists the config to disk atomically and notifies listeners.
func (cs *ConfigService) SaveConfig(cfg config.Config) error {
	path, err := cs.configPath()
	if err != nil {
		return WrapError("config", "SaveConfig", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return WrapError("config", "SaveConfig", WrapOperationError("create storage dir", err))
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return WrapError("config", "SaveConfig", WrapOperationError("marshal config", err))
	}

	// Write to a temporary file first, then rename for atomicity
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return WrapError("config", "SaveConfig", WrapOperationError("write config temp file", err))
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return WrapError("config", "SaveConfig", WrapOperationError("rename config file", err))
	}

	cs.log("Config saved")
	cs.notify(cfg)
	return nil
}

// OnConfigChanged registers a callback invoked after every successful save.
func (cs *ConfigService) OnConfigChanged(callback func(config.Config)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.callbacks = append(cs.callbacks, callback)
}

func (cs *ConfigService) notify(cfg config.Config) {
	cs.mu.RLock()
	callbacks := make([]func(config.Config), len(cs.callbacks))
	copy(callbacks, cs.callbacks)
	cs.mu.RUnlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (cs *ConfigService) log(msg string) {
	if cs.logger != nil {
		cs.logger(msg)
	}
}

func defaultConfig() config.Config {
	return config.Config{
		LLMProvider:          "OpenAI",
		ModelName:            "gpt-4o-mini",
		MaxTokens:            4096,
		Language:             "en",
		ExportTimeoutSeconds: config.DefaultExportTimeoutSeconds,
		KeepHistory:          true,
	}
}
