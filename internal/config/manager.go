package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults mirror the engine CLI's own defaults so a bare config file and a
// bare engine invocation agree.
const (
	DefaultAPIURL     = "https://api.groq.com/openai/v1/chat/completions"
	DefaultModel      = "llama-3.3-70b-versatile"
	DefaultDBPath     = "./data/chroma_db"
	DefaultCollection = "code_chunks"
	DefaultEngineBin  = "devcopilot-engine"
	DefaultTopK       = 5
)

// Config holds the user's persistent preferences.
type Config struct {
	APIKey         string   `json:"api_key,omitempty"`     // Lowest-priority key source; see secrets
	APIURL         string   `json:"api_url,omitempty"`     // LLM API endpoint passed to the engine
	Model          string   `json:"model,omitempty"`       // LLM model name
	DBPath         string   `json:"db_path,omitempty"`     // Vector store location
	Collection     string   `json:"collection,omitempty"`  // Vector store collection name
	TopK           int      `json:"top_k,omitempty"`       // Default number of search results
	EngineBin      string   `json:"engine_bin,omitempty"`  // Engine executable
	EngineArgs     []string `json:"engine_args,omitempty"` // Leading args, e.g. ["cli.py"] for python3
	AutoIndex      bool     `json:"auto_index"`            // Reindex automatically on file changes
	TimeoutSeconds int      `json:"timeout_seconds,omitempty"`
}

// Manager handles loading and saving the configuration.
type Manager struct {
	configDir string
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user config dir: %w", err)
	}

	return &Manager{
		configDir: filepath.Join(configDir, "devcopilot"),
	}, nil
}

// GetConfigPath returns the absolute path to the config.json file.
func (m *Manager) GetConfigPath() string {
	return filepath.Join(m.configDir, "config.json")
}

// Load reads the configuration from disk and fills in defaults.
// If the file does not exist, it returns a default Config and no error.
func (m *Manager) Load() (*Config, error) {
	path := m.GetConfigPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := &Config{}
		cfg.applyDefaults()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := validate(data); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config json: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes the configuration to disk with restricted permissions (0600),
// since it may carry an API key.
func (m *Manager) Save(cfg *Config) error {
	if err := os.MkdirAll(m.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.GetConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Exists checks if the configuration file has been created.
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.GetConfigPath())
	return !os.IsNotExist(err)
}

func (c *Config) applyDefaults() {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.DBPath == "" {
		c.DBPath = DefaultDBPath
	}
	if c.Collection == "" {
		c.Collection = DefaultCollection
	}
	if c.EngineBin == "" {
		c.EngineBin = DefaultEngineBin
	}
	if c.TopK <= 0 {
		c.TopK = DefaultTopK
	}
}
