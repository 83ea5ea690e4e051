package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/xxxsen/common/logger"
)

const (
	EnvOpenRouterAPIKey  = "OPENROUTER_API_KEY"
	EnvOpenRouterBaseURL = "OPENROUTER_BASE_URL"

	defaultProvider = "openrouter"
	defaultModel    = "qwen/qwen-2.5-7b-instruct"
	defaultEnvFile  = ".env"
)

type Config struct {
	Port             int              `json:"port"`
	EnvFile          string           `json:"env_file"`
	CORSAllowOrigins []string         `json:"cors_allow_origins"`
	LogConfig        logger.LogConfig `json:"log_config"`
	AI               AIConfig         `json:"ai"`
	Summary          SummaryConfig    `json:"summary"`
}

type AIConfig struct {
	// Timeout is the per call limit in seconds.
	Timeout   int                `json:"timeout"`
	Providers []AIProviderConfig `json:"providers"`
}

type AIProviderConfig struct {
	Name  string                 `json:"name"`
	Model string                 `json:"model"`
	Data  map[string]interface{} `json:"data"`
}

type SummaryConfig struct {
	MaxInputChars    int `json:"max_input_chars"`
	LeakageThreshold int `json:"leakage_threshold"`
	MaxUploadMB      int `json:"max_upload_mb"`
	MaxPages         int `json:"max_pages"`
	// CacheSize enables the result cache when positive. It is off by default
	// so every request reaches the model.
	CacheSize       int `json:"cache_size"`
	CacheTTLMinutes int `json:"cache_ttl_minutes"`
}

func (c AIConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c SummaryConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1024 * 1024
}

func (c SummaryConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// Load reads the json config at path. An empty path yields the defaults. The
// openrouter secrets are then taken from the environment, seeded from the env
// file when one exists.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()
		if err := json.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	applySecrets(&cfg, os.Getenv(EnvOpenRouterAPIKey), os.Getenv(EnvOpenRouterBaseURL))
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

func applyDefaults(cfg *Config) {
	if cfg.Port == 0 {
		cfg.Port = 8501
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.LogConfig.File == "" {
		cfg.LogConfig.Console = true
	}
	if cfg.AI.Timeout == 0 {
		cfg.AI.Timeout = 60
	}
	if len(cfg.AI.Providers) == 0 {
		cfg.AI.Providers = []AIProviderConfig{{Name: defaultProvider}}
	}
	for i := range cfg.AI.Providers {
		p := &cfg.AI.Providers[i]
		p.Name = strings.ToLower(strings.TrimSpace(p.Name))
		if p.Model == "" && p.Name == defaultProvider {
			p.Model = defaultModel
		}
		if p.Data == nil {
			p.Data = map[string]interface{}{}
		}
	}
	if cfg.Summary.MaxInputChars == 0 {
		cfg.Summary.MaxInputChars = 6000
	}
	if cfg.Summary.LeakageThreshold == 0 {
		cfg.Summary.LeakageThreshold = 5
	}
	if cfg.Summary.MaxUploadMB == 0 {
		cfg.Summary.MaxUploadMB = 20
	}
	if cfg.Summary.CacheTTLMinutes == 0 {
		cfg.Summary.CacheTTLMinutes = 120
	}
}

// applySecrets lets the environment override the openrouter credentials.
func applySecrets(cfg *Config, apiKey, baseURL string) {
	apiKey = strings.TrimSpace(apiKey)
	baseURL = strings.TrimSpace(baseURL)
	for i := range cfg.AI.Providers {
		p := &cfg.AI.Providers[i]
		if p.Name != defaultProvider {
			continue
		}
		if apiKey != "" {
			p.Data["api_key"] = apiKey
		}
		if baseURL != "" {
			p.Data["base_url"] = baseURL
		}
	}
}

func validate(cfg *Config) error {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("port out of range: %d", cfg.Port)
	}
	if cfg.AI.Timeout < 0 {
		return fmt.Errorf("ai.timeout must not be negative")
	}
	for i, p := range cfg.AI.Providers {
		if p.Name == "" {
			return fmt.Errorf("ai.providers[%d].name is required", i)
		}
		if p.Model == "" {
			return fmt.Errorf("ai.providers[%d].model is required", i)
		}
	}
	if cfg.Summary.MaxInputChars < 2 {
		return fmt.Errorf("summary.max_input_chars must be at least 2")
	}
	if cfg.Summary.LeakageThreshold < 1 {
		return fmt.Errorf("summary.leakage_threshold must be positive")
	}
	if cfg.Summary.MaxUploadMB < 1 {
		return fmt.Errorf("summary.max_upload_mb must be positive")
	}
	if cfg.Summary.CacheSize < 0 {
		return fmt.Errorf("summary.cache_size must not be negative")
	}
	if cfg.Summary.MaxPages < 0 {
		return fmt.Errorf("summary.max_pages must not be negative")
	}
	return nil
}
