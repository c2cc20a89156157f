package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"

	"github.com/documind/documind/internal/db"
)

type Config struct {
	Port             int              `json:"port"`
	JWTSecret        string           `json:"jwt_secret"`
	JWTTTLHours      int              `json:"jwt_ttl_hours"`
	AccessPassword   string           `json:"access_password_hash"`
	CORSAllowlist    []string         `json:"cors_allowlist"`
	LogConfig        logger.LogConfig `json:"log_config"`
	Database         db.Config        `json:"database"`
	FileStore        FileStoreConfig  `json:"file_store"`
	AI               AIConfig         `json:"ai"`
	Upload           UploadConfig     `json:"upload"`
	Chat             ChatConfig       `json:"chat"`
	RateLimitSeconds int              `json:"rate_limit_seconds"`
}

type FileStoreConfig struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

type AIConfig struct {
	Provider   string                 `json:"provider"`
	Model      string                 `json:"model"`
	EmbedModel string                 `json:"embed_model"`
	Timeout    int                    `json:"timeout"`
	Data       map[string]interface{} `json:"data"`
}

type UploadConfig struct {
	MaxSizeBytes   int64 `json:"max_size_bytes"`
	RetentionHours int   `json:"retention_hours"`
}

type ChatConfig struct {
	SessionTTLMinutes int `json:"session_ttl_minutes"`
	MaxSessions       int `json:"max_sessions"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.host is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "gemini"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-2.5-flash"
	}
	if cfg.AI.Timeout == 0 {
		cfg.AI.Timeout = 120
	}
	if cfg.Upload.MaxSizeBytes == 0 {
		cfg.Upload.MaxSizeBytes = 20 * 1024 * 1024
	}
	if cfg.Upload.RetentionHours == 0 {
		cfg.Upload.RetentionHours = 7 * 24
	}
	if cfg.Chat.SessionTTLMinutes == 0 {
		cfg.Chat.SessionTTLMinutes = 60
	}
	if cfg.Chat.MaxSessions == 0 {
		cfg.Chat.MaxSessions = 1000
	}
	return &cfg, nil
}
