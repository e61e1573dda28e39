package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Store      StoreConfig      `yaml:"store"`
	Archive    ArchiveConfig    `yaml:"archive"`
	SharePoint SharePointConfig `yaml:"sharepoint"`
	Expiry     ExpiryConfig     `yaml:"expiry"`
	Upload     UploadConfig     `yaml:"upload"`
	Log        LogConfig        `yaml:"log"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// StoreConfig points at the external contract store (the service of record
// for contract documents).
type StoreConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ArchiveConfig configures the object bucket that keeps a mirror copy of
// every uploaded document.
type ArchiveConfig struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	Bucket     string `yaml:"bucket"`
	UseSSL     bool   `yaml:"use_ssl"`
	ExpireDays int    `yaml:"expire_days"`
}

// SharePointConfig configures the document-sync collaborator (Microsoft
// Graph client-credentials flow).
type SharePointConfig struct {
	TenantID     string `yaml:"tenant_id"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	SiteID       string `yaml:"site_id"`
	GraphBaseURL string `yaml:"graph_base_url"`
	// TokenURL overrides the default Microsoft login endpoint.
	TokenURL string `yaml:"token_url"`
}

type ExpiryConfig struct {
	WindowDays int `yaml:"window_days"`
}

type UploadConfig struct {
	MaxFileSizeMB int `yaml:"max_file_size_mb"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Store.TimeoutSeconds == 0 {
		cfg.Store.TimeoutSeconds = 60
	}
	if cfg.Archive.ExpireDays == 0 {
		cfg.Archive.ExpireDays = 7
	}
	if cfg.Expiry.WindowDays == 0 {
		cfg.Expiry.WindowDays = 30
	}
	if cfg.Upload.MaxFileSizeMB == 0 {
		cfg.Upload.MaxFileSizeMB = 10
	}
	if cfg.SharePoint.GraphBaseURL == "" {
		cfg.SharePoint.GraphBaseURL = "https://graph.microsoft.com/v1.0"
	}

	return &cfg, nil
}
