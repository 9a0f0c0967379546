package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Storage    StorageConfig    `yaml:"storage"`
	JWT        JWTConfig        `yaml:"jwt"`
	Admin      AdminConfig      `yaml:"admin"`
	Pagination PaginationConfig `yaml:"pagination"`
	LogLevel   string           `yaml:"log_level"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database"`
	Charset      string `yaml:"charset"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type StorageConfig struct {
	B2KeyID          string   `yaml:"b2_key_id"`
	B2ApplicationKey string   `yaml:"b2_application_key"`
	Bucket           string   `yaml:"bucket"`
	MaxFileSize      int64    `yaml:"max_file_size"`
	MaxUploadFiles   int      `yaml:"max_upload_files"`
	AllowedMimeTypes []string `yaml:"allowed_mime_types"`
	SignedURLTTL     int      `yaml:"signed_url_ttl"`
}

type JWTConfig struct {
	Secret      string `yaml:"secret"`
	ExpireHours int    `yaml:"expire_hours"`
	Issuer      string `yaml:"issuer"`
}

type AdminConfig struct {
	Secret string `yaml:"secret"`
}

type PaginationConfig struct {
	ProfileFileLimit int `yaml:"profile_file_limit"`
	AdminLogLimit    int `yaml:"admin_log_limit"`
}

var AppConfig *Config

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	AppConfig = &cfg
	return &cfg, nil
}

// Secrets come from the environment in deployment; the yaml values are
// development fallbacks only.
func applyEnvOverrides(cfg *Config) {
	cfg.JWT.Secret = getEnv("JWT_SECRET", cfg.JWT.Secret)
	cfg.Admin.Secret = getEnv("ADMIN_SECRET_KEY", cfg.Admin.Secret)
	cfg.Storage.B2KeyID = getEnv("B2_KEY_ID", cfg.Storage.B2KeyID)
	cfg.Storage.B2ApplicationKey = getEnv("B2_APPLICATION_KEY", cfg.Storage.B2ApplicationKey)
	cfg.Storage.Bucket = getEnv("B2_BUCKET_NAME", cfg.Storage.Bucket)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	if port := getEnv("PORT", ""); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.MaxFileSize == 0 {
		cfg.Storage.MaxFileSize = 15 * 1024 * 1024
	}
	if cfg.Storage.MaxUploadFiles == 0 {
		cfg.Storage.MaxUploadFiles = 5
	}
	if cfg.Storage.SignedURLTTL == 0 {
		cfg.Storage.SignedURLTTL = 300
	}
	if cfg.JWT.ExpireHours == 0 {
		cfg.JWT.ExpireHours = 24
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "drivex"
	}
	if cfg.Pagination.ProfileFileLimit == 0 {
		cfg.Pagination.ProfileFileLimit = 25
	}
	if cfg.Pagination.AdminLogLimit == 0 {
		cfg.Pagination.AdminLogLimit = 50
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
