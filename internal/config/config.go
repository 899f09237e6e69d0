package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Photos PhotosConfig
	Log    LogConfig
	Worker WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
	// CORSOrigins - список разрешённых origin через запятую, "*" по умолчанию
	CORSOrigins string
}

type PhotosConfig struct {
	// Dir - корень дерева директорий с фотографиями; единственный
	// внешний параметр, который нужен сканеру.
	Dir string
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	// Enabled включает фоновое периодическое пересканирование директории
	Enabled        bool
	RescanInterval time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        viper.GetString("API_HOST"),
			Port:        viper.GetInt("API_PORT"),
			Env:         viper.GetString("API_ENV"),
			CORSOrigins: viper.GetString("CORS_ALLOWED_ORIGINS"),
		},
		Photos: PhotosConfig{
			Dir: viper.GetString("PHOTOS_DIR"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:        viper.GetBool("WORKER_ENABLED"),
			RescanInterval: time.Duration(viper.GetInt("WORKER_RESCAN_INTERVAL")) * time.Second,
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.CORSOrigins == "" {
		cfg.Server.CORSOrigins = "*"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Worker.RescanInterval == 0 {
		cfg.Worker.RescanInterval = 5 * time.Minute
	}

	if cfg.Photos.Dir == "" {
		return nil, fmt.Errorf("PHOTOS_DIR is required")
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
