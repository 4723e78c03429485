package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	App      AppConfig      `yaml:"app"`
}

type ServerConfig struct {
	Port     int    `yaml:"port"`
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AuthConfig struct {
	SecretKey string `yaml:"secret_key"`
}

type AppConfig struct {
	GroupWindowSeconds   int `yaml:"group_window_seconds"`
	MaxGroupSize         int `yaml:"max_group_size"`
	SweepIntervalSeconds int `yaml:"sweep_interval_seconds"`
	CacheUnreadTTL       int `yaml:"cache_unread_ttl"` // seconds
	CleanupDays          int `yaml:"cleanup_days"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:     8004,
			Env:      "dev",
			LogLevel: "debug",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
			DB:   0,
		},
		App: AppConfig{
			GroupWindowSeconds:   300, // 5 minutes
			MaxGroupSize:         10,
			SweepIntervalSeconds: 60,
			CacheUnreadTTL:       300, // 5 minutes
			CleanupDays:          30,
		},
	}

	// Load from yaml file if exists
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// Override with environment variables
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if env := os.Getenv("ENV"); env != "" {
		cfg.Server.Env = env
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.Server.LogLevel = logLevel
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.URL = dbURL
	}
	if redisHost := os.Getenv("REDIS_HOST"); redisHost != "" {
		cfg.Redis.Host = redisHost
	}
	if redisPort := os.Getenv("REDIS_PORT"); redisPort != "" {
		if p, err := strconv.Atoi(redisPort); err == nil {
			cfg.Redis.Port = p
		}
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		cfg.Redis.Password = redisPassword
	}
	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if d, err := strconv.Atoi(redisDB); err == nil {
			cfg.Redis.DB = d
		}
	}
	if secretKey := os.Getenv("SECRET_KEY"); secretKey != "" {
		cfg.Auth.SecretKey = secretKey
	}
	if window := os.Getenv("GROUP_WINDOW_SECONDS"); window != "" {
		if w, err := strconv.Atoi(window); err == nil {
			cfg.App.GroupWindowSeconds = w
		}
	}
	if size := os.Getenv("MAX_GROUP_SIZE"); size != "" {
		if s, err := strconv.Atoi(size); err == nil {
			cfg.App.MaxGroupSize = s
		}
	}
	if days := os.Getenv("CLEANUP_DAYS"); days != "" {
		if d, err := strconv.Atoi(days); err == nil {
			cfg.App.CleanupDays = d
		}
	}

	return cfg, nil
}
