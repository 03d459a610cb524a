package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/vladimiradmaev/recipe-planner/internal/logger"
	"gopkg.in/yaml.v3"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	HTTPPort      string       `yaml:"httpPort"`
	JWTSecret     string       `yaml:"jwtSecret"`
	Storage       string       `yaml:"storage"`
	TelegramToken string       `yaml:"telegramToken"`
	DB            DBConfig     `yaml:"db"`
	Redis         RedisConfig  `yaml:"redis"`
	Logger        LoggerConfig `yaml:"logger"`
}

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	SSLMode  string `yaml:"sslMode"`
}

// DSN renders the libpq connection string for the postgres driver
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
}

type LoggerConfig struct {
	Level      string `yaml:"level"`
	OutputPath string `yaml:"output"`
	Format     string `yaml:"format"`
}

// LoggerSettings converts the textual config into logger.Config
func (c LoggerConfig) LoggerSettings() logger.Config {
	return logger.Config{
		Level:      logger.ParseLevel(c.Level),
		OutputPath: c.OutputPath,
		Format:     c.Format,
	}
}

func defaults() Config {
	return Config{
		HTTPPort: "8080",
		Storage:  StoragePostgres,
		DB: DBConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			DBName:   "recipe_planner",
			SSLMode:  "disable",
		},
		Logger: LoggerConfig{
			Level:      "info",
			OutputPath: "stdout",
			Format:     "json",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named by
// CONFIG_FILE, and environment variables, in that order of precedence.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	overrides := map[string]*string{
		"HTTP_PORT":          &cfg.HTTPPort,
		"JWT_SECRET":         &cfg.JWTSecret,
		"STORAGE":            &cfg.Storage,
		"TELEGRAM_BOT_TOKEN": &cfg.TelegramToken,
		"DB_HOST":            &cfg.DB.Host,
		"DB_PORT":            &cfg.DB.Port,
		"DB_USER":            &cfg.DB.User,
		"DB_PASSWORD":        &cfg.DB.Password,
		"DB_NAME":            &cfg.DB.DBName,
		"DB_SSLMODE":         &cfg.DB.SSLMode,
		"REDIS_ADDR":         &cfg.Redis.Addr,
		"REDIS_PASSWORD":     &cfg.Redis.Password,
		"LOG_LEVEL":          &cfg.Logger.Level,
		"LOG_OUTPUT":         &cfg.Logger.OutputPath,
		"LOG_FORMAT":         &cfg.Logger.Format,
	}
	for key, dst := range overrides {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
}

// Validate reports every problem with the configuration at once
func (c *Config) Validate() error {
	var errs []error
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("HTTP_PORT is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	switch c.Storage {
	case StoragePostgres:
		if c.DB.Host == "" || c.DB.DBName == "" {
			errs = append(errs, errors.New("DB_HOST and DB_NAME are required for postgres storage"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage))
	}
	switch c.Logger.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Logger.Format))
	}
	return errors.Join(errs...)
}
