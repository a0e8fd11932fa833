package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mlubs/IM-Intel/internal/domain"
)

// Config reúne a configuração do serviço, lida de variáveis de ambiente.
type Config struct {
	Server  ServerConfig
	Dataset DatasetConfig
	Log     LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port           string
	GinMode        string
	MaxUploadBytes int64
}

// DatasetConfig descreve a origem do arquivo database e a coluna de data.
type DatasetConfig struct {
	Source       string
	DateColumn   string
	FetchTimeout time.Duration
	LoadSample   bool
}

// LogConfig holds logger settings
type LogConfig struct {
	Development bool
}

// Load lê a configuração do ambiente aplicando os valores padrão.
func Load() (*Config, error) {
	maxUploadMB, err := getEnvInt("MAX_UPLOAD_MB", 32)
	if err != nil {
		return nil, err
	}
	timeout, err := getEnvDuration("FETCH_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	loadSample, err := getEnvBool("LOAD_SAMPLE", true)
	if err != nil {
		return nil, err
	}
	development, err := getEnvBool("LOG_DEVELOPMENT", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8084"),
			GinMode:        getEnvOrDefault("GIN_MODE", "release"),
			MaxUploadBytes: int64(maxUploadMB) << 20,
		},
		Dataset: DatasetConfig{
			Source:       getEnvOrDefault("DATASET_SOURCE", "./database.xlsx"),
			DateColumn:   getEnvOrDefault("DATE_COLUMN", domain.DefaultDateColumn),
			FetchTimeout: timeout,
			LoadSample:   loadSample,
		},
		Log: LogConfig{Development: development},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		return fmt.Errorf("PORT inválida: %q", cfg.Server.Port)
	}
	if cfg.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB deve ser positivo")
	}
	if cfg.Dataset.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT deve ser positivo")
	}
	switch cfg.Server.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE inválido: %q", cfg.Server.GinMode)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s inválido: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s inválido: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s inválido: %w", key, err)
	}
	return d, nil
}
