package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию сервера
type Config struct {
	// Настройки сервера
	Port     string `envconfig:"SERVER_PORT" default:"8000"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Настройки AI-провайдера
	AIProvider string `envconfig:"AI_PROVIDER" default:"deepseek"`
	AIAPIKey   string `envconfig:"AI_API_KEY"`
	AIModel    string `envconfig:"AI_MODEL"`

	// Настройки PostgreSQL
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"dnd_db"`
	DBSSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`

	// Разрешенные CORS origins через запятую
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}
