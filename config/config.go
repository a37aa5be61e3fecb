package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/yourusername/promemo/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	Port            string
	DatabasePath    string
	AnthropicAPIKey string
	AnthropicModel  string
}

func LoadConfig() (*Config, error) {
	godotenv.Load()

	return &Config{
		Port:            os.Getenv("PORT"),
		DatabasePath:    getEnvOrDefault("DATABASE_PATH", "promemo.db"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  getEnvOrDefault("ANTHROPIC_MODEL", "claude-3-7-sonnet-latest"),
	}, nil
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&models.Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
