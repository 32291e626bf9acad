// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store backends
const (
	StoreDynamoDB = "dynamodb"
	StoreMemory   = "memory"
)

// Translator backends
const (
	TranslatorAmazon = "translate"
	TranslatorLambda = "lambda"
)

// Config holds all settings for the API.
type Config struct {
	Environment string
	Region      string
	LogLevel    string
	ServerPort  int

	StoreBackend     string
	TableName        string
	SortKey          string
	DynamoDBEndpoint string

	TranslatorBackend        string
	TranslatorFunctionPrefix string
	SourceLanguage           string
}

// Load reads the configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment:              getenv("ENVIRONMENT", "dev"),
		Region:                   getenv("REGION", os.Getenv("AWS_REGION")),
		LogLevel:                 getenv("LOG_LEVEL", "info"),
		StoreBackend:             getenv("STORE_BACKEND", StoreDynamoDB),
		TableName:                os.Getenv("TABLE_NAME"),
		SortKey:                  os.Getenv("TABLE_SORT_KEY"),
		DynamoDBEndpoint:         os.Getenv("DYNAMODB_ENDPOINT"),
		TranslatorBackend:        getenv("TRANSLATOR_BACKEND", TranslatorAmazon),
		TranslatorFunctionPrefix: getenv("TRANSLATOR_FUNCTION_PREFIX", "pricofy-translator"),
		SourceLanguage:           getenv("SOURCE_LANGUAGE", "en"),
	}

	port, err := strconv.Atoi(getenv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}
	cfg.ServerPort = port

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case StoreDynamoDB:
		if c.TableName == "" {
			return fmt.Errorf("TABLE_NAME environment variable is not set")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.TranslatorBackend {
	case TranslatorAmazon, TranslatorLambda:
	default:
		return fmt.Errorf("unknown TRANSLATOR_BACKEND %q", c.TranslatorBackend)
	}

	if c.SourceLanguage == "" {
		return fmt.Errorf("SOURCE_LANGUAGE must not be empty")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
