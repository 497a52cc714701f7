package config

import (
	"fmt"
	"os"
	"time"

	"deedflow/internal/logger"
)

// OCR provider selection values.
const (
	OCRProviderDocumentAI = "documentai"
	OCRProviderVision     = "vision"
)

type Config struct {
	// MongoDB Configuration
	MongoURI       string
	DatabaseName   string
	CollectionName string

	// OpenAI Configuration
	OpenAIAPIKey string
	OpenAIModel  string

	// OCR Configuration
	OCRProvider           string
	GoogleCloudProject    string
	GoogleCloudLocation   string
	DocumentAIProcessorID string

	// Server Configuration
	HTTPAddr        string
	ProcessInterval time.Duration

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		MongoURI:              getEnv("MONGODB_URI", ""),
		DatabaseName:          getEnv("DATABASE_NAME", ""),
		CollectionName:        getEnv("COLLECTION_NAME", ""),
		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:           getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OCRProvider:           getEnv("OCR_PROVIDER", OCRProviderDocumentAI),
		GoogleCloudProject:    getEnv("GOOGLE_CLOUD_PROJECT", ""),
		GoogleCloudLocation:   getEnv("GOOGLE_CLOUD_LOCATION", "us"),
		DocumentAIProcessorID: getEnv("DOCUMENT_AI_PROCESSOR_ID", ""),
		HTTPAddr:              getEnv("HTTP_ADDR", ":8000"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:         getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:             getEnv("LOG_OUTPUT", "stdout"),
	}

	interval, err := time.ParseDuration(getEnv("PROCESS_INTERVAL", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROCESS_INTERVAL: %w", err)
	}
	config.ProcessInterval = interval

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.DatabaseName == "" {
		return fmt.Errorf("DATABASE_NAME is required")
	}
	if c.CollectionName == "" {
		return fmt.Errorf("COLLECTION_NAME is required")
	}
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	switch c.OCRProvider {
	case OCRProviderDocumentAI:
		if c.GoogleCloudProject == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT is required for the %s OCR provider", OCRProviderDocumentAI)
		}
		if c.DocumentAIProcessorID == "" {
			return fmt.Errorf("DOCUMENT_AI_PROCESSOR_ID is required for the %s OCR provider", OCRProviderDocumentAI)
		}
	case OCRProviderVision:
		// Credentials are resolved from the environment by the Vision client.
	default:
		return fmt.Errorf("OCR_PROVIDER must be %q or %q, got %q", OCRProviderDocumentAI, OCRProviderVision, c.OCRProvider)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
