package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ClassifierConfig points at the external AI/OCR classification service.
type ClassifierConfig struct {
	Endpoint   string
	APIKey     string
	TimeoutSec int
}

// PipelineConfig tunes ingestion, placement and search rendering.
type PipelineConfig struct {
	// PersonalRootLabel is prepended to category fallback paths in personal vaults.
	PersonalRootLabel string `yaml:"personal_root_label"`
	// CommitConcurrency bounds how many documents' commit pipelines run at once.
	CommitConcurrency int `yaml:"commit_concurrency"`
	// Root group labels for search results.
	PersonalVaultLabel     string `yaml:"personal_vault_label"`
	OrganizationVaultLabel string `yaml:"organization_vault_label"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost    string
	Port       string
	LogLevel   string
	Location   *time.Location
	Database   DatabaseConfig
	MinIO      MinIOConfig
	Classifier ClassifierConfig
	Pipeline   PipelineConfig
	// PipelineFile is an optional YAML file overlaying Pipeline.
	PipelineFile string
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Location: getEnvLocation("APP_TIMEZONE", time.UTC),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Classifier: ClassifierConfig{
			Endpoint:   getEnv("CLASSIFIER_ENDPOINT", ""),
			APIKey:     getEnv("CLASSIFIER_API_KEY", ""),
			TimeoutSec: getEnvInt("CLASSIFIER_TIMEOUT_SEC", 60),
		},
		Pipeline: PipelineConfig{
			PersonalRootLabel:      getEnv("PIPELINE_PERSONAL_ROOT_LABEL", "Personal Documents"),
			CommitConcurrency:      getEnvInt("PIPELINE_COMMIT_CONCURRENCY", 4),
			PersonalVaultLabel:     getEnv("PIPELINE_PERSONAL_VAULT_LABEL", "My Vault"),
			OrganizationVaultLabel: getEnv("PIPELINE_ORGANIZATION_VAULT_LABEL", "Business Vault"),
		},
		PipelineFile: getEnv("PIPELINE_CONFIG", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvLocation(key string, def *time.Location) *time.Location {
	if v := os.Getenv(key); v != "" {
		loc, err := time.LoadLocation(v)
		if err == nil {
			return loc
		}
	}
	return def
}
