package config

import (
	"os"
	"strconv"
)

// CaseAPIConfig holds the case-management API collaborator settings.
type CaseAPIConfig struct {
	BaseURL string
}

// IdamConfig holds the identity/token service settings.
type IdamConfig struct {
	BaseURL      string
	S2SBaseURL   string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	ServiceName  string
}

// MinIOConfig holds the evidence-archive object store settings.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AppConfig is the centralized configuration struct for the service.
// It is populated from environment variables. Sensitive values are not
// hardcoded.
type AppConfig struct {
	AppHost string
	Port    string

	// ServiceAuthSecret is the expected ServiceAuthorization header value
	// for inbound callbacks. Empty disables the check (local development).
	ServiceAuthSecret string

	PostcodeLookupURL  string
	EvidenceLinkTTLSec int

	CaseAPI CaseAPIConfig
	Idam    IdamConfig
	MinIO   MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence over the .env file.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:            getEnv("APP_HOST", "localhost:8080"),
		Port:               getEnv("PORT", "8080"),
		ServiceAuthSecret:  getEnv("SERVICE_AUTH_SECRET", ""),
		PostcodeLookupURL:  getEnv("POSTCODE_LOOKUP_URL", ""),
		EvidenceLinkTTLSec: getEnvInt("EVIDENCE_LINK_TTL_SEC", 600),
		CaseAPI: CaseAPIConfig{
			BaseURL: getEnv("CASE_API_URL", ""),
		},
		Idam: IdamConfig{
			BaseURL:      getEnv("IDAM_URL", ""),
			S2SBaseURL:   getEnv("S2S_URL", ""),
			ClientID:     getEnv("IDAM_CLIENT_ID", ""),
			ClientSecret: getEnv("IDAM_CLIENT_SECRET", ""),
			Username:     getEnv("IDAM_USERNAME", ""),
			Password:     getEnv("IDAM_PASSWORD", ""),
			ServiceName:  getEnv("S2S_SERVICE_NAME", "bulkscan"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
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
