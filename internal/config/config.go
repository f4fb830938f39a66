package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Redis configuration
	RedisURI            string   `json:"redis_uri"`
	RedisPassword       string   `json:"redis_password"`
	RedisDB             int      `json:"redis_db"`
	RedisClusterEnabled bool     `json:"redis_cluster_enabled"`
	RedisClusterAddrs   []string `json:"redis_cluster_addrs"`

	// Collection names
	ApplicationCollection string `json:"mongo_application_collection"`
	ActivityLogCollection string `json:"mongo_activity_log_collection"`

	// Form session configuration
	SessionTTL time.Duration `json:"session_ttl"`

	// Email configuration
	AWSRegion    string `json:"aws_region"`
	EmailFrom    string `json:"email_from"`
	AdminEmail   string `json:"admin_email"`
	EmailEnabled bool   `json:"email_enabled"`

	// Activity logging
	ActivityLogsEnabled bool `json:"activity_logs_enabled"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	sessionTTL, err := time.ParseDuration(getEnvOrDefault("SESSION_TTL", "24h"))
	if err != nil {
		return fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		return fmt.Errorf("ADMIN_EMAIL environment variable is required")
	}

	redisClusterEnabled := getEnvOrDefault("REDIS_CLUSTER_ENABLED", "false") == "true"
	var redisClusterAddrs []string
	if raw := os.Getenv("REDIS_CLUSTER_ADDRS"); raw != "" {
		for _, addr := range strings.Split(raw, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				redisClusterAddrs = append(redisClusterAddrs, addr)
			}
		}
	}
	if redisClusterEnabled && len(redisClusterAddrs) == 0 {
		return fmt.Errorf("REDIS_CLUSTER_ADDRS is required when REDIS_CLUSTER_ENABLED=true")
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// MongoDB configuration
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "tenancy"),

		// Redis configuration
		RedisURI:            getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword:       getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:             redisDB,
		RedisClusterEnabled: redisClusterEnabled,
		RedisClusterAddrs:   redisClusterAddrs,

		// Collection names
		ApplicationCollection: getEnvOrDefault("MONGODB_APPLICATION_COLLECTION", "applications"),
		ActivityLogCollection: getEnvOrDefault("MONGODB_ACTIVITY_LOG_COLLECTION", "activity_logs"),

		// Form session configuration
		SessionTTL: sessionTTL,

		// Email configuration
		AWSRegion:           getEnvOrDefault("AWS_REGION", "eu-west-2"),
		EmailFrom:           getEnvOrDefault("EMAIL_FROM", "applications@lettingshub.co.uk"),
		AdminEmail:          adminEmail,
		EmailEnabled:        getEnvOrDefault("EMAIL_ENABLED", "true") == "true",
		ActivityLogsEnabled: getEnvOrDefault("ACTIVITY_LOGS_ENABLED", "true") == "true",

		// Tracing configuration
		TracingEnabled:  getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
