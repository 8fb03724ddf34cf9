package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	MediaStorage  MediaStorageConfig
	GenAI         GenAIConfig
	Session       SessionConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
	Cache         CacheConfig
	Notifications NotificationsConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URI            string
	Database       string
	ConnectTimeout int // seconds
}

type MediaStorageConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
}

type GenAIConfig struct {
	APIKey  string
	BaseURL string // optional: OpenAI-compatible endpoint override
	Model   string
}

type SessionConfig struct {
	JWTSecret       string
	JWTIssuer       string
	SessionTTLHours int
	CookieDomain    string
	CookieSecure    bool
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

type CacheConfig struct {
	DirectoryTTLSeconds   int  // Alumni directory cache TTL in seconds
	DisableDirectoryCache bool // Read from the database on every request
}

type NotificationsConfig struct {
	MaxPerUser int // In-memory feed size per user; oldest entries are evicted
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "https://mentorconnect.app")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "https://mentorconnect.app,https://www.mentorconnect.app")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("MONGODB_DATABASE", "mentorconnect")
	v.SetDefault("MONGODB_CONNECT_TIMEOUT_SECONDS", 10)
	v.SetDefault("GENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "alloy:4318") // OTLP over HTTP
	v.SetDefault("O11Y_SERVICE_NAME", "mentorconnect-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "mentorconnect")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "mentorconnect-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines,mutex,block")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)
	v.SetDefault("DIRECTORY_CACHE_TTL", 600) // 10 minutes in seconds
	v.SetDefault("DISABLE_DIRECTORY_CACHE", false)
	v.SetDefault("NOTIFICATIONS_MAX_PER_USER", 50)

	// Session defaults
	v.SetDefault("JWT_ISSUER", "mentorconnect-api")
	v.SetDefault("SESSION_TTL_HOURS", 24)
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	// Parse allowed CORS origins (comma-separated)
	allowedOrigins := []string{}
	originsStr := v.GetString("ALLOWED_CORS_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: allowedOrigins,
		},
		Database: DatabaseConfig{
			URI:            v.GetString("MONGODB_URI"),
			Database:       v.GetString("MONGODB_DATABASE"),
			ConnectTimeout: v.GetInt("MONGODB_CONNECT_TIMEOUT_SECONDS"),
		},
		MediaStorage: MediaStorageConfig{
			AccessKeyID:     v.GetString("MEDIA_STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("MEDIA_STORAGE_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("MEDIA_STORAGE_BUCKET_NAME"),
			Endpoint:        v.GetString("MEDIA_STORAGE_ENDPOINT"),
			Region:          v.GetString("MEDIA_STORAGE_REGION"),
		},
		GenAI: GenAIConfig{
			APIKey:  v.GetString("GENAI_API_KEY"),
			BaseURL: v.GetString("GENAI_BASE_URL"),
			Model:   v.GetString("GENAI_MODEL"),
		},
		Session: SessionConfig{
			JWTSecret:       v.GetString("JWT_SECRET"),
			JWTIssuer:       v.GetString("JWT_ISSUER"),
			SessionTTLHours: v.GetInt("SESSION_TTL_HOURS"),
			CookieDomain:    v.GetString("COOKIE_DOMAIN"),
			CookieSecure:    v.GetBool("COOKIE_SECURE"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
		Cache: CacheConfig{
			DirectoryTTLSeconds:   v.GetInt("DIRECTORY_CACHE_TTL"),
			DisableDirectoryCache: v.GetBool("DISABLE_DIRECTORY_CACHE"),
		},
		Notifications: NotificationsConfig{
			MaxPerUser: v.GetInt("NOTIFICATIONS_MAX_PER_USER"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	// Database configuration
	if c.Database.URI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("MONGODB_DATABASE is required")
	}

	// Generative model configuration
	if c.GenAI.APIKey == "" {
		return fmt.Errorf("GENAI_API_KEY is required")
	}

	// Media storage credentials come as a pair
	if (c.MediaStorage.AccessKeyID == "") != (c.MediaStorage.SecretAccessKey == "") {
		return fmt.Errorf("MEDIA_STORAGE_ACCESS_KEY_ID and MEDIA_STORAGE_SECRET_ACCESS_KEY must be set together")
	}
	if c.MediaStorage.AccessKeyID != "" && c.MediaStorage.BucketName == "" {
		return fmt.Errorf("MEDIA_STORAGE_BUCKET_NAME is required when media storage credentials are set")
	}

	// Session configuration
	if c.Session.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	// Server configuration
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
