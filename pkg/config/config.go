package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Database DatabaseConfig
	Session  SessionConfig
	Uploads  UploadConfig
	Admin    AdminSeedConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Stats    StatsCacheConfig
}

// DatabaseConfig locates the SQLite database file.
type DatabaseConfig struct {
	Path string
}

// SessionConfig controls the signed admin session cookie.
type SessionConfig struct {
	Secret string
	MaxAge time.Duration
}

// UploadConfig governs the before/after image stores.
type UploadConfig struct {
	BeforeDir         string
	AfterDir          string
	MaxContentLength  int64
	AllowedExtensions []string
}

// AdminSeedConfig is the default credential inserted at first startup.
type AdminSeedConfig struct {
	Username string
	Password string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// StatsCacheConfig gates the optional Redis cache for RFID scan statistics.
type StatsCacheConfig struct {
	Enabled  bool
	CacheTTL time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Database = DatabaseConfig{Path: v.GetString("DATABASE_PATH")}

	cfg.Session = SessionConfig{
		Secret: v.GetString("SESSION_SECRET"),
		MaxAge: parseDuration(v.GetString("SESSION_MAX_AGE"), 12*time.Hour),
	}

	maxContent := v.GetInt64("MAX_CONTENT_LENGTH")
	if maxContent <= 0 {
		maxContent = 16 * 1024 * 1024
	}
	cfg.Uploads = UploadConfig{
		BeforeDir:         v.GetString("UPLOAD_DIR_BEFORE"),
		AfterDir:          v.GetString("UPLOAD_DIR_AFTER"),
		MaxContentLength:  maxContent,
		AllowedExtensions: splitAndTrim(v.GetString("ALLOWED_EXTENSIONS")),
	}

	cfg.Admin = AdminSeedConfig{
		Username: v.GetString("ADMIN_USERNAME"),
		Password: v.GetString("ADMIN_PASSWORD"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Stats = StatsCacheConfig{
		Enabled:  v.GetBool("ENABLE_STATS_CACHE"),
		CacheTTL: parseDuration(v.GetString("STATS_CACHE_TTL"), 5*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 5001)

	v.SetDefault("DATABASE_PATH", "./hazard.db")

	v.SetDefault("SESSION_SECRET", "dev-secret-key-change-in-production")
	v.SetDefault("SESSION_MAX_AGE", "12h")

	v.SetDefault("UPLOAD_DIR_BEFORE", "./uploads/before")
	v.SetDefault("UPLOAD_DIR_AFTER", "./uploads/after")
	v.SetDefault("MAX_CONTENT_LENGTH", 16*1024*1024)
	v.SetDefault("ALLOWED_EXTENSIONS", "png,jpg,jpeg,gif,webp")

	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "admin123")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_STATS_CACHE", false)
	v.SetDefault("STATS_CACHE_TTL", "5m")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
