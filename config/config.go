package config

import (
	"log"
	"os"
	"strconv"
)

// AppConfig holds environment driven configuration values.
// Sensitive data (SMTP credentials) must be provided via the environment.
type AppConfig struct {
	AppPort string
	GinMode string

	// DatabaseURL selects the relational store. Empty means a local
	// SQLite file. postgres:// and mysql:// style DSNs are supported.
	DatabaseURL string

	SessionTTLHours    int
	RateLimitPerMinute int

	// SMTP for the contact form
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPTLS      bool
	// ContactTo is the fixed destination for contact-form mail.
	ContactTo string

	// Redis session backend; sessions stay in process memory when
	// RedisHost is unset.
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool

	TemplatesGlob string
	StaticDir     string
}

var cfg AppConfig
var loaded bool

// Load reads the application configuration from environment variables.
// It should be called once during boot.
func Load() AppConfig {
	if loaded {
		return cfg
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

func applyDefaults(c *AppConfig) {
	c.AppPort = "8080"
	c.GinMode = "release"
	c.DatabaseURL = "blog.db"
	c.SessionTTLHours = 24
	c.RateLimitPerMinute = 30
	c.SMTPHost = "smtp.gmail.com"
	c.SMTPPort = 587
	c.SMTPTLS = true
	c.RedisPort = 6379
	c.LogLevel = "info"
	c.LogMaxSizeMB = 100
	c.LogMaxBackups = 3
	c.LogMaxAgeDays = 7
	c.TemplatesGlob = "templates/*.html"
	c.StaticDir = "./static"
}

func applyEnvOverrides(c *AppConfig) {
	if v := os.Getenv("APP_PORT"); v != "" {
		c.AppPort = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		c.GinMode = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		c.SessionTTLHours = mustParseInt("SESSION_TTL_HOURS", v)
	}
	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		c.RateLimitPerMinute = mustParseInt("RATE_LIMIT_PER_MINUTE", v)
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		c.SMTPHost = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		c.SMTPPort = mustParseInt("SMTP_PORT", v)
	}
	if v := os.Getenv("EMAIL"); v != "" {
		c.SMTPUsername = v
	}
	if v := os.Getenv("PASSWORD"); v != "" {
		c.SMTPPassword = v
	}
	if v := os.Getenv("SMTP_TLS"); v != "" {
		c.SMTPTLS = v == "true"
	}
	if v := os.Getenv("CONTACT_TO"); v != "" {
		c.ContactTo = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.RedisHost = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		c.RedisPort = mustParseInt("REDIS_PORT", v)
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		c.RedisDB = mustParseInt("REDIS_DB", v)
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.RedisPassword = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_PATH"); v != "" {
		c.LogPath = v
	}
	if v := os.Getenv("LOG_MAX_SIZE_MB"); v != "" {
		c.LogMaxSizeMB = mustParseInt("LOG_MAX_SIZE_MB", v)
	}
	if v := os.Getenv("LOG_MAX_BACKUPS"); v != "" {
		c.LogMaxBackups = mustParseInt("LOG_MAX_BACKUPS", v)
	}
	if v := os.Getenv("LOG_MAX_AGE_DAYS"); v != "" {
		c.LogMaxAgeDays = mustParseInt("LOG_MAX_AGE_DAYS", v)
	}
	if v := os.Getenv("LOG_COMPRESS"); v != "" {
		c.LogCompress = v == "true"
	}
	if v := os.Getenv("TEMPLATES_GLOB"); v != "" {
		c.TemplatesGlob = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
}

func mustParseInt(key, val string) int {
	i, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("invalid integer value for %s: %v", key, err)
	}
	return i
}
