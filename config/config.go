package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Media     MediaConfig
	AdminAuth AdminAuthConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

// IsProduction reports whether APP_ENV selects the production profile.
func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

type DBConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	TimeZone     string
	MaxIdleConns int
	MaxOpenConns int
	AutoMigrate  bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

type CacheConfig struct {
	HomeTTL time.Duration
}

type MediaConfig struct {
	Root           string
	URL            string
	MaxUploadBytes int64
}

type AdminAuthConfig struct {
	Secret string
	Expiry time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
	// TrustProxy keys clients on X-Forwarded-For. Enable only behind a
	// proxy that sets the header.
	TrustProxy bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from the .env file at path (if it exists) and the
// process environment; environment variables win.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

// LoadConfig loads from ./.env, the location used when no flag is given.
func LoadConfig() (*Config, error) {
	return Load(".env")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_AUTO_MIGRATE", false)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_ENABLED", true)

	v.SetDefault("CACHE_HOME_TTL", "5m")

	v.SetDefault("MEDIA_ROOT", "media")
	v.SetDefault("MEDIA_URL", "/media/")
	v.SetDefault("MEDIA_MAX_UPLOAD_MB", 5)

	v.SetDefault("ADMIN_TOKEN_EXPIRY", "720h")

	v.SetDefault("RATE_LIMIT_RPS", 1.0)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	v.SetDefault("RATE_LIMIT_TRUST_PROXY", false)

	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

func fromViper(v *viper.Viper) *Config {
	homeTTL, err := time.ParseDuration(v.GetString("CACHE_HOME_TTL"))
	if err != nil {
		homeTTL = 5 * time.Minute
	}

	adminExpiry, err := time.ParseDuration(v.GetString("ADMIN_TOKEN_EXPIRY"))
	if err != nil {
		adminExpiry = 30 * 24 * time.Hour
	}

	mediaURL := v.GetString("MEDIA_URL")
	if !strings.HasSuffix(mediaURL, "/") {
		mediaURL += "/"
	}

	return &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			TimeZone:     v.GetString("DB_TIMEZONE"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			Enabled:  v.GetBool("REDIS_ENABLED"),
		},
		Cache: CacheConfig{
			HomeTTL: homeTTL,
		},
		Media: MediaConfig{
			Root:           v.GetString("MEDIA_ROOT"),
			URL:            mediaURL,
			MaxUploadBytes: v.GetInt64("MEDIA_MAX_UPLOAD_MB") << 20,
		},
		AdminAuth: AdminAuthConfig{
			Secret: v.GetString("ADMIN_TOKEN_SECRET"),
			Expiry: adminExpiry,
		},
		RateLimit: RateLimitConfig{
			RPS:        v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:      v.GetInt("RATE_LIMIT_BURST"),
			TrustProxy: v.GetBool("RATE_LIMIT_TRUST_PROXY"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err)
}
