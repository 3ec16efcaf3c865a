package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Line    LineConfig
	Notify  NotifyConfig
	Webhook WebhookConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	TimeZone    string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type LineConfig struct {
	ChannelAccessToken string
	ChannelSecret      string
	APIBaseURL         string
}

type NotifyConfig struct {
	Timeout     time.Duration
	Concurrency int
}

type WebhookConfig struct {
	DedupTTL time.Duration
}

// IsDevelopment reports whether verbose SQL logging should be enabled.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "" || c.Env == "development" || c.Env == "local"
}

// DSN builds the postgres connection string used by gorm.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone,
	)
}

// MigrateURL builds the pgx5:// URL expected by golang-migrate.
func (c DBConfig) MigrateURL() string {
	return fmt.Sprintf(
		"pgx5://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom reads configuration from the given env file (when it exists)
// and from process environment variables, which take precedence.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	notifyTimeout, err := time.ParseDuration(v.GetString("NOTIFY_TIMEOUT"))
	if err != nil {
		notifyTimeout = 5 * time.Second
	}

	dedupTTL, err := time.ParseDuration(v.GetString("WEBHOOK_DEDUP_TTL"))
	if err != nil {
		dedupTTL = 24 * time.Hour
	}

	concurrency := v.GetInt("NOTIFY_CONCURRENCY")
	if concurrency <= 0 {
		concurrency = 4
	}

	config := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			Name:        v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			TimeZone:    v.GetString("DB_TIMEZONE"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Line: LineConfig{
			ChannelAccessToken: v.GetString("LINE_CHANNEL_ACCESS_TOKEN"),
			ChannelSecret:      v.GetString("LINE_CHANNEL_SECRET"),
			APIBaseURL:         v.GetString("LINE_API_BASE_URL"),
		},
		Notify: NotifyConfig{
			Timeout:     notifyTimeout,
			Concurrency: concurrency,
		},
		Webhook: WebhookConfig{
			DedupTTL: dedupTTL,
		},
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "doctor_roster")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Asia/Bangkok")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LINE_API_BASE_URL", "https://api.line.me")
	v.SetDefault("NOTIFY_TIMEOUT", "5s")
	v.SetDefault("NOTIFY_CONCURRENCY", 4)
	v.SetDefault("WEBHOOK_DEDUP_TTL", "24h")
}
