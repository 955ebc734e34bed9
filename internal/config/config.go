package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string
	Port       string
	CORSOrigin string
	BodyLimit  int

	DB    Database
	Auth  Auth
	Minio Minio
	SMTP  SMTP
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Auth struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type Minio struct {
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Bucket         string
	UseSSL         bool
}

type SMTP struct {
	Host       string
	Port       int
	SenderName string
	From       string
	Password   string
}

// Load reads configuration from the environment, falling back to defaults
// that match the local docker-compose setup.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8000")
	v.SetDefault("CORS_ORIGIN", "http://localhost:5173")
	v.SetDefault("BODY_LIMIT", 500*1024*1024)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "clipstream")
	v.SetDefault("DB_PASSWORD", "clipstream")
	v.SetDefault("DB_NAME", "clipstream")

	v.SetDefault("ACCESS_TOKEN_SECRET", "dev-access-secret")
	v.SetDefault("REFRESH_TOKEN_SECRET", "dev-refresh-secret")
	v.SetDefault("ACCESS_TOKEN_EXPIRY", "15m")
	v.SetDefault("REFRESH_TOKEN_EXPIRY", "168h")

	v.SetDefault("MINIO_INTERNAL_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_PUBLIC_ENDPOINT", "http://localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	v.SetDefault("MINIO_BUCKET", "clipstream-bucket")
	v.SetDefault("MINIO_USE_SSL", false)

	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_SENDER_NAME", "ClipStream")
	v.SetDefault("SMTP_FROM", "")
	v.SetDefault("SMTP_PASSWORD", "")

	return &Config{
		Env:        v.GetString("APP_ENV"),
		Port:       v.GetString("PORT"),
		CORSOrigin: v.GetString("CORS_ORIGIN"),
		BodyLimit:  v.GetInt("BODY_LIMIT"),
		DB: Database{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Auth: Auth{
			AccessSecret:  v.GetString("ACCESS_TOKEN_SECRET"),
			RefreshSecret: v.GetString("REFRESH_TOKEN_SECRET"),
			AccessTTL:     v.GetDuration("ACCESS_TOKEN_EXPIRY"),
			RefreshTTL:    v.GetDuration("REFRESH_TOKEN_EXPIRY"),
		},
		Minio: Minio{
			Endpoint:       v.GetString("MINIO_INTERNAL_ENDPOINT"),
			PublicEndpoint: v.GetString("MINIO_PUBLIC_ENDPOINT"),
			AccessKey:      v.GetString("MINIO_ACCESS_KEY"),
			SecretKey:      v.GetString("MINIO_SECRET_KEY"),
			Bucket:         v.GetString("MINIO_BUCKET"),
			UseSSL:         v.GetBool("MINIO_USE_SSL"),
		},
		SMTP: SMTP{
			Host:       v.GetString("SMTP_HOST"),
			Port:       v.GetInt("SMTP_PORT"),
			SenderName: v.GetString("SMTP_SENDER_NAME"),
			From:       v.GetString("SMTP_FROM"),
			Password:   v.GetString("SMTP_PASSWORD"),
		},
	}
}

// IsProduction reports whether the app runs with production behaviour
// (no stack traces in error responses).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
