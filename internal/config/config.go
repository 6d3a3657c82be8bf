package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the GORM/pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// GoogleConfig holds Google Maps Platform settings. An empty APIKey disables
// external route computation; route estimates then always use the local
// Haversine fallback.
type GoogleConfig struct {
	APIKey   string
	Language string
}

// KafkaConfig holds event publishing settings. Empty Brokers disables
// publishing entirely.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ServiceConfig holds all configuration for the travel service.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	CORSOrigins []string
	DBConfig    DatabaseConfig
	JWTConfig   JWTConfig
	Google      GoogleConfig
	Kafka       KafkaConfig
}

// Load reads configuration from environment variables (TRAVEL_ prefix),
// after loading an optional .env file.
func Load() (*ServiceConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TRAVEL")
	v.AutomaticEnv()

	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "travel")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_TTL_HOURS", 24)
	v.SetDefault("GOOGLE_API_KEY", "")
	v.SetDefault("GOOGLE_LANG", "ko")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "travel.trip.events")

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("TRAVEL_JWT_SECRET is required")
	}

	return &ServiceConfig{
		Port:        ":" + strings.TrimPrefix(v.GetString("SERVICE_PORT"), ":"),
		AppEnv:      v.GetString("APP_ENV"),
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		DBConfig: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWTConfig: JWTConfig{
			Secret: secret,
			TTL:    time.Duration(v.GetInt("JWT_TTL_HOURS")) * time.Hour,
		},
		Google: GoogleConfig{
			APIKey:   v.GetString("GOOGLE_API_KEY"),
			Language: v.GetString("GOOGLE_LANG"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
	}, nil
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
