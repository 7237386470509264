package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Public origin used to build checkout return URLs and the
	// password-reset redirect target.
	SiteURL string `mapstructure:"SITE_URL"`

	// Stripe configuration.
	StripeKey      string `mapstructure:"STRIPE_SECRET_KEY"`
	StripePriceIDA string `mapstructure:"STRIPE_PRICE_ID_A"`
	StripePriceIDB string `mapstructure:"STRIPE_PRICE_ID_B"`
	StripePriceIDC string `mapstructure:"STRIPE_PRICE_ID_C"`

	// Hosted auth service (GoTrue-compatible REST API).
	AuthBaseURL   string `mapstructure:"AUTH_BASE_URL"`
	AuthAPIKey    string `mapstructure:"AUTH_API_KEY"`
	AuthJWTSecret string `mapstructure:"AUTH_JWT_SECRET"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisDecisionDB int    `mapstructure:"REDIS_DECISION_DB"`
	RedisSessionDB  int    `mapstructure:"REDIS_SESSION_DB"`

	// Hours before unused decision state expires; 0 keeps it forever.
	DecisionTTLHours int `mapstructure:"DECISION_TTL_HOURS"`

	// First Monday of Edition 1, ISO date. Week indexes count from here.
	EditionStartMonday string `mapstructure:"EDITION_START_MONDAY"`

	// Comma-separated path prefixes that bypass the session gate
	// (field-test access).
	PublicPathPrefixes string `mapstructure:"PUBLIC_PATH_PREFIXES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("SITE_URL", "http://localhost:8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DECISION_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("DECISION_TTL_HOURS", 0)
	viper.SetDefault("EDITION_START_MONDAY", "2025-09-01")
	viper.SetDefault("PUBLIC_PATH_PREFIXES", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// StripePriceID maps a plan identifier to its configured Stripe price.
// Returns an empty string for unknown plans.
func StripePriceID(plan string) string {
	switch plan {
	case "A":
		return AppConfig.StripePriceIDA
	case "B":
		return AppConfig.StripePriceIDB
	case "C":
		return AppConfig.StripePriceIDC
	default:
		return ""
	}
}

// PublicPrefixes returns the configured gate bypass prefixes.
func PublicPrefixes() []string {
	raw := AppConfig.PublicPathPrefixes
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
