package utils

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Payment  PaymentConfig
	GHL      GHLConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	IdempotencyTTL time.Duration
}

type SessionConfig struct {
	ExpiryHours     int
	CleanupInterval time.Duration
}

type PaymentConfig struct {
	CheckoutURL string
	APIKey      string
	Currency    string
	SuccessURL  string
	CancelURL   string
	// WebhookSecret keys the HMAC-SHA256 signature of provider callbacks.
	WebhookSecret string
}

// GHLConfig holds the GoHighLevel inbound webhook URLs the relay handlers
// forward to.
type GHLConfig struct {
	ContactURL        string
	LandlordLeadURL   string
	ContractorLeadURL string
	Timeout           time.Duration
	RatePerSecond     float64
	Burst             int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "property-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("IDEMPOTENCY_TTL", "24h")
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("SESSION_CLEANUP_INTERVAL", "1h")
	viper.SetDefault("PAYMENT_CURRENCY", "usd")
	viper.SetDefault("GHL_TIMEOUT", "10s")
	viper.SetDefault("GHL_RATE_PER_SECOND", 5)
	viper.SetDefault("GHL_BURST", 10)

	// .env is optional, plain environment works too
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:           viper.GetString("REDIS_ADDR"),
			Password:       viper.GetString("REDIS_PASSWORD"),
			DB:             viper.GetInt("REDIS_DB"),
			IdempotencyTTL: viper.GetDuration("IDEMPOTENCY_TTL"),
		},
		Session: SessionConfig{
			ExpiryHours:     viper.GetInt("SESSION_EXPIRY_HOURS"),
			CleanupInterval: viper.GetDuration("SESSION_CLEANUP_INTERVAL"),
		},
		Payment: PaymentConfig{
			CheckoutURL:   viper.GetString("PAYMENT_CHECKOUT_URL"),
			APIKey:        viper.GetString("PAYMENT_API_KEY"),
			Currency:      viper.GetString("PAYMENT_CURRENCY"),
			SuccessURL:    viper.GetString("PAYMENT_SUCCESS_URL"),
			CancelURL:     viper.GetString("PAYMENT_CANCEL_URL"),
			WebhookSecret: viper.GetString("PAYMENT_WEBHOOK_SECRET"),
		},
		GHL: GHLConfig{
			ContactURL:        viper.GetString("GHL_CONTACT_URL"),
			LandlordLeadURL:   viper.GetString("GHL_LANDLORD_LEAD_URL"),
			ContractorLeadURL: viper.GetString("GHL_CONTRACTOR_LEAD_URL"),
			Timeout:           viper.GetDuration("GHL_TIMEOUT"),
			RatePerSecond:     viper.GetFloat64("GHL_RATE_PER_SECOND"),
			Burst:             viper.GetInt("GHL_BURST"),
		},
	}

	return config, nil
}
