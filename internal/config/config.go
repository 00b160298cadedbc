package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Backend     BackendConfig
	Storage     StorageConfig
	Pricing     PricingConfig
	Checkout    CheckoutConfig
	LogLevel    string
}

type BackendConfig struct {
	BaseURL string
}

// StorageConfig selects where persisted slots (cart, last order, session)
// live. Driver is "file" or "postgres".
type StorageConfig struct {
	Driver   string
	Dir      string
	Database DatabaseConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// PricingConfig holds the checkout pricing policy. The discount rule is
// provisional business logic, so rate and threshold are configuration
// rather than constants.
type PricingConfig struct {
	DiscountRate      float64
	DiscountThreshold float64
	ShippingFee       float64
}

type CheckoutConfig struct {
	UPIProcessingDelay time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:4000")
	viper.SetDefault("STORAGE_DRIVER", "file")
	viper.SetDefault("STORAGE_DIR", ".shopit")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DISCOUNT_RATE", "0.40")
	viper.SetDefault("DISCOUNT_THRESHOLD", "999")
	viper.SetDefault("SHIPPING_FEE", "50")
	viper.SetDefault("UPI_PROCESSING_DELAY_MS", "900")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "3000"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Backend: BackendConfig{
			BaseURL: getEnvOrViper("BACKEND_BASE_URL", "http://localhost:4000"),
		},
		Storage: StorageConfig{
			Driver: getEnvOrViper("STORAGE_DRIVER", "file"),
			Dir:    getEnvOrViper("STORAGE_DIR", ".shopit"),
			Database: DatabaseConfig{
				Host:     getEnvOrViper("DB_HOST", "localhost"),
				Port:     getEnvOrViper("DB_PORT", "5432"),
				User:     getEnvOrViper("DB_USER", "postgres"),
				Password: getEnvOrViper("DB_PASSWORD", "postgres"),
				DBName:   getEnvOrViper("DB_NAME", "shopclient"),
				SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
			},
		},
		Pricing: PricingConfig{
			DiscountRate:      viper.GetFloat64("DISCOUNT_RATE"),
			DiscountThreshold: viper.GetFloat64("DISCOUNT_THRESHOLD"),
			ShippingFee:       viper.GetFloat64("SHIPPING_FEE"),
		},
		Checkout: CheckoutConfig{
			UPIProcessingDelay: time.Duration(viper.GetInt("UPI_PROCESSING_DELAY_MS")) * time.Millisecond,
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}
	switch cfg.Storage.Driver {
	case "file", "postgres":
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (expected file or postgres)", cfg.Storage.Driver)
	}
	if cfg.Pricing.DiscountRate < 0 || cfg.Pricing.DiscountRate > 1 {
		return nil, fmt.Errorf("DISCOUNT_RATE must be between 0 and 1")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
