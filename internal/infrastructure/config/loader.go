package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./.env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
	"../../configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	// Load environment variables from .env file first
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Environment variables override config file values
	v.SetEnvPrefix("AP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env

	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return nil
			} else {
				lastError = err
			}
		}
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}

	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.callerInfo", true)

	v.SetDefault("payment.provider", "stripe")
	v.SetDefault("payment.baseURL", "https://api.stripe.com")
	v.SetDefault("payment.feePercent", 10.0)
	v.SetDefault("payment.accountCountry", "US")
	v.SetDefault("payment.requestTimeout", 15) // seconds

	v.SetDefault("sweep.enabled", true)
	v.SetDefault("sweep.interval", 30) // seconds
	v.SetDefault("sweep.batchSize", 50)

	v.SetDefault("rateLimit.bidPerAuctionMax", 5)
	v.SetDefault("rateLimit.bidPerAuctionWindow", 60) // seconds
	v.SetDefault("rateLimit.bidGlobalMax", 20)
	v.SetDefault("rateLimit.bidGlobalWindow", 60) // seconds
	v.SetDefault("rateLimit.contactMax", 3)
	v.SetDefault("rateLimit.contactWindow", 300)  // seconds
	v.SetDefault("rateLimit.retention", 600)      // seconds
	v.SetDefault("rateLimit.janitorInterval", 60) // seconds
}

// getEnvironment determines the environment based on the AP_ENV variable
func getEnvironment() string {
	env := os.Getenv("AP_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values
// for sensitive settings that should never sit in a config file.
func processEnvOverrides(v *viper.Viper) {
	if dbHost := os.Getenv("AP_DB_HOST"); dbHost != "" {
		v.Set("database.host", dbHost)
	}
	if dbPort := os.Getenv("AP_DB_PORT"); dbPort != "" {
		v.Set("database.port", dbPort)
	}
	if dbUser := os.Getenv("AP_DB_USERNAME"); dbUser != "" {
		v.Set("database.username", dbUser)
	}
	if dbPass := os.Getenv("AP_DB_PASSWORD"); dbPass != "" {
		v.Set("database.password", dbPass)
	}
	if dbName := os.Getenv("AP_DB_NAME"); dbName != "" {
		v.Set("database.database", dbName)
	}
	if sslMode := os.Getenv("AP_DB_SSL_MODE"); sslMode != "" {
		v.Set("database.sslMode", sslMode)
	}

	if serverHost := os.Getenv("AP_SERVER_HOST"); serverHost != "" {
		v.Set("server.host", serverHost)
	}
	if serverPort := os.Getenv("AP_SERVER_PORT"); serverPort != "" {
		v.Set("server.port", serverPort)
	}

	if logLevel := os.Getenv("AP_LOGGER_LEVEL"); logLevel != "" {
		v.Set("logger.level", logLevel)
	}

	if jwtSecret := os.Getenv("AP_JWT_SECRET"); jwtSecret != "" {
		v.Set("identity.jwtSecret", jwtSecret)
	}
	if redisAddr := os.Getenv("AP_REDIS_ADDR"); redisAddr != "" {
		v.Set("identity.redisAddr", redisAddr)
	}
	if redisPass := os.Getenv("AP_REDIS_PASSWORD"); redisPass != "" {
		v.Set("identity.redisPassword", redisPass)
	}

	if paymentKey := os.Getenv("AP_PAYMENT_SECRET_KEY"); paymentKey != "" {
		v.Set("payment.secretKey", paymentKey)
	}
	if paymentURL := os.Getenv("AP_PAYMENT_BASE_URL"); paymentURL != "" {
		v.Set("payment.baseURL", paymentURL)
	}
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second

	config.Payment.RequestTimeout = time.Duration(config.Payment.RequestTimeout) * time.Second

	config.Sweep.Interval = time.Duration(config.Sweep.Interval) * time.Second

	config.RateLimit.BidPerAuctionWindow = time.Duration(config.RateLimit.BidPerAuctionWindow) * time.Second
	config.RateLimit.BidGlobalWindow = time.Duration(config.RateLimit.BidGlobalWindow) * time.Second
	config.RateLimit.ContactWindow = time.Duration(config.RateLimit.ContactWindow) * time.Second
	config.RateLimit.Retention = time.Duration(config.RateLimit.Retention) * time.Second
	config.RateLimit.JanitorInterval = time.Duration(config.RateLimit.JanitorInterval) * time.Second
}
