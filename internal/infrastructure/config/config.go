package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Logger      LoggerConfig    `mapstructure:"logger"`
	Identity    IdentityConfig  `mapstructure:"identity"`
	Payment     PaymentConfig   `mapstructure:"payment"`
	Sweep       SweepConfig     `mapstructure:"sweep"`
	RateLimit   RateLimitConfig `mapstructure:"rateLimit"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`  // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"` // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`  // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"timeFormat"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// IdentityConfig contains token verification settings
type IdentityConfig struct {
	JWTSecret string `mapstructure:"jwtSecret"`
	// RedisAddr enables token revocation checks when non-empty
	RedisAddr     string `mapstructure:"redisAddr"`
	RedisPassword string `mapstructure:"redisPassword"`
	RedisDB       int    `mapstructure:"redisDB"`
}

// PaymentConfig contains payment provider settings
type PaymentConfig struct {
	Provider             string        `mapstructure:"provider"`
	BaseURL              string        `mapstructure:"baseURL"`
	SecretKey            string        `mapstructure:"secretKey"`
	FeePercent           float64       `mapstructure:"feePercent"`
	AccountCountry       string        `mapstructure:"accountCountry"`
	SuccessURL           string        `mapstructure:"successURL"`
	CancelURL            string        `mapstructure:"cancelURL"`
	OnboardingRefreshURL string        `mapstructure:"onboardingRefreshURL"`
	OnboardingReturnURL  string        `mapstructure:"onboardingReturnURL"`
	RequestTimeout       time.Duration `mapstructure:"requestTimeout"` // seconds
}

// SweepConfig contains finalization sweep settings
type SweepConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Interval  time.Duration `mapstructure:"interval"` // seconds
	BatchSize int           `mapstructure:"batchSize"`
}

// RateLimitConfig contains sliding-window limiter settings
type RateLimitConfig struct {
	BidPerAuctionMax    int           `mapstructure:"bidPerAuctionMax"`
	BidPerAuctionWindow time.Duration `mapstructure:"bidPerAuctionWindow"` // seconds
	BidGlobalMax        int           `mapstructure:"bidGlobalMax"`
	BidGlobalWindow     time.Duration `mapstructure:"bidGlobalWindow"` // seconds
	ContactMax          int           `mapstructure:"contactMax"`
	ContactWindow       time.Duration `mapstructure:"contactWindow"` // seconds
	Retention           time.Duration `mapstructure:"retention"`     // seconds
	JanitorInterval     time.Duration `mapstructure:"janitorInterval"` // seconds
}
