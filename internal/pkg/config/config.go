package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Payment  PaymentConfig
	Checkout CheckoutConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Kolkata"`
}

// Redis keeps guest carts that have no user row to hang off of.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	PoolSize int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	CartTTL  time.Duration `envconfig:"REDIS_CART_TTL" default:"168h"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Kolkata"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"19800"` // 5*60*60 + 30*60
}

type JWTConfig struct {
	Secret               string `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenDuration  string `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"15m"`
	RefreshTokenDuration string `envconfig:"JWT_REFRESH_TOKEN_DURATION" default:"168h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

// PaymentConfig points at the external payment-order-creation service.
type PaymentConfig struct {
	BaseURL    string        `envconfig:"PAYMENT_BASE_URL" required:"true"`
	KeyID      string        `envconfig:"PAYMENT_KEY_ID" required:"true"`
	KeySecret  string        `envconfig:"PAYMENT_KEY_SECRET" required:"true"`
	Currency   string        `envconfig:"PAYMENT_CURRENCY" default:"INR"`
	Timeout    time.Duration `envconfig:"PAYMENT_TIMEOUT" default:"10s"`
	MaxRetries int           `envconfig:"PAYMENT_MAX_RETRIES" default:"3"`
}

type CheckoutConfig struct {
	IdempotencyTTL time.Duration `envconfig:"CHECKOUT_IDEMPOTENCY_TTL" default:"24h"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Kolkata",
		},
		Redis: RedisConfig{
			Addr:    "localhost:16379",
			CartTTL: time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Kolkata",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 19800,
		},
		JWT: JWTConfig{
			Secret:               "test-secret-key-for-e2e-only",
			AccessTokenDuration:  "15m",
			RefreshTokenDuration: "24h",
		},
		Payment: PaymentConfig{
			BaseURL:    "http://localhost:18080",
			KeyID:      "rzp_test_key",
			KeySecret:  "rzp_test_secret",
			Currency:   "INR",
			Timeout:    2 * time.Second,
			MaxRetries: 1,
		},
		Checkout: CheckoutConfig{
			IdempotencyTTL: time.Hour,
		},
	}
}
