package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	AppName      string `env:"GT_APP_NAME" envDefault:"fridaygt-backend"`
	AppEnv       string `env:"GT_APP_ENV" envDefault:"local"`
	BaseURL      string `env:"GT_BASE_URL" envDefault:"http://localhost:8080"`
	HTTPHost     string `env:"GT_HTTP_HOST" envDefault:"0.0.0.0"`
	HTTPPort     string `env:"GT_HTTP_PORT" envDefault:"8080"`
	HTTPBasePath string `env:"GT_HTTP_BASE_PATH" envDefault:"/api/v1"`

	DBHost     string `env:"GT_DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"GT_DB_PORT" envDefault:"5432"`
	DBUser     string `env:"GT_DB_USER" envDefault:"app"`
	DBPassword string `env:"GT_DB_PASSWORD" envDefault:"app_password"`
	DBName     string `env:"GT_DB_NAME" envDefault:"fridaygt"`
	DBSSLMode  string `env:"GT_DB_SSLMODE" envDefault:"disable"`

	JWTSecret     string        `env:"GT_JWT_SECRET"`
	JWTPrivateKey string        `env:"GT_JWT_PRIVATE_KEY"`
	JWTPublicKey  string        `env:"GT_JWT_PUBLIC_KEY"`
	JWTAudience   string        `env:"GT_JWT_AUDIENCE" envDefault:"fridaygt"`
	JWTIssuer     string        `env:"GT_JWT_ISSUER" envDefault:"fridaygt-backend"`
	SessionTTL    time.Duration `env:"GT_SESSION_TTL" envDefault:"720h"`
	MagicLinkTTL  time.Duration `env:"GT_MAGIC_LINK_TTL" envDefault:"15m"`

	CookieName   string `env:"GT_COOKIE_NAME" envDefault:"fgt_session"`
	CookieDomain string `env:"GT_COOKIE_DOMAIN"`
	CookieSecure bool   `env:"GT_COOKIE_SECURE" envDefault:"true"`

	NATSURL              string `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	NATSVerifySubject    string `env:"NATS_SUBJECT_VERIFY_SESSION" envDefault:"auth.verifySession"`
	NATSMagicLinkSubject string `env:"NATS_SUBJECT_MAGIC_LINK" envDefault:"auth.magicLinkIssued"`
	NATSUserEventSubject string `env:"NATS_SUBJECT_USER_EVENTS" envDefault:"user.lifecycle"`

	// RequireGamertag makes domain mutations by approved users without a
	// gamertag fail with 403 instead of leaving the check to the client.
	RequireGamertag bool `env:"GT_REQUIRE_GAMERTAG" envDefault:"false"`

	RateLimitDisabled bool          `env:"GT_RATELIMIT_DISABLED" envDefault:"false"`
	AuthRateLimit     int64         `env:"GT_RATELIMIT_AUTH_LIMIT" envDefault:"10"`
	AuthRatePeriod    time.Duration `env:"GT_RATELIMIT_AUTH_PERIOD" envDefault:"1m"`
	WriteRateLimit    int64         `env:"GT_RATELIMIT_WRITE_LIMIT" envDefault:"60"`
	WriteRatePeriod   time.Duration `env:"GT_RATELIMIT_WRITE_PERIOD" envDefault:"1m"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}
