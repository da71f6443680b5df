package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"golang.org/x/crypto/bcrypt"
)

const (
	MAIL_TRANSPORT_SMTP = "smtp"
	MAIL_TRANSPORT_SES  = "ses"
)

type Config struct {
	IsTestMode bool `env:"TEST_MODE"`
	Port       int  `env:"PORT" envDefault:"9090"`

	PostgresqlURL  string `env:"POSTGRESQL_URL,required"`
	MigrationsPath string `env:"MIGRATIONS_PATH"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	BcryptHasherCost           int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordResetValidDuration time.Duration `env:"PASSWORD_RESET_VALID_DURATION" envDefault:"1h"`
	PasswordResetBaseURL       url.URL       `env:"PASSWORD_RESET_BASE_URL,required"`

	MailFrom      string `env:"MAIL_FROM,required"`
	MailTransport string `env:"MAIL_TRANSPORT" envDefault:"smtp"`

	SmtpHost     string `env:"SMTP_HOST"`
	SmtpPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SmtpUsername string `env:"SMTP_USERNAME"`
	SmtpPassword string `env:"SMTP_PASSWORD"`

	AwsRegion    string `env:"AWS_REGION"`
	AwsAccessKey string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey string `env:"AWS_SECRET_KEY"`

	SentryDsn *url.URL `env:"SENTRY_DSN"`
	LogLevel  string   `env:"LOG_LEVEL" envDefault:"info"`

	HttpReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	HttpWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	HttpIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	HttpShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func (c *Config) Validate() error {
	smtpRequired := c.MailTransport == MAIL_TRANSPORT_SMTP
	sesRequired := c.MailTransport == MAIL_TRANSPORT_SES

	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.PostgresqlURL, validation.Required),
		validation.Field(&c.BcryptHasherCost, validation.Min(bcrypt.MinCost), validation.Max(bcrypt.MaxCost)),
		validation.Field(&c.PasswordResetValidDuration, validation.Min(time.Minute)),
		validation.Field(&c.PasswordResetBaseURL, validation.By(absoluteHTTPURL)),
		validation.Field(&c.MailFrom, validation.Required, is.Email),
		validation.Field(&c.MailTransport, validation.In(MAIL_TRANSPORT_SMTP, MAIL_TRANSPORT_SES)),
		validation.Field(&c.SmtpHost, requiredIf(smtpRequired)...),
		validation.Field(&c.SmtpPort, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.AwsRegion, requiredIf(sesRequired)...),
		validation.Field(&c.AwsAccessKey, requiredIf(sesRequired)...),
		validation.Field(&c.AwsSecretKey, requiredIf(sesRequired)...),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	)
}

func requiredIf(condition bool) []validation.Rule {
	if condition {
		return []validation.Rule{validation.Required}
	}
	return nil
}

func absoluteHTTPURL(value interface{}) error {
	u, ok := value.(url.URL)
	if !ok {
		return errors.New("must be a URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must be an http or https URL")
	}
	if u.Host == "" {
		return errors.New("must have a host")
	}
	return nil
}
