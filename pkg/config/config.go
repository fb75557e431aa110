package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "SHOPFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv                = "SHOPFRONT_APP_ENV"
	EnvPort                  = "SHOPFRONT_APP_PORT"
	EnvLogLevel              = "SHOPFRONT_LOG_LEVEL"
	EnvLogFormat             = "SHOPFRONT_LOG_FORMAT"
	EnvLogFile               = "SHOPFRONT_LOG_FILE"
	EnvCatalogBaseURL        = "SHOPFRONT_CATALOG_BASE_URL"
	EnvCatalogTimeout        = "SHOPFRONT_CATALOG_TIMEOUT"
	EnvNotificationDuration  = "SHOPFRONT_NOTIFICATION_DURATION"
	EnvDialogConfirmDelay    = "SHOPFRONT_DIALOG_CONFIRM_DELAY"
	EnvCORSAllowedOriginList = "SHOPFRONT_CORS_ORIGINS"
)

type Config struct {
	App          AppConfig
	Catalog      CatalogConfig
	Notification NotificationConfig
	Dialog       DialogConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Catalog.validate(); err != nil {
		return nil, err
	}
	if cfg.Notification.Duration <= 0 {
		return nil, fmt.Errorf("%s must be positive", EnvNotificationDuration)
	}
	if cfg.Dialog.ConfirmDelay < 0 {
		return nil, fmt.Errorf("%s must not be negative", EnvDialogConfirmDelay)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"SHOPFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPFRONT_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"SHOPFRONT_LOG_FORMAT" default:"json"`
	LogFile      string `envconfig:"SHOPFRONT_LOG_FILE" default:"shopfront.log"`
	LogWarnStack bool   `envconfig:"SHOPFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CatalogConfig points at the remote catalog collaborator.
type CatalogConfig struct {
	BaseURL string        `envconfig:"SHOPFRONT_CATALOG_BASE_URL" default:"https://fakestoreapi.com"`
	Timeout time.Duration `envconfig:"SHOPFRONT_CATALOG_TIMEOUT" default:"10s"`
}

type NotificationConfig struct {
	Duration time.Duration `envconfig:"SHOPFRONT_NOTIFICATION_DURATION" default:"3s"`
}

type DialogConfig struct {
	ConfirmDelay time.Duration `envconfig:"SHOPFRONT_DIALOG_CONFIRM_DELAY" default:"2s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SHOPFRONT_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (c CatalogConfig) validate() error {
	u, err := url.Parse(strings.TrimSpace(c.BaseURL))
	if err != nil {
		return fmt.Errorf("%s: %w", EnvCatalogBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) url, got %q", EnvCatalogBaseURL, c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host", EnvCatalogBaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%s must be positive", EnvCatalogTimeout)
	}
	return nil
}
