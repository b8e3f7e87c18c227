package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"withings-health-sync/internal/domain/measurements"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort           = "8080"
	defaultAPIHost        = "wbsapi.withings.net"
	defaultRequestTimeout = 10 * time.Second
	defaultAppName        = "withings-health-sync"
)

var validate = validator.New()

// Config es la configuración de runtime del servicio y del CLI.
type Config struct {
	Port string `yaml:"port" validate:"required,numeric"`

	WithingsToken    string  `yaml:"withings_token"`
	WithingsAPIHost  string  `yaml:"withings_api_host" validate:"required,hostname_rfc1123"`
	RequestTimeout   string  `yaml:"withings_request_timeout" validate:"required"`
	RateLimit        float64 `yaml:"withings_rate_limit" validate:"gte=0"`
	MeasurementTypes string  `yaml:"withings_measurement_types"`
	MaxResponseBytes int64   `yaml:"withings_max_response_bytes" validate:"gte=0"`

	DBDSN     string `yaml:"db_dsn"`
	JWTSecret string `yaml:"jwt_secret"`

	LogLevel  string `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat string `yaml:"log_format" validate:"omitempty,oneof=text json"`
	AppName   string `yaml:"app_name"`

	// derivados
	Timeout time.Duration                   `yaml:"-"`
	Types   []measurements.MeasurementType `yaml:"-"`
}

// Load lee .env (si existe), luego el YAML de CONFIG_FILE y por último las variables de entorno.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{
		Port:            defaultPort,
		WithingsAPIHost: defaultAPIHost,
		RequestTimeout:  defaultRequestTimeout.String(),
		AppName:         defaultAppName,
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read CONFIG_FILE: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse CONFIG_FILE: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.finish(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Port, "PORT")
	setString(&cfg.WithingsToken, "WITHINGS_TOKEN")
	setString(&cfg.WithingsAPIHost, "WITHINGS_API_HOST")
	setString(&cfg.RequestTimeout, "WITHINGS_REQUEST_TIMEOUT")
	setString(&cfg.MeasurementTypes, "WITHINGS_MEASUREMENT_TYPES")
	setString(&cfg.DBDSN, "DB_DSN")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")
	setString(&cfg.AppName, "APP_NAME")

	if v := strings.TrimSpace(os.Getenv("WITHINGS_MAX_RESPONSE_BYTES")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid WITHINGS_MAX_RESPONSE_BYTES: %w", err)
		}
		cfg.MaxResponseBytes = n
	}

	if v := strings.TrimSpace(os.Getenv("WITHINGS_RATE_LIMIT")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid WITHINGS_RATE_LIMIT: %w", err)
		}
		cfg.RateLimit = f
	}
	return nil
}

// finish valida y calcula los campos derivados.
func (c *Config) finish() error {
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return fmt.Errorf("invalid WITHINGS_REQUEST_TIMEOUT: %w", err)
	}
	if d <= 0 {
		return errors.New("invalid WITHINGS_REQUEST_TIMEOUT: must be positive")
	}
	c.Timeout = d

	c.Types = nil
	if strings.TrimSpace(c.MeasurementTypes) != "" {
		types, err := measurements.ParseTypeList(c.MeasurementTypes)
		if err != nil {
			return fmt.Errorf("invalid WITHINGS_MEASUREMENT_TYPES: %w", err)
		}
		c.Types = types
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
