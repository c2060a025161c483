package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	EnvPrefix     = "STOREFRONT_"
	EnvConfigPath = EnvPrefix + "CONFIG"

	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	AMQP     AMQPConfig     `yaml:"amqp"`
	Checkout CheckoutConfig `yaml:"checkout"`
	Notice   NoticeConfig   `yaml:"notice"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type CatalogConfig struct {
	Source       string        `yaml:"source"`
	URL          string        `yaml:"url"`
	PageSize     int           `yaml:"page_size"`
	MaxPrice     string        `yaml:"max_price"`
	Language     string        `yaml:"language"`
	Currency     string        `yaml:"currency"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	FetchRetries uint          `yaml:"fetch_retries"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// RedisConfig enables the product cache when Addr is set.
type RedisConfig struct {
	Addr string        `yaml:"addr"`
	TTL  time.Duration `yaml:"ttl"`
}

// AMQPConfig enables receipt publishing when URL is set.
type AMQPConfig struct {
	URL   string `yaml:"url"`
	Queue string `yaml:"queue"`
}

type CheckoutConfig struct {
	ClearOnConfirm bool `yaml:"clear_on_confirm"`
}

type NoticeConfig struct {
	Duration time.Duration `yaml:"duration"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Catalog: CatalogConfig{
			Source:       SourceHTTP,
			URL:          "https://fakestoreapi.com/products",
			PageSize:     9,
			MaxPrice:     "1000",
			Language:     "en",
			Currency:     "USD",
			FetchTimeout: 10 * time.Second,
			FetchRetries: 3,
		},
		Redis: RedisConfig{
			TTL: 5 * time.Minute,
		},
		AMQP: AMQPConfig{
			Queue: "receipts",
		},
		Checkout: CheckoutConfig{
			ClearOnConfirm: true,
		},
		Notice: NoticeConfig{
			Duration: 3 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, the YAML file named by STOREFRONT_CONFIG
// if any, and STOREFRONT_* environment variables, in that order.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvConfigPath); path != "" {
		if err := cfg.LoadFromFile(path); err != nil {
			return Config{}, fmt.Errorf("cfg.LoadFromFile: %w", err)
		}
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return Config{}, fmt.Errorf("cfg.LoadFromEnv: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("cfg.Validate: %w", err)
	}

	return cfg, nil
}

func (c *Config) LoadFromFile(path string) error {
	ext := filepath.Ext(path)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file extension %q: %w", ext, ErrInvalidConfig)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("os.ReadFile: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	return nil
}

func (c *Config) LoadFromEnv() error {
	var errs []error

	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = d
		}
	}
	boolean := func(name string, dst *bool) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = b
		}
	}

	str("HTTP_ADDR", &c.HTTP.Addr)
	dur("HTTP_READ_TIMEOUT", &c.HTTP.ReadTimeout)
	dur("HTTP_WRITE_TIMEOUT", &c.HTTP.WriteTimeout)
	dur("HTTP_SHUTDOWN_TIMEOUT", &c.HTTP.ShutdownTimeout)

	str("CATALOG_SOURCE", &c.Catalog.Source)
	str("CATALOG_URL", &c.Catalog.URL)
	if v, ok := os.LookupEnv(EnvPrefix + "CATALOG_PAGE_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sCATALOG_PAGE_SIZE: %w", EnvPrefix, err))
		} else {
			c.Catalog.PageSize = n
		}
	}
	str("CATALOG_MAX_PRICE", &c.Catalog.MaxPrice)
	str("CATALOG_LANGUAGE", &c.Catalog.Language)
	str("CATALOG_CURRENCY", &c.Catalog.Currency)
	dur("CATALOG_FETCH_TIMEOUT", &c.Catalog.FetchTimeout)
	if v, ok := os.LookupEnv(EnvPrefix + "CATALOG_FETCH_RETRIES"); ok {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sCATALOG_FETCH_RETRIES: %w", EnvPrefix, err))
		} else {
			c.Catalog.FetchRetries = uint(n)
		}
	}

	str("POSTGRES_DSN", &c.Postgres.DSN)
	str("REDIS_ADDR", &c.Redis.Addr)
	dur("REDIS_TTL", &c.Redis.TTL)
	str("AMQP_URL", &c.AMQP.URL)
	str("AMQP_QUEUE", &c.AMQP.Queue)
	boolean("CHECKOUT_CLEAR_ON_CONFIRM", &c.Checkout.ClearOnConfirm)
	dur("NOTICE_DURATION", &c.Notice.Duration)
	str("LOG_LEVEL", &c.Log.Level)
	boolean("LOG_DEVELOPMENT", &c.Log.Development)

	return errors.Join(errs...)
}

func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http addr is empty: %w", ErrInvalidConfig)
	}

	switch c.Catalog.Source {
	case SourceHTTP:
		if c.Catalog.URL == "" {
			return fmt.Errorf("catalog url is empty: %w", ErrInvalidConfig)
		}
	case SourcePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("postgres dsn is empty: %w", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("catalog source %q: %w", c.Catalog.Source, ErrInvalidConfig)
	}

	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("catalog page size %d is not positive: %w", c.Catalog.PageSize, ErrInvalidConfig)
	}
	if _, err := c.MaxPrice(); err != nil {
		return err
	}
	if _, err := c.Currency(); err != nil {
		return err
	}
	if _, err := c.Language(); err != nil {
		return err
	}
	if c.Notice.Duration <= 0 {
		return fmt.Errorf("notice duration is not positive: %w", ErrInvalidConfig)
	}
	if c.Redis.Addr != "" && c.Redis.TTL <= 0 {
		return fmt.Errorf("redis ttl is not positive: %w", ErrInvalidConfig)
	}

	return nil
}

func (c *Config) MaxPrice() (decimal.Decimal, error) {
	v, err := decimal.NewFromString(c.Catalog.MaxPrice)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("catalog max price %q: %w", c.Catalog.MaxPrice, ErrInvalidConfig)
	}
	if !v.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("catalog max price %s is not positive: %w", v, ErrInvalidConfig)
	}
	return v, nil
}

func (c *Config) Currency() (currency.Unit, error) {
	unit, err := currency.ParseISO(c.Catalog.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("catalog currency %q: %w", c.Catalog.Currency, ErrInvalidConfig)
	}
	return unit, nil
}

func (c *Config) Language() (language.Tag, error) {
	tag, err := language.Parse(c.Catalog.Language)
	if err != nil {
		return language.Und, fmt.Errorf("catalog language %q: %w", c.Catalog.Language, ErrInvalidConfig)
	}
	return tag, nil
}
