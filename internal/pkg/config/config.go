// Package config loads the storefront settings from an optional YAML file
// and the environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr string `yaml:"http_addr"`
	LogLevel string `yaml:"log_level"`

	StoreAPIBaseURL string        `yaml:"store_api_base_url"`
	HTTPTimeout     time.Duration `yaml:"http_timeout"`

	RazorpayKeyID     string        `yaml:"razorpay_key_id"`
	CheckoutScriptURL string        `yaml:"checkout_script_url"`
	StoreName         string        `yaml:"store_name"`
	ThemeColor        string        `yaml:"theme_color"`
	Currency          string        `yaml:"currency"`
	NoticeTTL         time.Duration `yaml:"notice_ttl"`

	RedisAddr       string        `yaml:"redis_addr"`
	CheckoutLogPath string        `yaml:"checkout_log_path"`
	VisitorMaxIdle  time.Duration `yaml:"visitor_max_idle"`

	OTelServiceName string `yaml:"otel_service_name"`
	OTelEnabled     bool   `yaml:"otel_enabled"`
}

func Default() Config {
	return Config{
		HTTPAddr:          ":8080",
		LogLevel:          "info",
		StoreAPIBaseURL:   "https://api.bintax.co.in/api",
		HTTPTimeout:       15 * time.Second,
		RazorpayKeyID:     "rzp_test_Oy62IkchWuGtwR",
		CheckoutScriptURL: "https://checkout.razorpay.com/v1/checkout.js",
		StoreName:         "BintaxDigital",
		ThemeColor:        "#4F46E5",
		Currency:          "INR",
		NoticeTTL:         5 * time.Second,
		CheckoutLogPath:   "./data/checkout.db",
		VisitorMaxIdle:    time.Hour,
		OTelServiceName:   "storefront",
	}
}

// Load reads path when it is non-empty and then applies environment
// overrides. A missing file is an error; an empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	c.HTTPAddr = getEnv("HTTP_ADDR", c.HTTPAddr)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.StoreAPIBaseURL = getEnv("STORE_API_BASE_URL", c.StoreAPIBaseURL)
	c.RazorpayKeyID = getEnv("RAZORPAY_KEY_ID", c.RazorpayKeyID)
	c.CheckoutScriptURL = getEnv("CHECKOUT_SCRIPT_URL", c.CheckoutScriptURL)
	c.StoreName = getEnv("STORE_NAME", c.StoreName)
	c.ThemeColor = getEnv("THEME_COLOR", c.ThemeColor)
	c.Currency = getEnv("CURRENCY", c.Currency)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.CheckoutLogPath = getEnv("CHECKOUT_LOG_PATH", c.CheckoutLogPath)
	c.OTelServiceName = getEnv("OTEL_SERVICE_NAME", c.OTelServiceName)

	var err error
	if c.NoticeTTL, err = getDuration("NOTICE_TTL", c.NoticeTTL); err != nil {
		return err
	}
	if c.HTTPTimeout, err = getDuration("HTTP_TIMEOUT", c.HTTPTimeout); err != nil {
		return err
	}
	if c.VisitorMaxIdle, err = getDuration("VISITOR_MAX_IDLE", c.VisitorMaxIdle); err != nil {
		return err
	}
	if v := os.Getenv("OTEL_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: OTEL_ENABLED: %w", err)
		}
		c.OTelEnabled = enabled
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.StoreAPIBaseURL == "" {
		errs = append(errs, errors.New("store_api_base_url is required"))
	}
	if c.RazorpayKeyID == "" {
		errs = append(errs, errors.New("razorpay_key_id is required"))
	}
	if c.NoticeTTL <= 0 {
		errs = append(errs, errors.New("notice_ttl must be positive"))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, errors.New("http_timeout must be positive"))
	}
	if c.VisitorMaxIdle <= 0 {
		errs = append(errs, errors.New("visitor_max_idle must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
