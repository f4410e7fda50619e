package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "PORTFOLIO_"

// Config is the runtime configuration, read from portfolio.yml and
// PORTFOLIO_* environment variables.
type Config struct {
	Env     string        `koanf:"env"`
	HTTP    HTTPConfig    `koanf:"http"`
	Log     LogConfig     `koanf:"log"`
	Relay   RelayConfig   `koanf:"relay"`
	Archive ArchiveConfig `koanf:"archive"`
	Admin   AdminConfig   `koanf:"admin"`
	Site    SiteConfig    `koanf:"site"`
}

type HTTPConfig struct {
	Host            string        `koanf:"host"`
	Port            string        `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type LogConfig struct {
	Level    string `koanf:"level"`
	Encoding string `koanf:"encoding"`
}

// RelayConfig selects how contact messages leave the site. Provider is
// "emailjs", "smtp", or empty for no relay.
type RelayConfig struct {
	Provider string        `koanf:"provider"`
	Timeout  time.Duration `koanf:"timeout"`
	EmailJS  EmailJSConfig `koanf:"emailjs"`
	SMTP     SMTPConfig    `koanf:"smtp"`
}

type EmailJSConfig struct {
	Endpoint   string `koanf:"endpoint"`
	ServiceID  string `koanf:"service_id"`
	TemplateID string `koanf:"template_id"`
	PublicKey  string `koanf:"public_key"`
	PrivateKey string `koanf:"private_key"`
}

type SMTPConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	To       string `koanf:"to"`
}

// ArchiveConfig enables the sqlite message archive when Path is set.
type ArchiveConfig struct {
	Path      string        `koanf:"path"`
	Retention time.Duration `koanf:"retention"`
}

type AdminConfig struct {
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

type SiteConfig struct {
	ContentFile string `koanf:"content_file"`
	AssetsDir   string `koanf:"assets_dir"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Env: "development",
		HTTP: HTTPConfig{
			Host:            "0.0.0.0",
			Port:            "8080",
			ShutdownTimeout: 15 * time.Second,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
		},
		Archive: ArchiveConfig{
			Retention: 365 * 24 * time.Hour,
		},
		Site: SiteConfig{
			AssetsDir: "./assets",
		},
	}
}

// LoadConfig reads the YAML file at path if it exists, then overlays
// PORTFOLIO_* environment variables. A double underscore separates nested
// keys: PORTFOLIO_RELAY__EMAILJS__SERVICE_ID sets relay.emailjs.service_id.
// The bare PORT variable still wins for the listen port.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.HTTP.Port = port
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	switch c.Env {
	case "development", "production", "test":
	default:
		return fmt.Errorf("invalid env %q: must be one of development, production, test", c.Env)
	}

	switch c.Log.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log encoding %q: must be json or console", c.Log.Encoding)
	}

	if c.HTTP.Port == "" {
		return fmt.Errorf("http port is required")
	}

	switch c.Relay.Provider {
	case "", "none":
	case "emailjs":
		e := c.Relay.EmailJS
		if e.ServiceID == "" || e.TemplateID == "" || e.PublicKey == "" {
			return fmt.Errorf("relay emailjs requires service_id, template_id and public_key")
		}
	case "smtp":
		if c.Relay.SMTP.Username == "" || c.Relay.SMTP.Password == "" {
			return fmt.Errorf("relay smtp requires username and password")
		}
	default:
		return fmt.Errorf("invalid relay provider %q: must be emailjs, smtp or none", c.Relay.Provider)
	}
	if c.Relay.Timeout < 0 {
		return fmt.Errorf("relay timeout must be non-negative")
	}

	if (c.Admin.Username == "") != (c.Admin.Password == "") {
		return fmt.Errorf("admin requires both username and password")
	}
	if c.Admin.Username != "" && c.Archive.Path == "" {
		return fmt.Errorf("admin requires archive.path")
	}
	return nil
}

// Address returns the HTTP listen address.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}

// AdminEnabled reports whether the admin pages are mounted.
func (c *Config) AdminEnabled() bool {
	return c.Admin.Username != "" && c.Admin.Password != ""
}
