package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"homepage/internal/logger"
	"homepage/internal/urlutil"
)

// EnvPrefix marks environment overrides. Nested keys use a double
// underscore: HOMEPAGE_SITE__ORIGIN sets site.origin.
const EnvPrefix = "HOMEPAGE_"

// Config holds the application's configuration values.
type Config struct {
	HTTPPort      string        `koanf:"http_port"`
	ShutdownGrace time.Duration `koanf:"shutdown_grace"`
	// FetchTimeout bounds every registry fetch.
	FetchTimeout time.Duration `koanf:"fetch_timeout"`

	Site    SiteConfig    `koanf:"site"`
	Sources SourcesConfig `koanf:"sources"`
	Log     logger.Config `koanf:"log"`
}

// SiteConfig describes the site being served.
type SiteConfig struct {
	// Origin overrides the page origin derived from each request, e.g.
	// "https://www.buk1t.com" behind a proxy.
	Origin     string `koanf:"origin"`
	Domain     string `koanf:"domain"`
	IssueEmail string `koanf:"issue_email"`
}

// SourcesConfig locates the remote JSON documents.
type SourcesConfig struct {
	WWWJSONURL   string `koanf:"www_json_url"`
	Buk1tJSONURL string `koanf:"buk1t_json_url"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		HTTPPort:      "8080",
		ShutdownGrace: 10 * time.Second,
		FetchTimeout:  4 * time.Second,
		Site: SiteConfig{
			Domain:     "buk1t.com",
			IssueEmail: "dev@buk1t.com",
		},
		Sources: SourcesConfig{
			WWWJSONURL:   "https://api.buk1t.com/www.json",
			Buk1tJSONURL: "https://api.buk1t.com/buk1t.json",
		},
		Log: logger.Config{Level: "info"},
	}
}

// Load starts from Default, overlays the YAML file at path when it exists,
// then environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	var errs []error

	if c.HTTPPort == "" {
		errs = append(errs, errors.New("http_port is required"))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, errors.New("fetch_timeout must be positive"))
	}
	if c.ShutdownGrace < 0 {
		errs = append(errs, errors.New("shutdown_grace must be non-negative"))
	}
	if c.Site.Domain == "" {
		errs = append(errs, errors.New("site.domain is required"))
	}
	if c.Site.Origin != "" {
		if _, err := urlutil.ParseAbsolute(c.Site.Origin); err != nil {
			errs = append(errs, fmt.Errorf("site.origin: %w", err))
		}
	}
	for key, u := range map[string]string{
		"sources.www_json_url":   c.Sources.WWWJSONURL,
		"sources.buk1t_json_url": c.Sources.Buk1tJSONURL,
	} {
		if _, err := urlutil.ParseAbsolute(u); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	return errors.Join(errs...)
}
