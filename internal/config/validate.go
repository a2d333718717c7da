package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateKodi(); err != nil {
		return err
	}
	if err := c.validateInspect(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateKodi() error {
	parsed, err := url.Parse(c.Kodi.URL)
	if err != nil {
		return fmt.Errorf("kodi.url: %w", err)
	}
	if parsed.Scheme != "http" {
		return fmt.Errorf("kodi.url must use http (got %q); Kodi's JSON-RPC web server does not speak TLS", parsed.Scheme)
	}
	if parsed.Host == "" {
		return errors.New("kodi.url must include a host")
	}
	if c.Kodi.TimeoutMS <= 0 {
		return errors.New("kodi.timeout_ms must be positive")
	}
	if c.Kodi.MaxItems <= 0 {
		return errors.New("kodi.max_items must be positive")
	}
	if c.Kodi.RequestsPerSecond < 0 {
		return errors.New("kodi.requests_per_second must be >= 0")
	}
	return nil
}

func (c *Config) validateInspect() error {
	if c.Inspect.DebounceMS <= 0 {
		return errors.New("inspect.debounce_ms must be positive")
	}
	if c.Inspect.CacheTTLSeconds <= 0 {
		return errors.New("inspect.cache_ttl_seconds must be positive")
	}
	if c.Inspect.MaxQueryChars <= 0 {
		return errors.New("inspect.max_query_chars must be positive")
	}
	if c.Inspect.AncestorDepth <= 0 {
		return errors.New("inspect.ancestor_depth must be positive")
	}
	if c.Inspect.TooltipItems <= 0 {
		return errors.New("inspect.tooltip_items must be positive")
	}
	if c.Inspect.ToggleKey == c.Inspect.ManualKey {
		return fmt.Errorf("inspect.toggle_key and inspect.manual_key must differ (both %q)", c.Inspect.ToggleKey)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error (got %q)", c.Logging.Level)
	}
	return nil
}
