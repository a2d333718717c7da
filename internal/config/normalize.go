package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeKodi(); err != nil {
		return err
	}
	c.normalizeInspect()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.SocketPath) == "" {
		c.Paths.SocketPath = defaultSocketPath
	}
	if c.Paths.SocketPath, err = expandPath(strings.TrimSpace(c.Paths.SocketPath)); err != nil {
		return fmt.Errorf("paths.socket_path: %w", err)
	}
	return nil
}

// normalizeKodi resolves the endpoint and credentials. Precedence for each
// value: environment, config file, credentials file, built-in default.
func (c *Config) normalizeKodi() error {
	c.Kodi.URL = strings.TrimSpace(c.Kodi.URL)
	c.Kodi.Username = strings.TrimSpace(c.Kodi.Username)
	c.Kodi.CredentialsFile = strings.TrimSpace(c.Kodi.CredentialsFile)

	overrideFromEnv(&c.Kodi.URL, "KODI_URL")
	overrideFromEnv(&c.Kodi.Username, "KODI_USERNAME")
	overrideFromEnv(&c.Kodi.Password, "KODI_PASSWORD")

	if c.Kodi.CredentialsFile != "" {
		path, err := expandPath(c.Kodi.CredentialsFile)
		if err != nil {
			return fmt.Errorf("kodi.credentials_file: %w", err)
		}
		c.Kodi.CredentialsFile = path
		creds, err := readCredentials(path)
		if err != nil {
			return err
		}
		if c.Kodi.Username == "" {
			c.Kodi.Username = creds.Username
		}
		if c.Kodi.Password == "" {
			c.Kodi.Password = creds.Password
		}
	}

	if c.Kodi.URL == "" {
		c.Kodi.URL = defaultKodiURL
	}
	if c.Kodi.Username == "" {
		c.Kodi.Username = defaultKodiUsername
	}
	if c.Kodi.Password == "" {
		c.Kodi.Password = defaultKodiPassword
	}
	return nil
}

func overrideFromEnv(target *string, key string) {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}

func (c *Config) normalizeInspect() {
	c.Inspect.ToggleKey = strings.ToUpper(strings.TrimSpace(c.Inspect.ToggleKey))
	if c.Inspect.ToggleKey == "" {
		c.Inspect.ToggleKey = defaultToggleKey
	}
	c.Inspect.ManualKey = strings.ToUpper(strings.TrimSpace(c.Inspect.ManualKey))
	if c.Inspect.ManualKey == "" {
		c.Inspect.ManualKey = defaultManualKey
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
}
