package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"mediumcheck/internal/config"
	"mediumcheck/internal/inspect"
	"mediumcheck/internal/ipc"
	"mediumcheck/internal/kodi"
	"mediumcheck/internal/logging"
	"mediumcheck/internal/resolver"
)

type commandContext struct {
	socketFlag   *string
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(socketFlag, configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		socketFlag:   socketFlag,
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if level := c.flagValue(c.logLevelFlag); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
			if err := cfg.Validate(); err != nil {
				c.configErr = fmt.Errorf("--log-level: %w", err)
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}

// remote reports whether lookups should go through a running server.
func (c *commandContext) remote() bool {
	return c.flagValue(c.socketFlag) != ""
}

func (c *commandContext) socketPath() string {
	if socket := c.flagValue(c.socketFlag); socket != "" {
		expanded, err := config.ExpandPath(socket)
		if err == nil {
			return expanded
		}
		return socket
	}
	if cfg, err := c.ensureConfig(); err == nil && cfg.Paths.SocketPath != "" {
		return cfg.Paths.SocketPath
	}
	return filepath.Join(os.TempDir(), "mediumcheck.sock")
}

// fileLogger logs to the configured log file only, keeping the terminal for
// command output.
func (c *commandContext) fileLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{filepath.Join(cfg.Paths.LogDir, logging.LogFileName)},
	})
}

func (c *commandContext) kodiClient(logger *slog.Logger) (*kodi.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	client, err := kodi.New(kodi.Options{
		URL:               cfg.Kodi.URL,
		Username:          cfg.Kodi.Username,
		Password:          cfg.Kodi.Password,
		Timeout:           cfg.KodiTimeout(),
		PageSize:          cfg.Kodi.MaxItems,
		RequestsPerSecond: cfg.Kodi.RequestsPerSecond,
		Logger:            logger,
	})
	if err != nil {
		return nil, fmt.Errorf("kodi client: %w", err)
	}
	return client, nil
}

func (c *commandContext) newResolver(logger *slog.Logger) (*resolver.Resolver, *kodi.Client, error) {
	client, err := c.kodiClient(logger)
	if err != nil {
		return nil, nil, err
	}
	cfg, _ := c.ensureConfig()
	res := resolver.New(client,
		resolver.WithMaxItems(cfg.Kodi.MaxItems),
		resolver.WithLogger(logger),
	)
	return res, client, nil
}

// checker returns the server client when --socket is given and a local
// resolver otherwise. The closer releases the connection.
func (c *commandContext) checker(logger *slog.Logger) (inspect.Checker, io.Closer, error) {
	if c.remote() {
		client, err := c.dialClient()
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil
	}
	res, _, err := c.newResolver(logger)
	if err != nil {
		return nil, nil, err
	}
	return res, nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func (c *commandContext) dialClient() (*ipc.Client, error) {
	socket := c.socketPath()
	client, err := ipc.Dial(socket)
	if err != nil {
		return nil, wrapDialError(err, socket)
	}
	return client, nil
}

func wrapDialError(err error, socket string) error {
	switch {
	case errors.Is(err, syscall.ENOENT) || os.IsNotExist(err):
		return fmt.Errorf("connect to server: socket %s not found; start it with `mediumcheck serve`", socket)
	case errors.Is(err, syscall.ECONNREFUSED):
		return fmt.Errorf("connect to server: socket %s refused the connection; verify the server is running", socket)
	default:
		return fmt.Errorf("connect to server: %w", err)
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
