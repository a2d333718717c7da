package config

const (
	defaultConfigPath      = "~/.config/mediumcheck/config.toml"
	defaultKodiURL         = "http://127.0.0.1:8080/jsonrpc"
	defaultKodiUsername    = "kodi"
	defaultKodiPassword    = "kodi"
	defaultKodiTimeoutMS   = 6500
	defaultKodiMaxItems    = 6
	defaultDebounceMS      = 220
	defaultCacheTTLSeconds = 300
	defaultToggleKey       = "F8"
	defaultManualKey       = "F9"
	defaultMaxQueryChars   = 220
	defaultAncestorDepth   = 6
	defaultTooltipItems    = 8
	defaultLogDir          = "~/.local/share/mediumcheck/logs"
	defaultSocketPath      = "~/.local/share/mediumcheck/mediumcheck.sock"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
//
// Kodi credentials are left empty so the credentials file can fill them during
// normalization; the built-in kodi/kodi pair is applied last.
func Default() Config {
	return Config{
		Kodi: Kodi{
			URL:       defaultKodiURL,
			TimeoutMS: defaultKodiTimeoutMS,
			MaxItems:  defaultKodiMaxItems,
		},
		Inspect: Inspect{
			DebounceMS:      defaultDebounceMS,
			CacheTTLSeconds: defaultCacheTTLSeconds,
			ToggleKey:       defaultToggleKey,
			ManualKey:       defaultManualKey,
			MaxQueryChars:   defaultMaxQueryChars,
			AncestorDepth:   defaultAncestorDepth,
			TooltipItems:    defaultTooltipItems,
		},
		Paths: Paths{
			LogDir:     defaultLogDir,
			SocketPath: defaultSocketPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
