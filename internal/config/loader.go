package config

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const maxConfigFileSize = 1024 * 1024 // 1MB

// LoadWithFile loads configuration from a YAML file, then overrides
// with environment variables.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (LEAKGATE_SECURITY_MODE, ...)
//  2. YAML config file
//  3. Fail-closed defaults (strict mode, builtin patterns only)
//
// A missing file is not an error; the defaults apply. An unreadable or
// invalid file is an error: silently proceeding on a broken config
// could drop an operator's custom patterns without notice.
//
// Environment variables use the LEAKGATE_ prefix with the first
// underscore-separated token as the section:
//
//	LEAKGATE_SECURITY_MODE      -> security.mode
//	LEAKGATE_SECURITY_LOG_PATH  -> security.log_path
//	LEAKGATE_LOGGING_LEVEL      -> logging.level
func LoadWithFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			f, err := os.Open(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to open config file: %w", err)
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return nil, fmt.Errorf("failed to stat config file: %w", err)
			}
			if err := validateConfigFileProperties(info); err != nil {
				return nil, fmt.Errorf("config file validation failed: %w", err)
			}

			content, err := io.ReadAll(f)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
			}
		}
	}

	if err := k.Load(env.Provider("LEAKGATE_", ".", func(s string) string {
		// LEAKGATE_SECURITY_LOG_PATH -> security.log_path
		lower := strings.ToLower(strings.TrimPrefix(s, "LEAKGATE_"))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := NewDefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validateConfigFileProperties checks file permissions and size. Custom
// patterns and allowlists are trust-sensitive, so world-writable config
// is rejected outright.
func validateConfigFileProperties(info os.FileInfo) error {
	if runtime.GOOS != "windows" {
		perm := info.Mode().Perm()
		if perm&0o002 != 0 {
			return fmt.Errorf("config file is world-writable: %v", perm)
		}
	}
	if info.Size() > maxConfigFileSize {
		return fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}
	return nil
}

// applyDefaults restores fail-closed values for fields the file or
// environment cleared.
func applyDefaults(cfg *Config) {
	defaults := NewDefaultConfig()
	if cfg.Security.Mode == "" {
		cfg.Security.Mode = defaults.Security.Mode
	}
	if cfg.Security.LogPath == "" {
		cfg.Security.LogPath = defaults.Security.LogPath
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaults.Logging.Format
	}
}
