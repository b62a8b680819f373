// Package config provides configuration loading for leakgate.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fyrsmithlabs/leakgate/internal/logging"
	"github.com/fyrsmithlabs/leakgate/pkg/secrets"
)

// Config is the top-level leakgate configuration. The filter consumes
// it; the host runtime owns where it comes from.
type Config struct {
	Security SecurityConfig `koanf:"security"`
	Logging  logging.Config `koanf:"logging"`
}

// SecurityConfig configures the filter core.
type SecurityConfig struct {
	// Mode is strict, normal, or permissive. Missing or invalid values
	// fall back to strict: the filter fails closed.
	Mode string `koanf:"mode"`

	// LogPath is the audit log location.
	LogPath string `koanf:"log_path"`

	// Allowlist names builtin or custom patterns to disable.
	Allowlist []string `koanf:"allowlist"`

	// AllowlistFile optionally points at a TOML file with more names
	// to disable, merged with Allowlist.
	AllowlistFile string `koanf:"allowlist_file"`

	// CustomPatterns are user-supplied detection patterns. Invalid
	// regexes fail configuration loading, never a scan.
	CustomPatterns []secrets.Pattern `koanf:"custom_patterns"`

	// GitleaksRules optionally imports rules by ID from the Gitleaks
	// default config as additional custom patterns.
	GitleaksRules []string `koanf:"gitleaks_rules"`

	// MonitoredTools are the tool names subject to parameter scanning.
	MonitoredTools []string `koanf:"monitored_tools"`
}

// NewDefaultConfig returns the fail-closed defaults: strict mode, empty
// allowlist, builtin patterns only.
func NewDefaultConfig() *Config {
	return &Config{
		Security: SecurityConfig{
			Mode:    string(secrets.ModeStrict),
			LogPath: defaultLogPath(),
		},
		Logging: logging.NewDefaultConfig(),
	}
}

// Validate checks the configuration. Custom patterns are compiled here
// via a throwaway registry so a bad regex is rejected before any event
// is processed.
func (c *Config) Validate() error {
	if _, err := secrets.ParseMode(c.Security.Mode); err != nil {
		return fmt.Errorf("security.mode: %w", err)
	}
	if c.Security.LogPath == "" {
		return fmt.Errorf("security.log_path must not be empty")
	}
	if _, err := secrets.NewRegistry(c.Security.CustomPatterns, c.Security.Allowlist); err != nil {
		return fmt.Errorf("security.custom_patterns: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// defaultLogPath places the audit log under the user state directory,
// falling back to the working directory when home is unavailable.
func defaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "leakgate-audit.jsonl"
	}
	return filepath.Join(home, ".local", "share", "leakgate", "audit.jsonl")
}
