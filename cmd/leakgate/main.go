// Package main implements the leakgate CLI for operating the content
// security filter outside a host runtime: scanning files, inspecting
// status, and exercising mode changes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/leakgate/internal/commands"
	"github.com/fyrsmithlabs/leakgate/internal/config"
	"github.com/fyrsmithlabs/leakgate/internal/logging"
	"github.com/fyrsmithlabs/leakgate/pkg/hooks"
	"github.com/fyrsmithlabs/leakgate/pkg/secrets"
)

var (
	configPath string
	version    = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "leakgate",
	Short: "Real-time credential leak filter for chat-agent runtimes",
	Long: `leakgate intercepts outbound messages and tool-call parameters,
scans them for leaked credentials, and enforces a block/redact/warn
policy before content leaves the system.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (YAML)")
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(modeCmd)
}

// components is the wired filter stack shared by all subcommands.
type components struct {
	cfg      *config.Config
	log      *zap.Logger
	detector *secrets.Detector
	redactor *secrets.Redactor
	audit    *secrets.AuditLog
	surface  *commands.Surface
	registry *hooks.Registry
}

// build loads configuration and wires the filter stack the way a host
// runtime would: registry, detector, redactor, audit, both filters at
// critical priority.
func build() (*components, error) {
	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	custom := cfg.Security.CustomPatterns
	if len(cfg.Security.GitleaksRules) > 0 {
		imported, err := secrets.ImportGitleaksRules(cfg.Security.GitleaksRules...)
		if err != nil {
			return nil, err
		}
		custom = append(custom, imported...)
	}

	fileNames, err := secrets.LoadAllowlistFile(cfg.Security.AllowlistFile)
	if err != nil {
		return nil, err
	}
	allowlist := secrets.MergeAllowlists(cfg.Security.Allowlist, fileNames)

	registry, err := secrets.NewRegistry(custom, allowlist)
	if err != nil {
		return nil, err
	}

	detector := secrets.NewDetector(registry)
	redactor := secrets.NewRedactor(secrets.Mode(cfg.Security.Mode))
	audit := secrets.NewAuditLog(cfg.Security.LogPath)

	hookRegistry := hooks.NewRegistry()
	hookRegistry.RegisterMessageHook(hooks.PriorityCritical,
		hooks.NewMessageFilter(detector, redactor, audit, logger))
	hookRegistry.RegisterToolHook(hooks.PriorityCritical,
		hooks.NewToolFilter(detector, redactor, audit, cfg.Security.MonitoredTools, logger))

	return &components{
		cfg:      cfg,
		log:      logger,
		detector: detector,
		redactor: redactor,
		audit:    audit,
		surface:  commands.NewSurface(redactor, audit, detector, logger),
		registry: hookRegistry,
	}, nil
}
