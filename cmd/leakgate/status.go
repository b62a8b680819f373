package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd prints the current mode, its enforcement description, the
// audit log path, and the active pattern inventory.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current mode, audit path, and active patterns",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	comps, err := build()
	if err != nil {
		return err
	}
	defer comps.log.Sync() //nolint:errcheck

	report := comps.surface.Status()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "mode:        %s (%s)\n", report.Mode, report.Enforcement)
	fmt.Fprintf(out, "audit log:   %s\n", report.AuditPath)
	fmt.Fprintf(out, "patterns:    %d active\n", len(report.Patterns))
	for _, name := range report.Patterns {
		fmt.Fprintf(out, "  - %s\n", name)
	}
	return nil
}
