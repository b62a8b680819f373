package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
)

// modeCmd validates and applies a security mode change through the
// command surface, which records the change in the audit log. Inside a
// host runtime the same surface backs the chat-facing mode command.
var modeCmd = &cobra.Command{
	Use:   "mode <strict|normal|permissive>",
	Short: "Switch the enforcement mode",
	Args:  cobra.ExactArgs(1),
	RunE:  runMode,
}

func runMode(cmd *cobra.Command, args []string) error {
	comps, err := build()
	if err != nil {
		return err
	}
	defer comps.log.Sync() //nolint:errcheck

	mode, err := comps.surface.SetMode(args[0], actorName())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "mode set to %s: %s\n", mode, mode.Describe())
	return nil
}

// actorName identifies who changed the mode for the audit trail.
func actorName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if host, err := os.Hostname(); err == nil {
		return host
	}
	return "operator"
}
