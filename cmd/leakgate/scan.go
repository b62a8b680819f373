package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/leakgate/pkg/hooks"
)

// scanCmd runs content through the message filter and reports the
// decision. Exit code 1 signals a block so shell pipelines can gate on
// the outcome.
var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Scan a file or stdin through the message filter",
	Long: `Scan content through the message filter under the configured mode.

Examples:
  # Scan a file
  leakgate scan .env

  # Scan from stdin
  cat transcript.txt | leakgate scan -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	comps, err := build()
	if err != nil {
		return err
	}
	defer comps.log.Sync() //nolint:errcheck

	var content []byte
	if len(args) == 0 || args[0] == "-" {
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	decision, err := comps.registry.DispatchMessage(context.Background(), hooks.MessageEvent{
		Recipient: "scan",
		Content:   string(content),
	})
	if err != nil {
		return err
	}

	switch {
	case decision == nil:
		fmt.Fprintf(cmd.OutOrStdout(), "clean: content passes under %s mode\n", comps.redactor.Mode())
		return nil
	case decision.Cancel:
		fmt.Fprintf(cmd.ErrOrStderr(), "blocked: %s\n", decision.Reason)
		os.Exit(1)
		return nil
	default:
		fmt.Fprintln(cmd.OutOrStdout(), decision.Content)
		fmt.Fprintf(cmd.ErrOrStderr(), "redacted: %s\n", decision.Reason)
		return nil
	}
}
