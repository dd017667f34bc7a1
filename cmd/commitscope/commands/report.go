// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitscope/internal/runner"
)

// NewReportCommand returns the `commitscope report` command.
func NewReportCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the results of the last run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			last, err := a.store.ReadLastRun()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(last)
			}

			if last == nil {
				_, _ = fmt.Fprintln(out, "No run state found.")
				return nil
			}

			_, _ = fmt.Fprintf(out, "Command: %s\nStatus: %s\n", last.Task, last.Status)
			runner.PrintSummary(out, last)
			if failed := last.FailedKeys(); len(failed) > 0 {
				_, _ = fmt.Fprintln(out, "Failed:")
				for _, k := range failed {
					_, _ = fmt.Fprintf(out, "  - %s\n", k)
				}
				_, _ = fmt.Fprintf(out, "Retry with: commitscope %s --only-failed\n", commandFor(last.Task))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output the last run as JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Clear run state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.store.Reset(); err != nil {
				return err
			}
			a.logger.Info().Str("dir", a.store.Dir()).Msg("Run state cleared")
			return nil
		},
	})

	return cmd
}

// commandFor maps a task ID back to the command that runs it.
func commandFor(task string) string {
	if task == "commits" {
		return "extract"
	}
	return task
}
