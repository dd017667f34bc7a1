// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitscope - extracts commit history from a roster of team repositories and reports it per contributor.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitscope/internal/config"
)

// version is overridden at build time with -ldflags "-X ...commands.version=...".
var version = ""

// NewRootCmd constructs the commitscope root Cobra command.
func NewRootCmd() *cobra.Command {
	v := version
	if v == "" {
		v = os.Getenv("COMMITSCOPE_VERSION")
	}
	if v == "" {
		v = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:   "commitscope",
		Short: "Commit history extraction for team repositories",
		Long: `Commitscope walks a roster of team repositories, reads every commit with git
and writes a JSON report next to each working copy.

Repositories are processed team by team. A failing repository is recorded and
the batch moves on; the exit code is 2 when any repository failed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of commitscope",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "commitscope version %s\n", v)
		},
	})

	cmd.AddCommand(NewExtractCommand())
	cmd.AddCommand(NewContributorsCommand())
	cmd.AddCommand(NewGraphCommand())
	cmd.AddCommand(NewReportCommand())

	return cmd
}
