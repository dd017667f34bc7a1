// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"github.com/spf13/cobra"

	"github.com/bartekus/commitscope/internal/tasks"
)

// NewContributorsCommand returns the `commitscope contributors` command.
func NewContributorsCommand() *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "contributors",
		Short: "Write each repository's commits grouped by author",
		Long: `Switches every roster repository to its configured branch (see --checkout),
reads the full history and writes <repo>.json next to the working copy:
authors ranked by commit count, each with their commits as {date, title}
in chronological order. Repositories without commits are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			task := tasks.NewContributors(a.extractor(a.cfg.Checkout), a.layout, a.logger)
			return a.runBatch(cmd, task, flags)
		},
	}
	flags.register(cmd)

	return cmd
}
