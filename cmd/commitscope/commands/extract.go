// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"github.com/spf13/cobra"

	"github.com/bartekus/commitscope/internal/tasks"
)

// NewExtractCommand returns the `commitscope extract` command.
func NewExtractCommand() *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Write every commit of each repository as {time, author, title}",
		Long: `Reads the full history (all refs) of every roster repository without switching
branches and writes <repo>.json next to the working copy, in log order.
A repository without commits gets an empty list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			return a.runBatch(cmd, tasks.NewCommits(a.extractor(false), a.layout), flags)
		},
	}
	flags.register(cmd)

	return cmd
}
