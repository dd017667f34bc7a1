// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"github.com/spf13/cobra"

	"github.com/bartekus/commitscope/internal/graphviz"
	"github.com/bartekus/commitscope/internal/tasks"
)

// NewGraphCommand returns the `commitscope graph` command.
func NewGraphCommand() *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render each repository's branch graph as <repo>.svg",
		Long: `Runs the graph command (--graph-command, default "git-graph --svg") inside every
roster repository and stores its output next to the working copy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			renderer := graphviz.New(a.git, a.cfg.GraphCommand, a.cfg.GraphTimeout, a.logger)
			return a.runBatch(cmd, tasks.NewGraph(renderer, a.layout), flags)
		},
	}
	flags.register(cmd)

	return cmd
}
