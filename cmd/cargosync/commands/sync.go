package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Regenerate the downstream workspace manifests and lockfile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			layout, err := layoutFromFlags(cmd)
			if err != nil {
				return err
			}
			return c.app.Sync(cmd.Context(), layout)
		},
	}
}
