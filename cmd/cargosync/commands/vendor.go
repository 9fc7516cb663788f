package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newVendorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vendor",
		Short: "Sync, revendor all third-party crates and rewrite the vendoring config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			layout, err := layoutFromFlags(cmd)
			if err != nil {
				return err
			}
			return c.app.Vendor(cmd.Context(), layout)
		},
	}
}
