package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the tracked upstream files against the saved checksums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			layout, err := layoutFromFlags(cmd)
			if err != nil {
				return err
			}
			return c.app.Verify(layout)
		},
	}
}
