// Package commands implements the CLI commands for the cargosync tool.
package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.trai.ch/cargosync/internal/build"
	"go.trai.ch/cargosync/internal/core/domain"
)

// CLI represents the command line interface for cargosync.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Sync(ctx context.Context, layout domain.Layout) error
	Vendor(ctx context.Context, layout domain.Layout) error
	Verify(layout domain.Layout) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "cargosync",
		Short:         "Keep a downstream cargo workspace in sync with its upstream source tree",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("root", "r", ".", "Upstream source tree root")
	rootCmd.PersistentFlags().StringP("overlay", "o", domain.OverlayDirName, "Downstream overlay directory name")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newSyncCmd())
	rootCmd.AddCommand(c.newVendorCmd())
	rootCmd.AddCommand(c.newVerifyCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// layoutFromFlags resolves the workspace layout from the persistent flags.
func layoutFromFlags(cmd *cobra.Command) (domain.Layout, error) {
	root, _ := cmd.Flags().GetString("root")
	overlay, _ := cmd.Flags().GetString("overlay")

	abs, err := filepath.Abs(root)
	if err != nil {
		return domain.Layout{}, err
	}
	return domain.NewLayout(abs, overlay), nil
}
