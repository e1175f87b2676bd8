package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/scanboard/internal/client/config"
	"github.com/dmitrijs2005/scanboard/internal/common"
	"github.com/spf13/cobra"
)

// runner opens the App for a command from the flags on the root command.
type runner struct {
	flags *config.Flags
}

func (r *runner) open(cmd *cobra.Command) (*App, error) {
	cfg, err := config.Load(r.flags.ConfigPath, r.flags)
	if err != nil {
		return nil, err
	}
	return NewApp(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
}

// run adapts fn to a cobra RunE; the App is closed when fn returns.
func (r *runner) run(fn func(ctx context.Context, a *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := r.open(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd.Context(), a, args)
	}
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	r := &runner{}
	rootCmd := &cobra.Command{
		Use:   common.AppName,
		Short: "Terminal dashboard for the security scanning API",
		Long: `scanboard is a terminal dashboard for a security scanning service.
Without a subcommand it opens the interactive dashboard; the subcommands run
a single operation and print the result.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	r.flags = config.BindFlags(rootCmd.PersistentFlags())
	rootCmd.RunE = r.run(func(ctx context.Context, a *App, _ []string) error {
		return a.RunDashboard(ctx)
	})

	rootCmd.AddCommand(
		newLoginCommand(r),
		newLogoutCommand(r),
		newStatusCommand(r),
		newEventsCommand(r),
		newIPsCommand(r),
		newScanCommand(r),
		newHealthCommand(r),
		newDevCommand(r),
		newVersionCommand(),
	)
	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}
