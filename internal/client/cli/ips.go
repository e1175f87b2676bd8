package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newIPsCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ips",
		Short: "Manage the monitored IP addresses",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List monitored IPs",
			Args:  cobra.NoArgs,
			RunE: r.run(func(ctx context.Context, a *App, _ []string) error {
				return a.listIPs(ctx)
			}),
		},
		&cobra.Command{
			Use:   "add IP...",
			Short: "Add IPs to the monitored set",
			Args:  cobra.MinimumNArgs(1),
			RunE: r.run(func(ctx context.Context, a *App, args []string) error {
				if err := a.requireLogin(); err != nil {
					return err
				}
				if err := a.ipService.Add(ctx, args...); err != nil {
					return failed("Failed to add IP", err)
				}
				printSuccess(a.out, plural(len(args), "IP added successfully", "IPs added successfully"))
				return nil
			}),
		},
		&cobra.Command{
			Use:     "delete IP...",
			Aliases: []string{"rm"},
			Short:   "Remove IPs from the monitored set",
			Args:    cobra.MinimumNArgs(1),
			RunE: r.run(func(ctx context.Context, a *App, args []string) error {
				if err := a.requireLogin(); err != nil {
					return err
				}
				if err := a.ipService.Delete(ctx, args...); err != nil {
					return failed("Failed to delete IP", err)
				}
				printSuccess(a.out, plural(len(args), "IP deleted successfully", "IPs deleted successfully"))
				return nil
			}),
		},
	)
	return cmd
}

func (a *App) listIPs(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	ips, err := a.ipService.List(ctx)
	if err != nil {
		return failed("Failed to fetch IPs", err)
	}
	if len(ips) == 0 {
		fmt.Fprintln(a.out, mutedStyle.Render("No monitored IPs"))
		return nil
	}
	for _, ip := range ips {
		fmt.Fprintln(a.out, ip)
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
