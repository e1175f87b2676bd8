package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/scanboard/internal/client/services"
	"github.com/spf13/cobra"
)

func newHealthCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Print the server health document",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, _ []string) error {
			h, err := a.monitoringService.Health(ctx)
			if err != nil {
				return failed("Failed to fetch health info", err)
			}
			fmt.Fprintln(a.out, services.PrettyJSON(h))
			return nil
		}),
	}
}

func newDevCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Developer endpoints",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "start-scanning",
			Short: "Ask the server to scan every known IP",
			Args:  cobra.NoArgs,
			RunE: r.run(func(ctx context.Context, a *App, _ []string) error {
				if err := a.requireLogin(); err != nil {
					return err
				}
				text, err := a.devService.StartScanningIPs(ctx)
				if err != nil {
					return failed("Failed to start scanning", err)
				}
				if text == "" {
					text = "Scanning started"
				}
				printSuccess(a.out, text)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "scan-ip IP",
			Short: "Scan one IP and print the result",
			Args:  cobra.ExactArgs(1),
			RunE: r.run(func(ctx context.Context, a *App, args []string) error {
				if err := a.requireLogin(); err != nil {
					return err
				}
				res, err := a.devService.ScanByIP(ctx, args[0])
				if err != nil {
					return failed("Failed to scan IP", err)
				}
				fmt.Fprintln(a.out, services.PrettyJSON(res))
				return nil
			}),
		},
	)
	return cmd
}
