package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/scanboard/internal/client/models"
	"github.com/dmitrijs2005/scanboard/internal/client/pagination"
	"github.com/spf13/cobra"
)

// scanCall is one scanning command that answers with a ScanInfo.
type scanCall struct {
	use     string
	short   string
	args    cobra.PositionalArgs
	failure string
	call    func(ctx context.Context, a *App, args []string) (models.ScanInfo, error)
	// success is printed before the answer; empty prints only the answer.
	success string
}

func newScanCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Control scanning jobs",
	}

	var history bool
	calls := []scanCall{
		{
			use: "get ID", short: "Show the progress of a scan", args: cobra.ExactArgs(1),
			failure: "Failed to fetch scanning info",
			call: func(ctx context.Context, a *App, args []string) (models.ScanInfo, error) {
				return a.scanService.Get(ctx, args[0])
			},
		},
		{
			use: "start", short: "Start scanning the monitored IPs", args: cobra.NoArgs,
			failure: "Failed to start scanning", success: "Scanning started",
			call: func(ctx context.Context, a *App, _ []string) (models.ScanInfo, error) {
				return a.scanService.Start(ctx, history)
			},
		},
		{
			use: "stop ID", short: "Stop a scan", args: cobra.ExactArgs(1),
			failure: "Failed to stop scanning",
			call: func(ctx context.Context, a *App, args []string) (models.ScanInfo, error) {
				return a.scanService.Stop(ctx, args[0])
			},
		},
		{
			use: "stop-all", short: "Stop every active scan", args: cobra.NoArgs,
			failure: "Failed to stop all active scannings",
			call: func(ctx context.Context, a *App, _ []string) (models.ScanInfo, error) {
				return a.scanService.StopAll(ctx)
			},
		},
		{
			use: "last-started", short: "Show the most recently started scan", args: cobra.NoArgs,
			failure: "Failed to fetch last started scanning",
			call: func(ctx context.Context, a *App, _ []string) (models.ScanInfo, error) {
				return a.scanService.LastStarted(ctx)
			},
		},
		{
			use: "last-completed", short: "Show the most recently completed scan", args: cobra.NoArgs,
			failure: "Failed to fetch last completed scanning",
			call: func(ctx context.Context, a *App, _ []string) (models.ScanInfo, error) {
				return a.scanService.LastCompleted(ctx)
			},
		},
		{
			use: "last-active", short: "Show the most recently active scan", args: cobra.NoArgs,
			failure: "Failed to fetch last active scanning",
			call: func(ctx context.Context, a *App, _ []string) (models.ScanInfo, error) {
				return a.scanService.LastActive(ctx)
			},
		},
	}

	for _, c := range calls {
		c := c
		sub := &cobra.Command{
			Use:   c.use,
			Short: c.short,
			Args:  c.args,
			RunE: r.run(func(ctx context.Context, a *App, args []string) error {
				return a.runScanCall(ctx, c, args)
			}),
		}
		if c.use == "start" {
			sub.Flags().BoolVar(&history, "history", false, "rescan with history")
		}
		cmd.AddCommand(sub)
	}

	var pf pageFlags
	active := &cobra.Command{
		Use:   "active",
		Short: "List active scans",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, _ []string) error {
			return a.listActiveScans(ctx, pf)
		}),
	}
	pf.bind(active)
	cmd.AddCommand(active)

	return cmd
}

func (a *App) runScanCall(ctx context.Context, c scanCall, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	info, err := c.call(ctx, a, args)
	if err != nil {
		return failed(c.failure, err)
	}
	if c.success != "" {
		printSuccess(a.out, c.success)
		if info.Empty() {
			return nil
		}
	}
	printScanInfo(a.out, info)
	return nil
}

func (a *App) listActiveScans(ctx context.Context, pf pageFlags) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	page, limit := pf.resolve(a)
	res, err := a.scanService.ListActive(ctx, page, limit)
	if err != nil {
		return failed("Failed to fetch all active scannings", err)
	}

	switch {
	case res.Message != "":
		fmt.Fprintln(a.out, res.Message)
		return nil
	case len(res.Items) == 0:
		fmt.Fprintln(a.out, mutedStyle.Render("No active scans"))
	default:
		printTable(a.out, []string{"ID", "START DATE", "PROGRESS", "PROCESSED", "EVENTS"}, progressRows(res.Items))
	}

	printPageLine(a.out, pagination.State{
		CurrentPage:  page,
		ItemsPerPage: limit,
		TotalItems:   res.Total,
		More:         res.More,
	}, "scans")
	return nil
}
