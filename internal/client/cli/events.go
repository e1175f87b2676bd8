package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/scanboard/internal/client/pagination"
	"github.com/spf13/cobra"
)

// pageFlags are the --page/--limit flags of list commands.
type pageFlags struct {
	page  int
	limit int
}

func (f *pageFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.page, "page", "p", 1, "page number, starting at 1")
	cmd.Flags().IntVarP(&f.limit, "limit", "l", 0, "items per page (default page_size)")
}

func (f pageFlags) resolve(a *App) (page, limit int) {
	limit = f.limit
	if limit <= 0 {
		limit = a.config.PageSize
	}
	return f.page, limit
}

func newEventsCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Browse security events",
	}

	var (
		pf      pageFlags
		details bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List one page of events",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, _ []string) error {
			return a.listEvents(ctx, pf, details)
		}),
	}
	pf.bind(list)
	list.Flags().BoolVarP(&details, "details", "d", false, "print every field of each event")

	cmd.AddCommand(list)
	return cmd
}

func (a *App) listEvents(ctx context.Context, pf pageFlags, details bool) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	page, limit := pf.resolve(a)
	res, err := a.eventService.List(ctx, page, limit)
	if err != nil {
		return failed("Failed to fetch events", err)
	}

	if len(res.Items) == 0 {
		fmt.Fprintln(a.out, mutedStyle.Render("No events"))
	} else if details {
		for i, e := range res.Items {
			if i > 0 {
				fmt.Fprintln(a.out)
			}
			fmt.Fprintln(a.out, headingStyle.Render(fmt.Sprintf("Event %d", e.ID)))
			printFields(a.out, e.Fields())
		}
	} else {
		printTable(a.out, []string{"ID", "DATE", "TYPE", "IP", "DESCRIPTION"}, eventRows(res.Items))
	}

	printPageLine(a.out, pagination.State{
		CurrentPage:  page,
		ItemsPerPage: limit,
		TotalItems:   res.Total,
		More:         res.More,
	}, "events")
	return nil
}
