package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/scanboard/internal/client/client"
	"github.com/dmitrijs2005/scanboard/internal/client/models"
	"github.com/dmitrijs2005/scanboard/internal/client/pagination"
	"github.com/dmitrijs2005/scanboard/internal/client/services"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// commandError is what a command returns when the API call failed. Its text
// is the server's explanation; errors.Is still sees the cause.
type commandError struct {
	action string
	err    error
	// login reports rejected credentials as the server phrased them.
	login bool
}

func failed(action string, err error) error {
	return &commandError{action: action, err: err}
}

func (e *commandError) Error() string {
	if !e.login && services.IsUnauthorized(e.err) {
		return e.action + ": unauthorized, please log in again"
	}
	return e.action + ": " + client.Message(e.err)
}

func (e *commandError) Unwrap() error { return e.err }

func printSuccess(w io.Writer, text string) {
	fmt.Fprintln(w, successStyle.Render(text))
}

func printTable(w io.Writer, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	cells := make([]string, len(header))
	for i, h := range header {
		cells[i] = headingStyle.Render(h)
	}
	fmt.Fprintln(tw, strings.Join(cells, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	_ = tw.Flush()
}

func printFields(w io.Writer, fields []models.Field) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range fields {
		fmt.Fprintf(tw, "%s\t%s\n", f.Label, strings.ReplaceAll(f.Value, "\n", " "))
	}
	_ = tw.Flush()
}

func printPageLine(w io.Writer, st pagination.State, noun string) {
	pages := st.TotalPages()
	if pages < 1 {
		pages = 1
	}
	more := ""
	if st.More {
		more = "+"
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("Page %d of %d%s • %d %s", st.CurrentPage, pages, more, st.TotalItems, noun)))
}

func printScanInfo(w io.Writer, info models.ScanInfo) {
	if p, ok := info.Progress(); ok {
		fmt.Fprintf(w, "Progress: %.0f%%\n", p.Percent())
		printFields(w, p.Fields())
		return
	}
	if info.Data != nil {
		fmt.Fprintln(w, services.PrettyJSON(info.Data))
		return
	}
	if info.Text != "" {
		fmt.Fprintln(w, info.Text)
		return
	}
	fmt.Fprintln(w, mutedStyle.Render("No data"))
}

func eventRows(events []models.Event) [][]string {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		typ, desc := e.Summary()
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			models.FormatTime(e.SourceTime),
			typ,
			e.IP,
			truncate(strings.ReplaceAll(desc, "\n", " "), 60),
		})
	}
	return rows
}

func progressRows(items []models.ScanProgress) [][]string {
	rows := make([][]string, 0, len(items))
	for _, s := range items {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			models.FormatTime(s.StartDate),
			fmt.Sprintf("%.0f%%", s.Percent()),
			fmt.Sprintf("%d/%d", s.ProcessedIpsCount, s.TotalIpsCount),
			strconv.Itoa(s.EventsCount),
		})
	}
	return rows
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 3 || len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
