package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/scanboard/internal/client/models"
	"github.com/dmitrijs2005/scanboard/internal/client/pagination"
	"github.com/dmitrijs2005/scanboard/internal/client/services"
)

type scanAction int

const (
	scanGet scanAction = iota
	scanStart
	scanStartHistory
	scanStop
	scanStopAll
	scanLastStarted
	scanLastCompleted
	scanLastActive
)

// success and failure notifications per action
var scanTexts = map[scanAction][2]string{
	scanGet:           {"Fetched scanning info", "Failed to fetch scanning info"},
	scanStart:         {"Scanning started", "Failed to start scanning"},
	scanStartHistory:  {"Scanning started", "Failed to start scanning"},
	scanStop:          {"", "Failed to stop scanning"},
	scanStopAll:       {"", "Failed to stop all active scannings"},
	scanLastStarted:   {"Fetched last started scanning", "Failed to fetch last started scanning"},
	scanLastCompleted: {"Fetched last completed scanning", "Failed to fetch last completed scanning"},
	scanLastActive:    {"Fetched last active scanning", "Failed to fetch last active scanning"},
}

type scanningPage struct {
	ctx     context.Context
	svc     services.ScanService
	input   textinput.Model
	seq     pagination.Sequence
	loading bool
	info    *models.ScanInfo

	active      *pagination.Pager[models.ScanProgress]
	activeShown bool
	table       table.Model
	selected    *models.ScanProgress
}

func newScanningPage(ctx context.Context, svc services.ScanService, pageSize int) *scanningPage {
	in := textinput.New()
	in.Placeholder = "Scan ID"
	in.CharLimit = 20
	in.Width = 20
	in.Prompt = "Scan ID › "

	return &scanningPage{
		ctx:    ctx,
		svc:    svc,
		input:  in,
		active: pagination.NewPager[models.ScanProgress](pageSize),
		table: newTable([]table.Column{
			{Title: "ID", Width: 8},
			{Title: "Start Date", Width: 19},
			{Title: "Progress", Width: 10},
			{Title: "Processed", Width: 10},
			{Title: "Events", Width: 8},
		}, pageSize),
	}
}

func (p *scanningPage) Init() tea.Cmd {
	return p.loadActive(p.active.Page())
}

// mutates reports whether action changes server state. Their outcome is
// always reported, even when a newer command has superseded the view.
func (a scanAction) mutates() bool {
	switch a {
	case scanStart, scanStartHistory, scanStop, scanStopAll:
		return true
	}
	return false
}

func (p *scanningPage) run(action scanAction) tea.Cmd {
	id := strings.TrimSpace(p.input.Value())
	if (action == scanGet || action == scanStop) && id == "" {
		return notify(noticeError, "Please enter a Scan ID")
	}

	seq := p.seq.Next()
	p.loading = true
	ctx, svc := p.ctx, p.svc
	return func() tea.Msg {
		var (
			info models.ScanInfo
			err  error
		)
		switch action {
		case scanGet:
			info, err = svc.Get(ctx, id)
		case scanStart:
			info, err = svc.Start(ctx, false)
		case scanStartHistory:
			info, err = svc.Start(ctx, true)
		case scanStop:
			info, err = svc.Stop(ctx, id)
		case scanStopAll:
			info, err = svc.StopAll(ctx)
		case scanLastStarted:
			info, err = svc.LastStarted(ctx)
		case scanLastCompleted:
			info, err = svc.LastCompleted(ctx)
		case scanLastActive:
			info, err = svc.LastActive(ctx)
		}
		return scanResultMsg{Seq: seq, Action: action, Info: info, Err: err}
	}
}

func (p *scanningPage) loadActive(page int) tea.Cmd {
	seq := p.active.Begin()
	p.activeShown = true
	ctx, svc, size := p.ctx, p.svc, p.active.PageSize()
	return func() tea.Msg {
		res, err := svc.ListActive(ctx, page, size)
		return activeScansLoadedMsg{Seq: seq, Page: page, Res: res, Err: err}
	}
}

func (p *scanningPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case scanResultMsg:
		texts := scanTexts[msg.Action]
		if !p.seq.IsCurrent(msg.Seq) {
			if !msg.Action.mutates() {
				return p, nil
			}
			if msg.Err != nil {
				return p, notifyFailure(texts[1], msg.Err)
			}
			return p, notifySuccess(scanSuccessText(msg.Action, texts[0], msg.Info))
		}
		p.loading = false
		if msg.Err != nil {
			p.info = nil
			return p, notifyFailure(texts[1], msg.Err)
		}
		info := msg.Info
		p.info = &info
		return p, notifySuccess(scanSuccessText(msg.Action, texts[0], info))

	case activeScansLoadedMsg:
		if !p.active.Complete(msg.Seq, msg.Page, msg.Res, msg.Err) {
			return p, nil
		}
		p.table.SetRows(progressRows(p.active.Items()))
		p.table.SetCursor(0)
		if msg.Err != nil {
			return p, notifyFailure("Failed to fetch all active scannings", msg.Err)
		}
		if msg.Res.Message != "" {
			return p, notifySuccess(msg.Res.Message)
		}
		return p, notifySuccess("Fetched all active scannings")

	case tea.KeyMsg:
		if p.selected != nil {
			switch msg.String() {
			case "esc", "enter", "q":
				p.selected = nil
			}
			return p, nil
		}

		if p.input.Focused() {
			switch msg.String() {
			case "esc", "enter":
				p.input.Blur()
				return p, nil
			}
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			return p, cmd
		}

		switch msg.String() {
		case "i":
			return p, p.input.Focus()
		case "g":
			return p, p.run(scanGet)
		case "s":
			return p, p.run(scanStart)
		case "S":
			return p, p.run(scanStartHistory)
		case "x":
			return p, p.run(scanStop)
		case "X":
			return p, p.run(scanStopAll)
		case "l":
			return p, p.run(scanLastStarted)
		case "c":
			return p, p.run(scanLastCompleted)
		case "v":
			return p, p.run(scanLastActive)
		case "A":
			return p, p.loadActive(p.active.Page())
		case "right", "n":
			if next := p.active.NextPage(); p.activeShown && next != p.active.Page() {
				return p, p.loadActive(next)
			}
			return p, nil
		case "left", "p":
			if prev := p.active.PrevPage(); p.activeShown && prev != p.active.Page() {
				return p, p.loadActive(prev)
			}
			return p, nil
		case "enter":
			items := p.active.Items()
			if i := p.table.Cursor(); i >= 0 && i < len(items) {
				sel := items[i]
				p.selected = &sel
			}
			return p, nil
		}
	}

	// cursor blink and other non-key messages
	var inputCmd, cmd tea.Cmd
	p.input, inputCmd = p.input.Update(msg)
	p.table, cmd = p.table.Update(msg)
	return p, tea.Batch(inputCmd, cmd)
}

// scanSuccessText mirrors the server: stop commands show its answer, start
// appends it.
func scanSuccessText(action scanAction, base string, info models.ScanInfo) string {
	switch action {
	case scanStop, scanStopAll:
		if info.Text != "" {
			return info.Text
		}
		return "Done"
	case scanStart, scanStartHistory:
		if info.Text != "" {
			return base + ". " + info.Text
		}
	}
	return base
}

func progressRows(items []models.ScanProgress) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, s := range items {
		rows = append(rows, table.Row{
			strconv.FormatInt(s.ID, 10),
			models.FormatTime(s.StartDate),
			fmt.Sprintf("%.0f%%", s.Percent()),
			fmt.Sprintf("%d/%d", s.ProcessedIpsCount, s.TotalIpsCount),
			strconv.Itoa(s.EventsCount),
		})
	}
	return rows
}

func renderProgress(p models.ScanProgress) string {
	bar := fmt.Sprintf("%s %.0f%%", renderProgressBar(p.Percent(), 30), p.Percent())
	return bar + "\n\n" + renderFields(p.Fields())
}

func renderScanInfo(info models.ScanInfo) string {
	if p, ok := info.Progress(); ok {
		return renderProgress(p)
	}
	if info.Data != nil {
		return services.PrettyJSON(info.Data)
	}
	if info.Text != "" {
		return info.Text
	}
	return mutedStyle.Render("No data")
}

func (p *scanningPage) View(width, height int) string {
	if p.selected != nil {
		title := titleStyle.Render(fmt.Sprintf("Scan %d", p.selected.ID))
		return dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, renderProgress(*p.selected)))
	}

	var b strings.Builder
	b.WriteString(p.input.View())
	b.WriteString("\n\n")
	if p.info != nil {
		b.WriteString(renderScanInfo(*p.info))
		b.WriteString("\n\n")
	}
	if p.activeShown {
		b.WriteString(labelStyle.Render("Active scans"))
		b.WriteString("\n")
		if msg := p.active.Message(); msg != "" {
			b.WriteString(mutedStyle.Render(msg))
		} else if len(p.active.Items()) == 0 && !p.active.Loading() {
			b.WriteString(mutedStyle.Render("No active scans"))
		} else {
			st := p.active.State()
			b.WriteString(p.table.View())
			b.WriteString("\n")
			b.WriteString(pageLine(st.CurrentPage, st.TotalPages(), st.TotalItems, "scans"))
		}
	}
	return b.String()
}

func (p *scanningPage) Loading() bool   { return p.loading || p.active.Loading() }
func (p *scanningPage) Capturing() bool { return p.input.Focused() || p.selected != nil }

func (p *scanningPage) Help() string {
	switch {
	case p.selected != nil:
		return "esc: close"
	case p.input.Focused():
		return "enter/esc: done"
	}
	return "i: scan id • g: get • s/S: start (S with history) • x: stop • X: stop all • l/c/v: last started/completed/active • A: active scans • ←/→: page"
}
