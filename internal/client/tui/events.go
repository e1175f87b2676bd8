package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/scanboard/internal/client/models"
	"github.com/dmitrijs2005/scanboard/internal/client/pagination"
	"github.com/dmitrijs2005/scanboard/internal/client/services"
)

type eventsPage struct {
	ctx     context.Context
	svc     services.EventService
	pager   *pagination.Pager[models.Event]
	table   table.Model
	details *viewport.Model
}

func newEventsPage(ctx context.Context, svc services.EventService, pageSize int) *eventsPage {
	return &eventsPage{
		ctx:   ctx,
		svc:   svc,
		pager: pagination.NewPager[models.Event](pageSize),
		table: newTable([]table.Column{
			{Title: "ID", Width: 8},
			{Title: "Date", Width: 19},
			{Title: "Type", Width: 16},
			{Title: "Description", Width: 40},
			{Title: "IP", Width: 16},
		}, pageSize),
	}
}

func (p *eventsPage) Init() tea.Cmd {
	return p.load(p.pager.Page())
}

// load fetches page and tags the request so a newer load wins.
func (p *eventsPage) load(page int) tea.Cmd {
	seq := p.pager.Begin()
	ctx, svc, size := p.ctx, p.svc, p.pager.PageSize()
	return func() tea.Msg {
		res, err := svc.List(ctx, page, size)
		return eventsLoadedMsg{Seq: seq, Page: page, Res: res, Err: err}
	}
}

func (p *eventsPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case eventsLoadedMsg:
		if !p.pager.Complete(msg.Seq, msg.Page, msg.Res, msg.Err) {
			return p, nil
		}
		p.table.SetRows(eventRows(p.pager.Items()))
		p.table.SetCursor(0)
		if msg.Err != nil {
			return p, notifyFailure("Failed to fetch events", msg.Err)
		}
		return p, nil

	case tea.KeyMsg:
		if p.details != nil {
			switch msg.String() {
			case "esc", "enter", "q":
				p.details = nil
				return p, nil
			}
			vp, cmd := p.details.Update(msg)
			p.details = &vp
			return p, cmd
		}

		switch msg.String() {
		case "r":
			return p, p.load(p.pager.Page())
		case "right", "n":
			if next := p.pager.NextPage(); next != p.pager.Page() {
				return p, p.load(next)
			}
			return p, nil
		case "left", "p":
			if prev := p.pager.PrevPage(); prev != p.pager.Page() {
				return p, p.load(prev)
			}
			return p, nil
		case "enter":
			p.openDetails()
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

func (p *eventsPage) openDetails() {
	items := p.pager.Items()
	i := p.table.Cursor()
	if i < 0 || i >= len(items) {
		return
	}
	vp := viewport.New(80, 20)
	vp.SetContent(renderFields(items[i].Fields()))
	p.details = &vp
}

func eventRows(events []models.Event) []table.Row {
	rows := make([]table.Row, 0, len(events))
	for _, e := range events {
		typ, desc := e.Summary()
		rows = append(rows, table.Row{
			strconv.FormatInt(e.ID, 10),
			models.FormatTime(e.SourceTime),
			typ,
			truncate(strings.ReplaceAll(desc, "\n", " "), 40),
			e.IP,
		})
	}
	return rows
}

func (p *eventsPage) View(width, height int) string {
	if p.details != nil {
		p.details.Width = max(width-4, 20)
		p.details.Height = max(height-4, 5)
		title := titleStyle.Render("Event details")
		return dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, p.details.View()))
	}

	if len(p.pager.Items()) == 0 && !p.pager.Loading() {
		return mutedStyle.Render("No events") + "\n\n" + p.footer()
	}
	return p.table.View() + "\n" + p.footer()
}

func (p *eventsPage) footer() string {
	st := p.pager.State()
	return pageLine(st.CurrentPage, st.TotalPages(), st.TotalItems, "events")
}

func (p *eventsPage) Loading() bool   { return p.pager.Loading() }
func (p *eventsPage) Capturing() bool { return p.details != nil }

func (p *eventsPage) Help() string {
	if p.details != nil {
		return "↑/↓: scroll • esc: close"
	}
	return "↑/↓: select • enter: details • ←/→: page • r: refresh"
}
