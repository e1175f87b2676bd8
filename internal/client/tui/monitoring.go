package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/scanboard/internal/client/pagination"
	"github.com/dmitrijs2005/scanboard/internal/client/services"
)

type monitoringPage struct {
	ctx     context.Context
	svc     services.MonitoringService
	seq     pagination.Sequence
	loading bool
	health  any
	view    viewport.Model
}

func newMonitoringPage(ctx context.Context, svc services.MonitoringService) *monitoringPage {
	return &monitoringPage{ctx: ctx, svc: svc, view: viewport.New(80, 20)}
}

// Init does nothing: health is fetched on request.
func (p *monitoringPage) Init() tea.Cmd { return nil }

func (p *monitoringPage) fetch() tea.Cmd {
	seq := p.seq.Next()
	p.loading = true
	ctx, svc := p.ctx, p.svc
	return func() tea.Msg {
		h, err := svc.Health(ctx)
		return healthLoadedMsg{Seq: seq, Health: h, Err: err}
	}
}

func (p *monitoringPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case healthLoadedMsg:
		if !p.seq.IsCurrent(msg.Seq) {
			return p, nil
		}
		p.loading = false
		if msg.Err != nil {
			p.health = nil
			p.view.SetContent("")
			return p, notifyFailure("Failed to fetch health info", msg.Err)
		}
		p.health = msg.Health
		p.view.SetContent(services.PrettyJSON(msg.Health))
		p.view.GotoTop()
		return p, notifySuccess("Fetched health info")

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "r", "g":
			return p, p.fetch()
		}
	}

	var cmd tea.Cmd
	p.view, cmd = p.view.Update(msg)
	return p, cmd
}

func (p *monitoringPage) View(width, height int) string {
	if p.health == nil {
		return mutedStyle.Render("Press enter to get health info")
	}
	p.view.Width = max(width, 20)
	p.view.Height = max(height, 5)
	return p.view.View()
}

func (p *monitoringPage) Loading() bool   { return p.loading }
func (p *monitoringPage) Capturing() bool { return false }
func (p *monitoringPage) Help() string    { return "enter: get health info • ↑/↓: scroll" }
