package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/scanboard/internal/client/pagination"
	"github.com/dmitrijs2005/scanboard/internal/client/services"
)

type ipAction int

const (
	ipAdd ipAction = iota
	ipDelete
)

type ipsPage struct {
	ctx     context.Context
	svc     services.IPService
	seq     pagination.Sequence
	loading bool
	busy    int
	ips     []string
	table   table.Model
	input   textinput.Model
}

func newIPsPage(ctx context.Context, svc services.IPService) *ipsPage {
	in := textinput.New()
	in.Placeholder = "Enter IP address"
	in.CharLimit = 45
	in.Width = 40
	in.Prompt = "Add IP › "

	return &ipsPage{
		ctx:   ctx,
		svc:   svc,
		table: newTable([]table.Column{{Title: "IP Address", Width: 40}}, 12),
		input: in,
	}
}

func (p *ipsPage) Init() tea.Cmd {
	return p.load()
}

func (p *ipsPage) load() tea.Cmd {
	seq := p.seq.Next()
	p.loading = true
	ctx, svc := p.ctx, p.svc
	return func() tea.Msg {
		ips, err := svc.List(ctx)
		return ipsLoadedMsg{Seq: seq, IPs: ips, Err: err}
	}
}

func (p *ipsPage) change(action ipAction, ip string) tea.Cmd {
	p.busy++
	ctx, svc := p.ctx, p.svc
	return func() tea.Msg {
		var err error
		if action == ipAdd {
			err = svc.Add(ctx, ip)
		} else {
			err = svc.Delete(ctx, ip)
		}
		return ipsChangedMsg{Action: action, IP: ip, Err: err}
	}
}

func (p *ipsPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case ipsLoadedMsg:
		if !p.seq.IsCurrent(msg.Seq) {
			return p, nil
		}
		p.loading = false
		if msg.Err != nil {
			p.setIPs(nil)
			return p, notifyFailure("Failed to fetch IPs", msg.Err)
		}
		p.setIPs(msg.IPs)
		return p, nil

	case ipsChangedMsg:
		if p.busy > 0 {
			p.busy--
		}
		if msg.Action == ipAdd {
			if msg.Err != nil {
				return p, notifyFailure("Failed to add IP", msg.Err)
			}
			return p, tea.Batch(notifySuccess("IP added successfully"), p.load())
		}
		if msg.Err != nil {
			return p, notifyFailure("Failed to delete IP", msg.Err)
		}
		return p, tea.Batch(notifySuccess("IP deleted successfully"), p.load())

	case tea.KeyMsg:
		if p.input.Focused() {
			switch msg.String() {
			case "esc":
				p.input.Blur()
				p.input.Reset()
				return p, nil
			case "enter":
				ip := p.input.Value()
				p.input.Blur()
				p.input.Reset()
				if ip == "" {
					return p, nil
				}
				return p, p.change(ipAdd, ip)
			}
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			return p, cmd
		}

		switch msg.String() {
		case "a":
			return p, p.input.Focus()
		case "d", "delete":
			if ip := p.selected(); ip != "" {
				return p, p.change(ipDelete, ip)
			}
			return p, nil
		case "r":
			return p, p.load()
		}
	}

	// cursor blink and other non-key messages
	var inputCmd, cmd tea.Cmd
	p.input, inputCmd = p.input.Update(msg)
	p.table, cmd = p.table.Update(msg)
	return p, tea.Batch(inputCmd, cmd)
}

func (p *ipsPage) setIPs(ips []string) {
	p.ips = ips
	rows := make([]table.Row, 0, len(ips))
	for _, ip := range ips {
		rows = append(rows, table.Row{ip})
	}
	p.table.SetRows(rows)
	switch {
	case len(rows) == 0:
	case p.table.Cursor() < 0:
		// SetCursor on an empty table parks the cursor at -1
		p.table.SetCursor(0)
	case p.table.Cursor() >= len(rows):
		p.table.SetCursor(len(rows) - 1)
	}
}

func (p *ipsPage) selected() string {
	i := p.table.Cursor()
	if i < 0 || i >= len(p.ips) {
		return ""
	}
	return p.ips[i]
}

func (p *ipsPage) View(width, height int) string {
	s := p.input.View() + "\n\n"
	if len(p.ips) == 0 && !p.loading {
		return s + mutedStyle.Render("No monitored IPs")
	}
	return s + p.table.View()
}

func (p *ipsPage) Loading() bool   { return p.loading || p.busy > 0 }
func (p *ipsPage) Capturing() bool { return p.input.Focused() }

func (p *ipsPage) Help() string {
	if p.input.Focused() {
		return "enter: add • esc: cancel"
	}
	return "a: add • d: delete selected • r: refresh"
}
