package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/scanboard/internal/client/pagination"
	"github.com/dmitrijs2005/scanboard/internal/client/services"
)

type devAction int

const (
	devStartScanning devAction = iota
	devScanIP
)

type devPage struct {
	ctx     context.Context
	svc     services.DevService
	seq     pagination.Sequence
	loading bool
	input   textinput.Model
	result  any
	view    viewport.Model
}

func newDevPage(ctx context.Context, svc services.DevService) *devPage {
	in := textinput.New()
	in.Placeholder = "Enter IP address"
	in.CharLimit = 45
	in.Width = 40
	in.Prompt = "Scan IP › "

	return &devPage{ctx: ctx, svc: svc, input: in, view: viewport.New(80, 20)}
}

func (p *devPage) Init() tea.Cmd { return nil }

func (p *devPage) run(action devAction, ip string) tea.Cmd {
	seq := p.seq.Next()
	p.loading = true
	ctx, svc := p.ctx, p.svc
	return func() tea.Msg {
		m := devResultMsg{Seq: seq, Action: action}
		if action == devStartScanning {
			m.Text, m.Err = svc.StartScanningIPs(ctx)
		} else {
			m.Result, m.Err = svc.ScanByIP(ctx, ip)
		}
		return m
	}
}

func (p *devPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case devResultMsg:
		current := p.seq.IsCurrent(msg.Seq)
		if current {
			p.loading = false
		}
		// a start request is reported even after a later scan superseded it
		if msg.Action == devStartScanning {
			if msg.Err != nil {
				return p, notifyFailure("Failed to start scanning", msg.Err)
			}
			text := msg.Text
			if text == "" {
				text = "Scanning started"
			}
			return p, notifySuccess(text)
		}
		if !current {
			return p, nil
		}
		if msg.Err != nil {
			p.result = nil
			return p, notifyFailure("Failed to scan IP", msg.Err)
		}
		p.result = msg.Result
		p.view.SetContent(services.PrettyJSON(msg.Result))
		p.view.GotoTop()
		return p, notifySuccess("Scan completed")

	case tea.KeyMsg:
		if p.input.Focused() {
			switch msg.String() {
			case "esc":
				p.input.Blur()
				return p, nil
			case "enter":
				p.input.Blur()
				if p.input.Value() == "" {
					return p, nil
				}
				return p, p.run(devScanIP, p.input.Value())
			}
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			return p, cmd
		}

		switch msg.String() {
		case "s":
			return p, p.run(devStartScanning, "")
		case "i", "enter":
			return p, p.input.Focus()
		}
	}

	// cursor blink and other non-key messages
	var inputCmd, cmd tea.Cmd
	p.input, inputCmd = p.input.Update(msg)
	p.view, cmd = p.view.Update(msg)
	return p, tea.Batch(inputCmd, cmd)
}

func (p *devPage) View(width, height int) string {
	s := p.input.View() + "\n\n"
	if p.result == nil {
		return s + mutedStyle.Render("No scan result")
	}
	p.view.Width = max(width, 20)
	p.view.Height = max(height-2, 5)
	return s + p.view.View()
}

func (p *devPage) Loading() bool   { return p.loading }
func (p *devPage) Capturing() bool { return p.input.Focused() }

func (p *devPage) Help() string {
	if p.input.Focused() {
		return "enter: scan • esc: cancel"
	}
	return "s: start scanning IPs • i: scan by IP"
}
