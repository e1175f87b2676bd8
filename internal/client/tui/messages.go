package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/scanboard/internal/client/client"
	"github.com/dmitrijs2005/scanboard/internal/client/models"
	"github.com/dmitrijs2005/scanboard/internal/client/services"
)

// Message types for async operations
type (
	// loginDoneMsg is the outcome of a login attempt
	loginDoneMsg struct {
		Err error
	}

	// eventsLoadedMsg carries one page of events
	eventsLoadedMsg struct {
		Seq  uint64
		Page int
		Res  models.Page[models.Event]
		Err  error
	}

	// ipsLoadedMsg carries the monitored IP list
	ipsLoadedMsg struct {
		Seq uint64
		IPs []string
		Err error
	}

	// ipsChangedMsg reports an add or delete
	ipsChangedMsg struct {
		Action ipAction
		IP     string
		Err    error
	}

	// scanResultMsg carries the answer of a scanning command
	scanResultMsg struct {
		Seq    uint64
		Action scanAction
		Info   models.ScanInfo
		Err    error
	}

	// activeScansLoadedMsg carries one page of active scans
	activeScansLoadedMsg struct {
		Seq  uint64
		Page int
		Res  models.Page[models.ScanProgress]
		Err  error
	}

	// healthLoadedMsg carries the backend health document
	healthLoadedMsg struct {
		Seq    uint64
		Health any
		Err    error
	}

	// devResultMsg carries the answer of a developer command
	devResultMsg struct {
		Seq    uint64
		Action devAction
		Text   string
		Result any
		Err    error
	}

	// pingMsg is the result of one health probe
	pingMsg struct {
		Err error
	}

	// healthTickMsg triggers the next health probe
	healthTickMsg time.Time

	// notifyMsg asks the shell to show a notification
	notifyMsg struct {
		Kind noticeKind
		Text string
	}

	// clearNoticeMsg hides notification ID if it is still shown
	clearNoticeMsg struct {
		ID int
	}

	// pageMsg wraps a page result with the page and generation that issued it
	pageMsg struct {
		Page pageID
		Gen  uint64
		Msg  tea.Msg
	}
)

type noticeKind int

const (
	noticeSuccess noticeKind = iota
	noticeError
)

func notify(kind noticeKind, text string) tea.Cmd {
	return func() tea.Msg {
		return notifyMsg{Kind: kind, Text: text}
	}
}

func notifySuccess(text string) tea.Cmd { return notify(noticeSuccess, text) }

// notifyFailure renders err the way the server explained it.
func notifyFailure(action string, err error) tea.Cmd {
	return notify(noticeError, failureText(action, err))
}

func failureText(action string, err error) string {
	if services.IsUnauthorized(err) {
		return action + ": unauthorized, please log in again"
	}
	return action + ": " + client.Message(err)
}

// wrap tags the messages produced by cmd with the issuing page.
func wrap(id pageID, gen uint64, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		switch m := msg.(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			out := make(tea.BatchMsg, 0, len(m))
			for _, c := range m {
				out = append(out, wrap(id, gen, c))
			}
			return out
		}
		return pageMsg{Page: id, Gen: gen, Msg: msg}
	}
}

// healthTick schedules the next health probe
func healthTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return healthTickMsg(t)
	})
}
