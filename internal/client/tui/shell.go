package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/scanboard/internal/common"
)

const (
	noticeTTL   = 4 * time.Second
	pingTimeout = 3 * time.Second
)

type connState int

const (
	connUnknown connState = iota
	connOnline
	connOffline
)

type notice struct {
	id   int
	kind noticeKind
	text string
}

// Shell is the root model. It renders the login form or the dashboard
// depending on whether the auth service holds a session.
type Shell struct {
	ctx  context.Context
	deps Deps

	width  int
	height int

	spinner spinner.Model
	login   *loginForm

	pages  map[pageID]page
	active pageID
	gen    uint64

	conn     connState
	notice   *notice
	noticeID int
	now      func() time.Time
}

func NewShell(ctx context.Context, deps Deps) *Shell {
	deps = deps.withDefaults()
	s := &Shell{
		ctx:     ctx,
		deps:    deps,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		login:   newLoginForm(ctx, deps.Auth),
		now:     time.Now,
	}
	s.resetPages()
	return s
}

// Run shows the dashboard until the user quits or ctx is cancelled.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(NewShell(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (s *Shell) resetPages() {
	s.pages = make(map[pageID]page, len(pageTitles))
	for id := range pageTitles {
		s.pages[pageID(id)] = newPage(pageID(id), s.ctx, s.deps)
	}
}

func (s *Shell) Init() tea.Cmd {
	cmds := []tea.Cmd{s.spinner.Tick, s.ping()}
	if s.deps.Auth.IsAuthenticated() {
		cmds = append(cmds, s.activate(eventsPageID))
	} else {
		cmds = append(cmds, s.login.Init())
	}
	return tea.Batch(cmds...)
}

// activate shows page id and starts a new generation; results issued by
// earlier generations are dropped.
func (s *Shell) activate(id pageID) tea.Cmd {
	s.active = id
	s.gen++
	return wrap(id, s.gen, s.pages[id].Init())
}

func (s *Shell) ping() tea.Cmd {
	ctx, auth := s.ctx, s.deps.Auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		return pingMsg{Err: auth.Ping(ctx)}
	}
}

func (s *Shell) setConn(c connState) {
	if s.conn != c {
		s.conn = c
		s.deps.Log.Info(s.ctx, "connection status changed", "online", c == connOnline)
	}
}

func (s *Shell) showNotice(kind noticeKind, text string) tea.Cmd {
	s.noticeID++
	id := s.noticeID
	s.notice = &notice{id: id, kind: kind, text: text}
	if kind == noticeError {
		s.deps.Log.Warn(s.ctx, "notification", "text", text)
	}
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return clearNoticeMsg{ID: id}
	})
}

func (s *Shell) logout() tea.Cmd {
	err := s.deps.Auth.Logout(s.ctx)
	s.gen++
	s.resetPages()
	s.login = newLoginForm(s.ctx, s.deps.Auth)

	cmds := []tea.Cmd{s.login.Init()}
	if err != nil {
		cmds = append(cmds, s.showNotice(noticeError, "Logout: "+err.Error()))
	} else {
		cmds = append(cmds, s.showNotice(noticeSuccess, "Logged out"))
	}
	return tea.Batch(cmds...)
}

func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		return s, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case healthTickMsg:
		return s, s.ping()

	case pingMsg:
		if msg.Err != nil {
			s.setConn(connOffline)
		} else {
			s.setConn(connOnline)
		}
		return s, healthTick(s.deps.HealthInterval)

	case notifyMsg:
		return s, s.showNotice(msg.Kind, msg.Text)

	case clearNoticeMsg:
		if s.notice != nil && s.notice.id == msg.ID {
			s.notice = nil
		}
		return s, nil

	case loginDoneMsg:
		cmd := s.login.Update(msg)
		if msg.Err != nil || !s.deps.Auth.IsAuthenticated() {
			return s, cmd
		}
		s.resetPages()
		return s, tea.Batch(
			s.showNotice(noticeSuccess, "Logged in as "+s.deps.Auth.Username()),
			s.activate(eventsPageID),
		)

	case pageMsg:
		return s, s.routePageMsg(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return s, tea.Quit
		}
		if !s.deps.Auth.IsAuthenticated() {
			return s, s.login.Update(msg)
		}
		return s, s.handleKey(msg)
	}

	if !s.deps.Auth.IsAuthenticated() {
		return s, s.login.Update(msg)
	}
	return s, s.updatePage(msg)
}

func (s *Shell) routePageMsg(msg pageMsg) tea.Cmd {
	if !s.deps.Auth.IsAuthenticated() || msg.Page != s.active || msg.Gen != s.gen {
		s.deps.Log.Debug(s.ctx, "dropping stale response", "page", msg.Page.String())
		return nil
	}
	if n, ok := msg.Msg.(notifyMsg); ok {
		return s.showNotice(n.Kind, n.Text)
	}
	return s.updatePage(msg.Msg)
}

func (s *Shell) updatePage(msg tea.Msg) tea.Cmd {
	p, cmd := s.pages[s.active].Update(msg)
	s.pages[s.active] = p
	return wrap(s.active, s.gen, cmd)
}

func (s *Shell) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.pages[s.active].Capturing() {
		return s.updatePage(msg)
	}

	switch key := msg.String(); key {
	case "q":
		return tea.Quit
	case "L":
		return s.logout()
	case "tab":
		return s.activate((s.active + 1) % pageID(len(pageTitles)))
	case "shift+tab":
		return s.activate((s.active + pageID(len(pageTitles)) - 1) % pageID(len(pageTitles)))
	case "1", "2", "3", "4", "5":
		id := pageID(key[0] - '1')
		if id == s.active {
			return nil
		}
		return s.activate(id)
	}
	return s.updatePage(msg)
}

func (s *Shell) View() string {
	if !s.deps.Auth.IsAuthenticated() {
		return s.loginView()
	}

	header := s.tabsView()
	footer := lipgloss.JoinVertical(lipgloss.Left, s.noticeView(), s.statusView(), helpStyle.Render(s.helpText()))
	bodyHeight := s.height - lipgloss.Height(header) - lipgloss.Height(footer) - 2
	if bodyHeight < 5 {
		bodyHeight = 5
	}
	width := s.width
	if width <= 0 {
		width = 100
	}

	body := s.pages[s.active].View(width, bodyHeight)
	if s.pages[s.active].Loading() {
		body = s.spinner.View() + " Loading...\n\n" + body
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", footer)
}

func (s *Shell) loginView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(common.AppName))
	b.WriteString("\n\n")
	b.WriteString(s.login.View())
	b.WriteString("\n\n")
	if s.login.submitting {
		b.WriteString(s.spinner.View() + " Signing in...\n")
	}
	b.WriteString(s.noticeView())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(s.login.Help()))
	return b.String()
}

func (s *Shell) tabsView() string {
	parts := []string{titleStyle.Render(common.AppName)}
	for id, title := range pageTitles {
		label := fmt.Sprintf("%d %s", id+1, title)
		if pageID(id) == s.active {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (s *Shell) noticeView() string {
	if s.notice == nil {
		return ""
	}
	if s.notice.kind == noticeError {
		return errorStyle.Render("✗ " + s.notice.text)
	}
	return successStyle.Render("✓ " + s.notice.text)
}

func (s *Shell) statusView() string {
	var parts []string
	if u := s.deps.Auth.Username(); u != "" {
		parts = append(parts, u)
	}

	switch s.conn {
	case connOnline:
		parts = append(parts, onlineStyle.Render("online"))
	case connOffline:
		parts = append(parts, offlineStyle.Render("offline"))
	default:
		parts = append(parts, helpStyle.Render("connecting"))
	}

	if exp := s.deps.Auth.ExpiresAt(); !exp.IsZero() {
		if exp.Before(s.now()) {
			parts = append(parts, errorStyle.Render("session expired"))
		} else {
			parts = append(parts, "session expires "+exp.Local().Format("2006-01-02 15:04"))
		}
	}
	return strings.Join(parts, " • ")
}

func (s *Shell) helpText() string {
	return s.pages[s.active].Help() + " • tab/1-5: switch page • L: logout • q: quit"
}
