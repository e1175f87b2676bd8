package tui

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/scanboard/internal/client/models"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	mu       sync.Mutex
	loggedIn bool
	user     string
	exp      time.Time

	LoginErr  error
	LogoutErr error
	PingErr   error

	logins  int
	logouts int
}

func (f *fakeAuth) AccessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loggedIn {
		return "token"
	}
	return ""
}

func (f *fakeAuth) Login(_ context.Context, email, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins++
	if f.LoginErr != nil {
		return f.LoginErr
	}
	f.loggedIn, f.user = true, email
	return nil
}

func (f *fakeAuth) SaveTokens(context.Context, models.TokenPair, string) error { return nil }

func (f *fakeAuth) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	f.loggedIn, f.user = false, ""
	return f.LogoutErr
}

func (f *fakeAuth) IsAuthenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loggedIn
}

func (f *fakeAuth) Tokens() *models.TokenPair { return nil }

func (f *fakeAuth) Username() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user
}

func (f *fakeAuth) ExpiresAt() time.Time { return f.exp }

func (f *fakeAuth) Ping(context.Context) error { return f.PingErr }

type fakeEvents struct {
	pages map[int]models.Page[models.Event]
	Err   error
	calls []int
}

func (f *fakeEvents) List(_ context.Context, page, _ int) (models.Page[models.Event], error) {
	f.calls = append(f.calls, page)
	if f.Err != nil {
		return models.Page[models.Event]{}, f.Err
	}
	return f.pages[page], nil
}

type fakeIPs struct {
	ips       []string
	ListErr   error
	AddErr    error
	DeleteErr error
	added     []string
	deleted   []string
}

func (f *fakeIPs) List(context.Context) ([]string, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]string(nil), f.ips...), nil
}

func (f *fakeIPs) Add(_ context.Context, ips ...string) error {
	if f.AddErr != nil {
		return f.AddErr
	}
	f.added = append(f.added, ips...)
	f.ips = append(f.ips, ips...)
	return nil
}

func (f *fakeIPs) Delete(_ context.Context, ips ...string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.deleted = append(f.deleted, ips...)
	kept := f.ips[:0]
	for _, ip := range f.ips {
		if ip != ips[0] {
			kept = append(kept, ip)
		}
	}
	f.ips = kept
	return nil
}

type fakeScans struct {
	info   models.ScanInfo
	Err    error
	active models.Page[models.ScanProgress]
	calls  []string
}

func (f *fakeScans) record(call string) (models.ScanInfo, error) {
	f.calls = append(f.calls, call)
	return f.info, f.Err
}

func (f *fakeScans) Get(_ context.Context, id string) (models.ScanInfo, error) {
	return f.record("get " + id)
}

func (f *fakeScans) Start(_ context.Context, history bool) (models.ScanInfo, error) {
	if history {
		return f.record("start history")
	}
	return f.record("start")
}

func (f *fakeScans) Stop(_ context.Context, id string) (models.ScanInfo, error) {
	return f.record("stop " + id)
}

func (f *fakeScans) StopAll(context.Context) (models.ScanInfo, error) { return f.record("stop all") }
func (f *fakeScans) LastStarted(context.Context) (models.ScanInfo, error) {
	return f.record("last started")
}
func (f *fakeScans) LastCompleted(context.Context) (models.ScanInfo, error) {
	return f.record("last completed")
}
func (f *fakeScans) LastActive(context.Context) (models.ScanInfo, error) {
	return f.record("last active")
}

func (f *fakeScans) ListActive(_ context.Context, page, limit int) (models.Page[models.ScanProgress], error) {
	f.calls = append(f.calls, fmt.Sprintf("active %d/%d", page, limit))
	if f.Err != nil {
		return models.Page[models.ScanProgress]{}, f.Err
	}
	return f.active, nil
}

type fakeMonitoring struct {
	health any
	Err    error
}

func (f *fakeMonitoring) Health(context.Context) (any, error) { return f.health, f.Err }

type fakeDev struct {
	text   string
	result any
	Err    error
	ips    []string
}

func (f *fakeDev) StartScanningIPs(context.Context) (string, error) { return f.text, f.Err }

func (f *fakeDev) ScanByIP(_ context.Context, ip string) (any, error) {
	f.ips = append(f.ips, ip)
	return f.result, f.Err
}

// ---- helpers ----

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeText feeds s to p one rune at a time, ignoring the cursor blink
// commands the input returns.
func typeText(p page, s string) page {
	for _, r := range s {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

// exec runs cmd and flattens batches. Only pass commands that return
// immediately: no ticks or cursor blinks.
func exec(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, exec(t, c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// one runs cmd and expects exactly one message.
func one(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	msgs := exec(t, cmd)
	require.Len(t, msgs, 1)
	return msgs[0]
}

func notices(msgs []tea.Msg) []notifyMsg {
	var out []notifyMsg
	for _, m := range msgs {
		if n, ok := m.(notifyMsg); ok {
			out = append(out, n)
		}
	}
	return out
}
