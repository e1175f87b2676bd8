package tui

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/scanboard/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShell(auth *fakeAuth) (*Shell, *fakeEvents, *fakeIPs) {
	events := eventsFixture()
	ips := &fakeIPs{ips: []string{"1.1.1.1"}}
	s := NewShell(context.Background(), Deps{
		Auth:       auth,
		Events:     events,
		IPs:        ips,
		Scans:      &fakeScans{},
		Monitoring: &fakeMonitoring{},
		Dev:        &fakeDev{},
	})
	return s, events, ips
}

func send(s *Shell, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = s.Update(m)
	}
	return cmd
}

func typeShell(s *Shell, text string) {
	for _, r := range text {
		s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestShell_InitAuthenticated(t *testing.T) {
	s, events, _ := newTestShell(&fakeAuth{loggedIn: true, user: "u@x"})

	msgs := exec(t, s.Init())
	require.Len(t, msgs, 3)
	assert.IsType(t, spinner.TickMsg{}, msgs[0])
	assert.Equal(t, pingMsg{}, msgs[1])
	assert.Equal(t, pageMsg{Page: eventsPageID, Gen: 1, Msg: eventsLoadedMsg{
		Seq: 1, Page: 1, Res: events.pages[1],
	}}, msgs[2])

	for _, m := range msgs {
		s.Update(m)
	}
	assert.Equal(t, connOnline, s.conn)
	assert.Len(t, s.pages[eventsPageID].(*eventsPage).pager.Items(), 2)

	view := s.View()
	assert.Contains(t, view, "1 Events")
	assert.Contains(t, view, "u@x")
	assert.Contains(t, view, "online")
}

func TestShell_LoginFlow(t *testing.T) {
	auth := &fakeAuth{}
	s, _, _ := newTestShell(auth)
	assert.Contains(t, s.View(), "Sign in")

	// q is typed into the form, not treated as quit
	typeShell(s, "qa@x")
	send(s, key("tab"))
	typeShell(s, "pw")

	cmd := send(s, key("enter"))
	require.True(t, s.login.submitting)
	assert.Contains(t, s.View(), "Signing in")

	send(s, one(t, cmd))
	require.True(t, auth.IsAuthenticated())
	assert.Equal(t, 1, auth.logins)
	assert.Equal(t, "qa@x", auth.Username())
	require.NotNil(t, s.notice)
	assert.Equal(t, "Logged in as qa@x", s.notice.text)
	assert.Equal(t, eventsPageID, s.active)
	assert.Equal(t, uint64(1), s.gen)
}

func TestShell_LoginFailure(t *testing.T) {
	auth := &fakeAuth{LoginErr: &client.HTTPError{StatusCode: http.StatusUnauthorized, Body: "Bad credentials"}}
	s, _, _ := newTestShell(auth)

	typeShell(s, "a@x")
	send(s, key("enter"))
	typeShell(s, "bad")
	cmd := send(s, key("enter"))

	cmd = send(s, one(t, cmd))
	assert.False(t, auth.IsAuthenticated())
	assert.False(t, s.login.submitting)
	assert.Empty(t, s.login.inputs[1].Value())
	assert.Equal(t, notifyMsg{Kind: noticeError, Text: "Login failed: Bad credentials"}, one(t, cmd))
}

func TestShell_LoginNeedsBothFields(t *testing.T) {
	auth := &fakeAuth{}
	s, _, _ := newTestShell(auth)

	send(s, key("tab"))
	cmd := send(s, key("enter"))
	assert.Equal(t, notifyMsg{Kind: noticeError, Text: "Please enter email and password"}, one(t, cmd))
	assert.Equal(t, 0, auth.logins)
}

func TestShell_SwitchPagesDropsStaleResults(t *testing.T) {
	s, _, _ := newTestShell(&fakeAuth{loggedIn: true})

	eventsLoad := s.activate(eventsPageID)
	ipsLoad := send(s, key("2"))
	require.Equal(t, ipsPageID, s.active)

	// events answered after the user left the page
	assert.Nil(t, send(s, one(t, eventsLoad)))
	assert.True(t, s.pages[eventsPageID].Loading())

	send(s, one(t, ipsLoad))
	assert.Equal(t, []string{"1.1.1.1"}, s.pages[ipsPageID].(*ipsPage).ips)
}

func TestShell_ReturningToPageIgnoresOldGeneration(t *testing.T) {
	s, _, _ := newTestShell(&fakeAuth{loggedIn: true})

	old := s.activate(ipsPageID)
	fresh := s.activate(ipsPageID)

	assert.Nil(t, send(s, one(t, old)))
	assert.True(t, s.pages[ipsPageID].Loading())
	send(s, one(t, fresh))
	assert.False(t, s.pages[ipsPageID].Loading())
}

func TestShell_TabCycling(t *testing.T) {
	s, _, _ := newTestShell(&fakeAuth{loggedIn: true})

	send(s, key("tab"))
	assert.Equal(t, ipsPageID, s.active)
	send(s, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, devPageID, s.active)
	send(s, key("4"))
	assert.Equal(t, monitoringPageID, s.active)

	gen := s.gen
	assert.Nil(t, send(s, key("4")))
	assert.Equal(t, gen, s.gen)
}

func TestShell_Quit(t *testing.T) {
	s, _, _ := newTestShell(&fakeAuth{loggedIn: true})

	cmd := send(s, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	cmd = send(s, key("ctrl+c"))
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestShell_CapturingPageGetsGlobalKeys(t *testing.T) {
	s, _, _ := newTestShell(&fakeAuth{loggedIn: true})
	send(s, key("2"), key("a"))
	require.True(t, s.pages[ipsPageID].Capturing())

	typeShell(s, "q1L")
	assert.Equal(t, ipsPageID, s.active)
	assert.Equal(t, "q1L", s.pages[ipsPageID].(*ipsPage).input.Value())

	cmd := send(s, key("ctrl+c"))
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestShell_OpenDialogHoldsGlobalKeys(t *testing.T) {
	s, _, _ := newTestShell(&fakeAuth{loggedIn: true})
	send(s, one(t, s.activate(eventsPageID)))
	events := s.pages[eventsPageID].(*eventsPage)

	send(s, key("enter"))
	require.NotNil(t, events.details)

	for _, k := range []string{"2", "tab"} {
		send(s, key(k))
		assert.Equal(t, eventsPageID, s.active, k)
	}
	assert.Nil(t, send(s, key("q")))
	assert.Nil(t, events.details)
	assert.False(t, s.pages[eventsPageID].Capturing())

	send(s, key("enter"), key("esc"))
	assert.Nil(t, events.details)
	send(s, key("2"))
	assert.Equal(t, ipsPageID, s.active)
}

func TestShell_Logout(t *testing.T) {
	auth := &fakeAuth{loggedIn: true, user: "u@x"}
	s, _, _ := newTestShell(auth)
	send(s, one(t, s.activate(ipsPageID)))

	send(s, key("L"))
	assert.Equal(t, 1, auth.logouts)
	assert.False(t, auth.IsAuthenticated())
	require.NotNil(t, s.notice)
	assert.Equal(t, "Logged out", s.notice.text)
	assert.Contains(t, s.View(), "Sign in")
	assert.Nil(t, s.pages[ipsPageID].(*ipsPage).ips)
}

func TestShell_LogoutFailureStillSignsOut(t *testing.T) {
	auth := &fakeAuth{loggedIn: true, LogoutErr: errors.New("database is locked")}
	s, _, _ := newTestShell(auth)

	send(s, key("L"))
	assert.False(t, auth.IsAuthenticated())
	require.NotNil(t, s.notice)
	assert.Equal(t, noticeError, s.notice.kind)
	assert.Equal(t, "Logout: database is locked", s.notice.text)
}

func TestShell_HealthWatcher(t *testing.T) {
	auth := &fakeAuth{loggedIn: true}
	s, _, _ := newTestShell(auth)
	assert.Contains(t, s.statusView(), "connecting")

	auth.PingErr = errors.New("refused")
	send(s, one(t, s.ping()))
	assert.Equal(t, connOffline, s.conn)
	assert.Contains(t, s.statusView(), "offline")

	auth.PingErr = nil
	send(s, healthTickMsg(time.Now()))
	send(s, one(t, s.ping()))
	assert.Equal(t, connOnline, s.conn)
}

func TestShell_Notices(t *testing.T) {
	s, _, _ := newTestShell(&fakeAuth{loggedIn: true})

	send(s, notifyMsg{Kind: noticeError, Text: "boom"})
	send(s, notifyMsg{Kind: noticeSuccess, Text: "ok"})
	assert.Contains(t, s.noticeView(), "ok")

	// the first notice's timer must not hide the second one
	send(s, clearNoticeMsg{ID: 1})
	require.NotNil(t, s.notice)
	send(s, clearNoticeMsg{ID: 2})
	assert.Nil(t, s.notice)

	send(s, pageMsg{Page: s.active, Gen: s.gen, Msg: notifyMsg{Kind: noticeSuccess, Text: "from page"}})
	require.NotNil(t, s.notice)
	assert.Equal(t, "from page", s.notice.text)

	send(s, pageMsg{Page: s.active, Gen: s.gen + 1, Msg: notifyMsg{Kind: noticeSuccess, Text: "stale"}})
	assert.Equal(t, "from page", s.notice.text)
}

func TestShell_SessionExpiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	auth := &fakeAuth{loggedIn: true, exp: now.Add(-time.Minute)}
	s, _, _ := newTestShell(auth)
	s.now = func() time.Time { return now }

	assert.Contains(t, s.statusView(), "session expired")

	auth.exp = now.Add(time.Hour)
	assert.Contains(t, s.statusView(), "session expires")
}
