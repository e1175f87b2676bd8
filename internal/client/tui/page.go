package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/scanboard/internal/client/services"
	"github.com/dmitrijs2005/scanboard/internal/logging"
)

type pageID int

const (
	eventsPageID pageID = iota
	ipsPageID
	scanningPageID
	monitoringPageID
	devPageID
)

var pageTitles = [...]string{
	eventsPageID:     "Events",
	ipsPageID:        "IPs",
	scanningPageID:   "Scanning",
	monitoringPageID: "Monitoring",
	devPageID:        "Dev",
}

func (p pageID) String() string { return pageTitles[p] }

// page is one dashboard view.
type page interface {
	// Init is called every time the page becomes visible.
	Init() tea.Cmd
	Update(msg tea.Msg) (page, tea.Cmd)
	View(width, height int) string
	// Loading reports whether a request is in flight.
	Loading() bool
	// Capturing reports whether a text input has focus, so global keys
	// must be passed to the page.
	Capturing() bool
	Help() string
}

// Deps are the services the dashboard talks to.
type Deps struct {
	Auth       services.AuthService
	Events     services.EventService
	IPs        services.IPService
	Scans      services.ScanService
	Monitoring services.MonitoringService
	Dev        services.DevService

	PageSize       int
	HealthInterval time.Duration
	Log            logging.Logger
}

func (d Deps) withDefaults() Deps {
	if d.PageSize <= 0 {
		d.PageSize = 10
	}
	if d.HealthInterval <= 0 {
		d.HealthInterval = 10 * time.Second
	}
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	return d
}

func newPage(id pageID, ctx context.Context, d Deps) page {
	switch id {
	case eventsPageID:
		return newEventsPage(ctx, d.Events, d.PageSize)
	case ipsPageID:
		return newIPsPage(ctx, d.IPs)
	case scanningPageID:
		return newScanningPage(ctx, d.Scans, d.PageSize)
	case monitoringPageID:
		return newMonitoringPage(ctx, d.Monitoring)
	default:
		return newDevPage(ctx, d.Dev)
	}
}
