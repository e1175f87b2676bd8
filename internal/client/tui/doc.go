// Package tui is the interactive dashboard: a bubbletea program that shows a
// login form while there is no session and the page dashboard (Events, IPs,
// Scanning, Monitoring, Dev) once there is one.
//
// Every request a page makes runs as a tea.Cmd. Its result comes back tagged
// with the page and the page generation that issued it; the shell drops
// results for a page that is no longer shown, and pages drop results whose
// sequence number has been superseded by a newer request. Failures become a
// single notification on the status line and never leave the page.
package tui
