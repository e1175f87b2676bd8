// Package cli provides the scanboard command line.
//
// The root command opens the interactive dashboard; subcommands run one API
// operation each and print the result, which makes them usable from scripts:
//
//	scanboard login --email user@example.com
//	scanboard events list --page 2
//	scanboard ips add 192.0.2.10
//	scanboard scan active
//
// Every command shares the configuration flags from the config package and
// the session stored in the local database, so a login from one invocation
// is reused by the next.
package cli
