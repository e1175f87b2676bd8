package config

import (
	"time"

	"github.com/spf13/pflag"
)

const (
	FlagConfig         = "config"
	FlagAPIBaseURL     = "api"
	FlagDataDir        = "data-dir"
	FlagPageSize       = "page-size"
	FlagHealthInterval = "health-interval"
	FlagRequestTimeout = "timeout"
	FlagLogLevel       = "log-level"
	FlagLogFormat      = "log-format"
	FlagLogFile        = "log-file"
)

// Flags are the command-line overrides. Only flags the user actually set
// take effect; defaults shown in help come from Config.LoadDefaults.
type Flags struct {
	fs *pflag.FlagSet

	ConfigPath     string
	apiBaseURL     string
	dataDir        string
	pageSize       int
	healthInterval time.Duration
	requestTimeout time.Duration
	logLevel       string
	logFormat      string
	logFile        string
}

// BindFlags registers the configuration flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	var d Config
	d.LoadDefaults()

	f := &Flags{fs: fs}
	fs.StringVarP(&f.ConfigPath, FlagConfig, "c", "", "path to a YAML, JSON or TOML config file (env "+EnvConfigPath+")")
	fs.StringVarP(&f.apiBaseURL, FlagAPIBaseURL, "a", d.APIBaseURL, "API base URL")
	fs.StringVar(&f.dataDir, FlagDataDir, d.DataDir, "directory for the local database and log")
	fs.IntVar(&f.pageSize, FlagPageSize, d.PageSize, "items per page")
	fs.DurationVarP(&f.healthInterval, FlagHealthInterval, "i", d.HealthCheckInterval, "server health check interval")
	fs.DurationVar(&f.requestTimeout, FlagRequestTimeout, d.RequestTimeout, "per-request timeout (0 disables)")
	fs.StringVar(&f.logLevel, FlagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, FlagLogFormat, d.LogFormat, "log format: text, json, zerolog")
	fs.StringVar(&f.logFile, FlagLogFile, "", "log file (default <data-dir>/scanboard.log)")
	return f
}

// Apply overlays the flags that were set on the command line.
func (f *Flags) Apply(cfg *Config) {
	if f == nil || f.fs == nil {
		return
	}
	changed := f.fs.Changed

	if changed(FlagAPIBaseURL) {
		cfg.APIBaseURL = f.apiBaseURL
	}
	if changed(FlagDataDir) {
		cfg.DataDir = f.dataDir
	}
	if changed(FlagPageSize) {
		cfg.PageSize = f.pageSize
	}
	if changed(FlagHealthInterval) {
		cfg.HealthCheckInterval = f.healthInterval
	}
	if changed(FlagRequestTimeout) {
		cfg.RequestTimeout = f.requestTimeout
	}
	if changed(FlagLogLevel) {
		cfg.LogLevel = f.logLevel
	}
	if changed(FlagLogFormat) {
		cfg.LogFormat = f.logFormat
	}
	if changed(FlagLogFile) {
		cfg.LogFile = f.logFile
	}
}
