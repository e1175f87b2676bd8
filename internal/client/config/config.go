package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/scanboard/internal/common"
	"github.com/dmitrijs2005/scanboard/internal/logging"
	"github.com/ilyakaznacheev/cleanenv"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "SCANBOARD_CONFIG"

// Config holds runtime settings for the scanboard client.
//
// Units: HealthCheckInterval and RequestTimeout are time.Duration values;
// files and env vars spell them like "10s". RequestTimeout 0 disables the
// per-request timeout.
type Config struct {
	APIBaseURL          string        `yaml:"api_base_url" json:"api_base_url" toml:"api_base_url" env:"SCANBOARD_API_BASE_URL"`
	DataDir             string        `yaml:"data_dir" json:"data_dir" toml:"data_dir" env:"SCANBOARD_DATA_DIR"`
	PageSize            int           `yaml:"page_size" json:"page_size" toml:"page_size" env:"SCANBOARD_PAGE_SIZE"`
	HealthCheckInterval time.Duration `yaml:"health_check_interval" json:"health_check_interval" toml:"health_check_interval" env:"SCANBOARD_HEALTH_CHECK_INTERVAL"`
	RequestTimeout      time.Duration `yaml:"request_timeout" json:"request_timeout" toml:"request_timeout" env:"SCANBOARD_REQUEST_TIMEOUT"`
	LogLevel            string        `yaml:"log_level" json:"log_level" toml:"log_level" env:"SCANBOARD_LOG_LEVEL"`
	LogFormat           string        `yaml:"log_format" json:"log_format" toml:"log_format" env:"SCANBOARD_LOG_FORMAT"`
	LogFile             string        `yaml:"log_file" json:"log_file" toml:"log_file" env:"SCANBOARD_LOG_FILE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = common.DefaultAPIBaseURL
	c.DataDir = defaultDataDir()
	c.PageSize = 10
	c.HealthCheckInterval = 10 * time.Second
	c.RequestTimeout = 0
	c.LogLevel = "info"
	c.LogFormat = logging.FormatText
	c.LogFile = ""
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, common.AppName)
	}
	return "." + common.AppName
}

// DatabasePath is the SQLite file holding the local session.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, common.AppName+".db")
}

// LogPath is LogFile, or <data_dir>/scanboard.log when unset.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, common.AppName+".log")
}

// Load builds a Config from, in increasing precedence: defaults, the config
// file (path, or $SCANBOARD_CONFIG when path is empty), SCANBOARD_* env vars
// and finally the explicitly set flags in fs (fs may be nil).
func Load(path string, flags *Flags) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	if flags != nil {
		flags.Apply(cfg)
	}

	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_base_url must be an http(s) URL, got %q", c.APIBaseURL)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be > 0")
	}
	if c.HealthCheckInterval < time.Second {
		return fmt.Errorf("health_check_interval must be at least 1s")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	switch c.LogFormat {
	case logging.FormatText, logging.FormatJSON, logging.FormatZerolog:
	default:
		return fmt.Errorf("log_format must be one of text, json, zerolog")
	}
	return nil
}
