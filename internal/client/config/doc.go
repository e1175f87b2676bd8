// Package config loads runtime configuration for the scanboard client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with --config/-c or $SCANBOARD_CONFIG.
//     The format follows the extension (.yaml, .yml, .json, .toml).
//  3. Environment variables SCANBOARD_API_BASE_URL, SCANBOARD_DATA_DIR,
//     SCANBOARD_PAGE_SIZE, SCANBOARD_HEALTH_CHECK_INTERVAL,
//     SCANBOARD_REQUEST_TIMEOUT, SCANBOARD_LOG_LEVEL, SCANBOARD_LOG_FORMAT
//     and SCANBOARD_LOG_FILE.
//  4. Command-line flags that were explicitly set.
//
// Supported flags
//
//	-c, --config string            config file
//	-a, --api string               API base URL
//	    --data-dir string          local database and log directory
//	    --page-size int            items per page
//	-i, --health-interval duration server health check interval
//	    --timeout duration         per-request timeout, 0 disables
//	    --log-level string         debug, info, warn, error
//	    --log-format string        text, json, zerolog
//	    --log-file string          log file
//
// # YAML example
//
//	api_base_url: http://localhost:8080/api/v1
//	page_size: 20
//	health_check_interval: 30s
//	log_format: zerolog
//
// Durations are written as strings like "30s" in YAML and TOML files. JSON
// files must give them as integer nanoseconds.
package config
