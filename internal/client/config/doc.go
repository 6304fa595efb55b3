// Package config loads runtime configuration for the authdemo client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     ".toml" are decoded as TOML, ".yaml" or ".yml" as YAML, anything else
//     as JSON.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the auth API, e.g. http://localhost:8000
//	-t int      per-request timeout (seconds)
//	-s string   path of the local session store (SQLite)
//	-ui string  interface: "repl" or "tui"
//	-l string   log level: debug, info, warn, error
//	-log string log file (empty: stderr for the REPL, discarded for the TUI)
//
// # File schema
//
// Durations use timex.Duration, so they may be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "request_timeout": "10s",
//	  "store_path": "session.db",
//	  "interface": "repl",
//	  "log_level": "info"
//	}
//
// The same keys are used in TOML and YAML.
//
// The API base URL is the single place the server address is configured;
// every network-calling component receives it through the one HTTP client
// built from this Config.
package config
