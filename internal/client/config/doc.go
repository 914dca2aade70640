// Package config loads runtime configuration for the ragdesk client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-m string   backend API contract: bearer (default) or legacy
//	-s string   session database path (default "session.db")
//	-o string   directory for rendered chart pages (default "charts")
//	-l string   log level: debug, info (default), warn, error
//	-nocolor    disable terminal colours
//
// # JSON schema
//
//	{
//	  "contract": "bearer",
//	  "session_db": "session.db",
//	  "charts_dir": "charts",
//	  "log_level": "info",
//	  "no_color": false
//	}
//
// Note: This package does not read environment variables directly, and the
// backend address is not configurable.
package config
