// Package config loads runtime configuration for the ZapDesk client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST endpoint
//	-i int      notification poll interval (seconds)
//	-t int      toast display time (seconds)
//	-d string   path to the local session database
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "60s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_url": "http://127.0.0.1:8080",
//	  "poll_interval": "60s",
//	  "toast_ttl": "5s",
//	  "store_path": "zapdesk.db"
//	}
//
// Note: This package does not read environment variables; use the JSON file
// or flags to configure values.
package config
