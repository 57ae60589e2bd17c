// Package config loads runtime configuration for the TaskKeeper CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: SERVER_URL, CLIENT_TIMEOUT.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags: -a (server URL) and -t (request timeout in seconds).
//
// JSON example:
//
//	{
//	  "server_url": "http://localhost:4500",
//	  "request_timeout": "10s"
//	}
package config
