// Package config loads runtime configuration for the StudyDeck client.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file named by -c or -config.
//  3. STUDYDECK_* environment variables.
//  4. Command-line flags.
//
// Flags
//
//	-p string   platform variant: web or mobile
//	-a string   API base URL (relative values resolve against the origin)
//	-o string   web origin the client is served from
//	-d string   path of the local SQLite database
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-r float    outbound requests per second, 0 disables throttling
//	-m string   listen address for the metrics endpoint, empty disables it
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations accept strings like "3s" or integer nanoseconds:
//
//	{
//	  "platform": "mobile",
//	  "api_base_url": "https://api.studydeck.app",
//	  "database_path": "/var/lib/studydeck/client.db",
//	  "request_timeout": "15s",
//	  "online_check_interval": "3s",
//	  "requests_per_second": 10,
//	  "log_level": "debug"
//	}
//
// The device secret that seals the mobile credential is read only from
// STUDYDECK_DEVICE_SECRET and never from a file or the command line.
package config
