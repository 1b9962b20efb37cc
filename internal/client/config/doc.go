// Package config loads runtime configuration for the Housekeeper CLI.
//
// Sources, in increasing precedence:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. HOUSEKEEPER_* environment variables, e.g. HOUSEKEEPER_SERVER_ADDR,
//     HOUSEKEEPER_SYNC_INTERVAL=1h.
//  4. Command-line flags.
//
// Example JSON:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "notification_url": "ws://127.0.0.1:8080/ws",
//	  "database_path": "housekeeper.db",
//	  "online_check_interval": "3s",
//	  "sync_interval": "24h"
//	}
package config
