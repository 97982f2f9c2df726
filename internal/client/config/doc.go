// Package config loads runtime configuration for the receiptkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: RECEIPTS_API_BASE_URL, RECEIPTS_DATA_DIR,
//     RECEIPTS_LOG_LEVEL. An optional .env file is loaded first.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   API base URL
//	-d string   local data directory (default ~/.receiptkeeper)
//	-l string   log level (default info)
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://receipts.example.com",
//	  "data_dir": "~/.receiptkeeper",
//	  "log_level": "debug"
//	}
package config
