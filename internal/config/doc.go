// Package config loads shelfscan settings from TOML and the environment.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/shelfscan/config.toml
//  3. If the file doesn't exist, start from defaults
//  4. Apply SHELFSCAN_API_URL, SHELFSCAN_SCAN_DEVICE and SHELFSCAN_LOG_LEVEL
//
// The command line loads a .env file before calling Load, so those variables
// may also come from there.
//
// # TOML Format
//
//	api_url = "http://127.0.0.1:8080"
//	request_timeout_seconds = 30
//	dedupe_window_ms = 2000
//	scan_device = "/dev/ttyACM0"
//	log_file = "~/.local/state/shelfscan/shelfscan.log"
//	log_level = "info"
//
// Every field is optional. Empty strings and non-positive numbers keep the
// default. Tilde expansion is applied to log_file and scan_device.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML syntax errors, wrapped as "parse config: ..."
//   - A log_level other than debug, info, warn or error
package config
