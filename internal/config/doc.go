// Package config handles loading mealmarket's configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/mealmarket/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - API base: https://www.themealdb.com/api/json/v1/1
//   - Data dir: ~/.local/share/mealmarket
//   - Store backend: file
//   - Log file: <data_dir>/mealmarket.log
//   - Request timeout: 10s
//
// # TOML Format
//
//	api_base = "https://www.themealdb.com/api/json/v1/1"
//	data_dir = "~/.local/share/mealmarket"
//	store = "sqlite"            # file | sqlite
//	log_file = "~/mealmarket.log"
//	request_timeout = "5s"
//
// All fields are optional. Tilde expansion is performed for data_dir and
// log_file. Setting data_dir without log_file moves the log under the new
// data dir.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and invalid request_timeout values.
// A missing file is not an error.
package config
