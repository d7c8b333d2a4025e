// Package config loads takedown's settings.
//
// # Resolution Order
//
//  1. Built-in defaults (Default)
//  2. ~/.config/takedown/config.toml, or the path passed to Load
//  3. TAKEDOWN_* environment variables
//
// A missing config file is not an error. The .env file in the working
// directory is loaded by the command before Load runs, so its values arrive
// through the environment layer.
//
// # TOML Format
//
//	source = "fixture"            # fixture | file | remote
//	catalog_path = "~/.config/takedown/catalog.yaml"
//	remote_url = "127.0.0.1:7611"
//	listen = "127.0.0.1:7611"
//	log_file = "~/.local/share/takedown/takedown.log"
//	log_level = "info"
//	layout = "admin"              # admin | review
//	poll_seconds = 5
//	cors_origins = ["*"]
//	rate_limit = 300              # requests per minute per IP
//
// Environment variables use the key in upper case with the TAKEDOWN_ prefix,
// for example TAKEDOWN_REMOTE_URL. TAKEDOWN_CORS_ORIGINS takes a
// comma-separated list.
//
// # Paths
//
// catalog_path and log_file accept ~ and relative paths; both are expanded to
// absolute paths. ExpandPath is exported for the prefs and catalog packages.
//
// # Errors
//
// Unknown source, layout or log_level values return an error wrapping
// ErrInvalidConfig. Unreadable or malformed files return the underlying error
// wrapped with "open config", "read config" or "parse config".
package config
