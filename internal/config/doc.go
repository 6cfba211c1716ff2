// Package config loads runtime configuration for the keychain CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-f string   path to the vault file (default keychain_data.json)
//	-s string   storage backend: json or sqlite (default json)
//	-p string   passphrase; prompted for when omitted
//	-l string   log level: debug, info, warn or error (default warn)
//	-x bool     clear the screen between menu screens (default true)
//	-h          print usage and exit
//
// # JSON schema
//
// Keys that are missing keep their earlier value:
//
//	{
//	  "vault_path": "/home/me/keychain_data.json",
//	  "storage": "sqlite",
//	  "log_level": "info",
//	  "clear_screen": false
//	}
//
// The passphrase is never read from the JSON file.
package config
