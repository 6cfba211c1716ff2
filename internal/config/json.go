package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/keychain/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell a missing key apart from a zero value.
type JsonConfig struct {
	VaultPath   *string `json:"vault_path"`
	Storage     *string `json:"storage"`
	LogLevel    *string `json:"log_level"`
	ClearScreen *bool   `json:"clear_screen"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// Without such a flag nothing changes. Read or decode errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.VaultPath != nil {
		cfg.VaultPath = *jc.VaultPath
	}
	if jc.Storage != nil {
		cfg.Storage = *jc.Storage
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.ClearScreen != nil {
		cfg.ClearScreen = *jc.ClearScreen
	}
}
