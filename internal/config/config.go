package config

// Config holds runtime settings for the keychain CLI.
type Config struct {
	VaultPath   string
	Storage     string
	LogLevel    string
	ClearScreen bool

	// Passphrase comes from -p only. Empty means prompt.
	Passphrase string
	ShowHelp   bool
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.VaultPath = "keychain_data.json"
	c.Storage = "json"
	c.LogLevel = "warn"
	c.ClearScreen = true
}

// LoadConfig builds a Config from defaults, the optional JSON file and the
// flags in args (usually os.Args[1:]), later sources winning. It panics on
// an unreadable config file or bad flags; main recovers and prints usage.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
