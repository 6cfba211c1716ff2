package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/keychain/internal/flagx"
)

var (
	valueFlags = []string{"f", "s", "p", "l"}
	boolFlags  = []string{"x", "h", "help"}
)

func newFlagSet(cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("keychain", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.VaultPath, "f", cfg.VaultPath, "path to the vault file")
	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "storage backend: json or sqlite")
	fs.StringVar(&cfg.Passphrase, "p", cfg.Passphrase, "passphrase (prompted for when omitted)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.BoolVar(&cfg.ClearScreen, "x", cfg.ClearScreen, "clear the screen between menu screens")
	fs.BoolVar(&cfg.ShowHelp, "h", false, "print this help and exit")
	fs.BoolVar(&cfg.ShowHelp, "help", false, "print this help and exit")
	return fs
}

// parseFlags populates cfg from the flags it owns in args. Flags handled by
// other parsers (-c/-config) are filtered out first.
func parseFlags(cfg *Config, args []string) {
	fs := newFlagSet(cfg)
	if err := fs.Parse(flagx.FilterArgs(args, valueFlags, boolFlags)); err != nil {
		panic(err)
	}
}

// Usage writes the command-line help to w.
func Usage(w io.Writer) {
	var defaults Config
	defaults.LoadDefaults()

	fs := newFlagSet(&defaults)
	fs.SetOutput(w)

	fmt.Fprintln(w, "Usage: keychain [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Keeps passwords and other secrets in an encrypted local vault.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, -config string")
	fmt.Fprintln(w, "    \tJSON config file")
	fs.PrintDefaults()
}
