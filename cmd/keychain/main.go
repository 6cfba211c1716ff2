package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/keychain/internal/buildinfo"
	"github.com/dmitrijs2005/keychain/internal/cli"
	"github.com/dmitrijs2005/keychain/internal/config"
	"github.com/dmitrijs2005/keychain/internal/logging"
)

func loadConfig() (cfg *config.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return config.LoadConfig(os.Args[1:]), nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Argument error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Use -h for help.")
		os.Exit(2)
	}

	if cfg.ShowHelp {
		config.Usage(os.Stdout)
		fmt.Println()
		buildinfo.PrintBuildData(os.Stdout)
		return
	}

	logger, err := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Argument error: %v\n", err)
		os.Exit(2)
	}

	ctx := context.Background()
	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
