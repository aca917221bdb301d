// Copyright 2025 The SQLServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the SQL completion server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

SQLServe provides context-aware SQL completion ranking: given the kind of
object expected at the cursor and the partial text typed there, it matches
schema objects and keywords with subsequence or prefix matching, ranks them
by match quality and usage prevalence, and quotes identifiers that need it.
It can operate as a MessagePack IPC server for integration with editors, or
as a CLI application for testing and debugging.

Catalog objects come either from a live Postgres connection, queried lazily
and cached, or from a built-in demo catalog when no DSN is given.

# Usage

Start the server against a database:

	sqlserve -dsn "postgres://localhost/shop"

Run in CLI mode against the demo catalog:

	sqlserve -c -limit 10

# Configuration

Runtime configuration is managed through a TOML file:

	[server]
	max_limit = 64
	max_text = 256

	[catalog]
	dsn = "postgres://localhost/shop"
	search_path = ["public"]

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Requests are
processed synchronously with timing information included in responses.

Send a completion request:

	{"id": "req1", "op": "complete", "kind": "table", "text": "ord"}

Receive ranked suggestions:

	{"id": "req1", "s": [{"w": "orders", "m": "table", "r": 1}], "c": 1, "t": 0}

See the server package docs for the full message set.

# Command Line Flags

The following flags control application behavior:

	-dsn string
	    Postgres connection string (demo catalog when empty)
	-schemas string
	    Comma separated search path override
	-config string
	    Custom config file path
	-rebuild-config
	    Overwrite the default config file with builtin defaults and exit
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of suggestions to return (default from config)
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/sqlserve/internal/cli"
	"github.com/bastiangx/sqlserve/pkg/catalog"
	"github.com/bastiangx/sqlserve/pkg/complete"
	"github.com/bastiangx/sqlserve/pkg/config"
	"github.com/bastiangx/sqlserve/pkg/server"
)

const (
	Version = "0.9.0-beta"
	AppName = "sqlserve"
	gh      = "https://github.com/bastiangx/sqlserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	// custom Flags
	showVersion := flag.Bool("version", false, "Show current version")
	dsn := flag.String("dsn", "", "Postgres connection string (uses the demo catalog when empty)")
	schemas := flag.String("schemas", "", "Comma separated search path override")
	configPath := flag.String("config", "", "Custom config file path")
	rebuildConfig := flag.Bool("rebuild-config", false, "Overwrite the default config file with builtin defaults and exit")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of suggestions to return")

	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "",
		})

		styles := log.DefaultStyles()

		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		styles.Values["version"] = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})

		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[ SQLServe ] Serves really Fast SQL completions!")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use -h or --help to see available options")
		logger.Print("Github Repo", "gh", gh)

		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}
	log.SetOutput(os.Stderr)

	if *rebuildConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Printf("Wrote default config to %s", config.GetActiveConfigPath(""))
		os.Exit(0)
	}

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	ctx := context.Background()

	connString := *dsn
	if connString == "" {
		connString = appConfig.Catalog.DSN
	}
	searchPath := appConfig.Catalog.SearchPath
	if *schemas != "" {
		searchPath = strings.Split(*schemas, ",")
	}

	var provider complete.Catalog
	var source complete.KeywordSource
	if connString != "" {
		pg, err := catalog.Open(ctx, connString)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pg.Close()
		if *schemas == "" {
			if path, err := pg.SearchPath(ctx); err == nil && len(path) > 0 {
				searchPath = path
			}
		}
		provider, source = pg, pg
		log.Debugf("Connected, search path: %v", searchPath)
	} else {
		log.Warn("No DSN specified, running with the demo catalog...")
		demo := catalog.NewDemo()
		provider, source = demo, demo
	}

	engine, err := complete.NewEngine(ctx, provider, source, searchPath)
	if err != nil {
		log.Warnf("Live keyword list unavailable (%v), using built-in keywords", err)
		engine, err = complete.NewEngine(ctx, provider, catalog.DefaultKeywordSource{}, searchPath)
		if err != nil {
			log.Fatalf("Failed to init engine: %v", err)
		}
	}

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:", "limit", *limit, "schema", appConfig.CLI.DefaultSchema)

		inputHandler := cli.NewInputHandler(engine, *limit, appConfig.CLI.DefaultSchema)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(engine, provider, appConfig)

	showStartupInfo(connString, engine.Keywords().Len())

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dsn string, keywords int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	target := "demo catalog"
	if dsn != "" {
		target = "live database"
	}

	fmt.Fprintln(os.Stderr, "==========")
	fmt.Fprintln(os.Stderr, " SQLServe ")
	fmt.Fprintln(os.Stderr, "==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("catalog: ( %s )", target)
	log.Infof("keywords: [ %d ]", keywords)
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "==========")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
