// Copyright 2025 The WordFuzz Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordfuzz query tool.

wordfuzz maps a dictionary compiled by wfcompile and answers "which words are
within edit distance D of this word" queries. Distances are Damerau-Levenshtein
(optimal string alignment) over raw bytes; results are ranked by distance,
then by descending frequency, then by text.

# Usage

Answer query lines from stdin:

	wordfuzz words.bin

Serve MessagePack IPC requests instead:

	wordfuzz -ipc words.bin

Try queries by hand:

	wordfuzz -i words.bin

# Line Mode

Each input line holds three whitespace separated tokens:

	<ignored> <max_distance> <word>

and is answered by one JSON array on stdout:

	x 1 helo
	[{"word":"hello","freq":50,"distance":1},{"word":"help","freq":7,"distance":1}]

Lines that do not parse are skipped. No matches prints [].

# IPC Protocol

See package server. Requests look like

	{"id": "req1", "w": "helo", "d": 1, "l": 20}

# Configuration

Defaults are read from config.toml in the user config directory, created on
first run:

	[query]
	max_distance_limit = 0
	result_limit = 0
	verify_checksum = true

	[server]
	max_word_len = 64
	default_distance = 1

# Command Line Flags

	-d  Enable debug mode with detailed logging
	-ipc
	    Serve MessagePack requests on stdin/stdout
	-i  Interactive prompt
	-config string
	    Path to a config file
	-limit int
	    Maximum results per query (0 for all)
	-version
	    Show current version
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordfuzz/internal/cli"
	"github.com/bastiangx/wordfuzz/internal/logger"
	"github.com/bastiangx/wordfuzz/internal/utils"
	"github.com/bastiangx/wordfuzz/pkg/config"
	"github.com/bastiangx/wordfuzz/pkg/dictionary"
	"github.com/bastiangx/wordfuzz/pkg/server"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "wordfuzz"
)

// sigHandler cancels the context on interrupt so loops can wind down.
func sigHandler(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		cancel()
		// stdin reads do not observe the context
		<-c
		os.Exit(1)
	}()
}

// main wires config, dictionary and the chosen front end together.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigHandler(cancel)

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	ipcMode := flag.Bool("ipc", false, "Serve MessagePack requests on stdin/stdout")
	interactive := flag.Bool("i", false, "Interactive prompt -- useful for testing and debugging")
	configPath := flag.String("config", "", "Path to config file")
	limit := flag.Int("limit", -1, "Maximum results per query (0 for all, default from config)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] dict.bin\n", AppName)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		cli.PrintVersion("[ wordfuzz ] Fuzzy dictionary lookups", Version)
		os.Exit(0)
	}
	logger.Setup(*debugMode)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *ipcMode && *interactive {
		log.Fatal("-ipc and -i are mutually exclusive")
	}

	cfg, usedConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(usedConfig))
	if *limit < 0 {
		*limit = cfg.Query.ResultLimit
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	dictPath, err := pathResolver.ResolveDictPath(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to find dictionary: %v", err)
	}

	dict, err := dictionary.Open(dictPath, dictionary.OpenOptions{VerifyChecksum: cfg.Query.VerifyChecksum})
	if err != nil {
		log.Fatalf("Failed to open dictionary: %v", err)
	}
	defer dict.Close()
	log.Debug("Dictionary ready", "path", dictPath, "bytes", dict.Trie().Len())

	searcher := dict.Searcher(cfg.Query.MaxDistanceLimit, *limit)

	switch {
	case *ipcMode:
		log.Debug("spawning IPC")
		srv := server.NewServer(searcher, os.Stdin, os.Stdout, server.Options{
			DefaultDistance: cfg.Server.DefaultDistance,
			MaxWordLen:      cfg.Server.MaxWordLen,
		})
		err = srv.Start(ctx)
	case *interactive:
		log.SetReportTimestamp(false)
		err = cli.NewInputHandler(searcher, cfg.Server.DefaultDistance, cfg.Server.MaxWordLen).Start(ctx, os.Stdin)
	default:
		// every line gets exactly the distance it asks for
		err = cli.NewLineHandler(dict.Searcher(0, *limit)).Run(ctx, os.Stdin, os.Stdout)
	}
	if err != nil && ctx.Err() == nil {
		dict.Close()
		log.Fatalf("%s: %v", AppName, err)
	}
}
