// Copyright 2025 The WordFuzz Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements wfcompile, which turns a word frequency list into a
compiled dictionary for wordfuzz.

The input has one "<word> <frequency>" pair per line; blank lines are skipped.
Frequencies are positive integers that fit in 32 bits and every word may
appear once. Any bad line aborts the compile and nothing is written.

# Usage

	wfcompile words.txt words.bin

Check the result against the input before writing it, and render the builder
tree for Graphviz:

	wfcompile -verify -dot words.dot words.txt words.bin

A manifest with the format version, counts and an xxh64 checksum is written
to words.bin.toml unless -no-manifest is given.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bastiangx/wordfuzz/internal/cli"
	"github.com/bastiangx/wordfuzz/internal/logger"
	"github.com/bastiangx/wordfuzz/pkg/config"
	"github.com/bastiangx/wordfuzz/pkg/dictionary"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "wfcompile"
)

func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	verify := flag.Bool("verify", false, "Check the compiled bytes against the input before writing")
	dotPath := flag.String("dot", "", "Write a Graphviz rendering of the trie to this file")
	noManifest := flag.Bool("no-manifest", false, "Do not write <output>.toml")
	configPath := flag.String("config", "", "Path to config file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] input.txt output.bin\n", AppName)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		cli.PrintVersion("[ wfcompile ] Word list to compact trie compiler", Version)
		os.Exit(0)
	}
	logger.Setup(*debugMode)

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	input, output := flag.Arg(0), flag.Arg(1)

	cfg, _, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	opts := dictionary.CompileOptions{
		Verify:        *verify || cfg.Compile.Verify,
		WriteManifest: cfg.Compile.WriteManifest && !*noManifest,
		DotPath:       *dotPath,
	}
	log.Debug("Compiling", "input", input, "output", output, "verify", opts.Verify, "manifest", opts.WriteManifest)

	res, err := dictionary.Compile(input, output, opts)
	if err != nil {
		log.Fatalf("Compile failed: %v", err)
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", output, res)
}
