// SPDX-License-Identifier: BSD-3-Clause

// Command bakufud runs the process supervisor: it loads a config file
// naming a fleet of services, spawns their replicated worker
// processes, and keeps them alive until an operator signal asks it to
// stop. See SPEC_FULL.md §6 for the exact CLI contract this is
// grounded on (originally sketched, incomplete, in
// original_source/bakufu/bakufud.py; the flag shape follows
// targets/mainboards/*/main.go's plain-flag, no-framework texture).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/aita/bakufu/internal/supervisor"
	"github.com/aita/bakufu/pkg/id"
	"github.com/aita/bakufu/pkg/log"
)

// stateDir holds the persistent instance ID bakufud tags its log lines
// with. The ID survives restarts of the binary on the same host, so
// aggregated logs can tell restarts of one supervisor apart from
// different supervisors. Fixed rather than configurable:
// spec.md §6 names exactly two CLI options.
const stateDir = "/var/run/bakufud"

// version is the bakufud release string printed by --version.
const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bakufud", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: bakufud [--version] [--loglevel LEVEL] CONFIG")
		fs.PrintDefaults()
	}

	showVersion := fs.Bool("version", false, "print bakufud version and exit")
	loglevel := fs.String("loglevel", "warning", "minimum log severity: critical|error|warning|info|debug")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version)
		return 0
	}

	configPath := fs.Arg(0)
	if configPath == "" {
		fs.Usage()
		return 0
	}

	level, err := log.ParseLevel(*loglevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger := log.New(level)
	log.SetGlobal(logger)
	log.RedirectStdLog(logger)

	instanceID, err := id.GetOrCreatePersistentID("id", stateDir)
	if err != nil {
		logger.Warn("failed to get/create persistent instance ID, using ephemeral ID", "error", err)
		instanceID = id.NewID()
	}
	logger = logger.With("instance_id", instanceID)

	sv, err := supervisor.New(configPath, supervisor.WithLogger(logger))
	if err != nil {
		logger.Error("failed to build supervisor from config", "config", configPath, "error", err)
		return 1
	}

	if err := sv.Run(context.Background()); err != nil {
		logger.Error("supervisor exited with error", "error", err)
		return 1
	}
	return 0
}
