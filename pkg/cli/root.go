/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

const (
	name           = "tagstamp"
	versionDefault = "dev"
)

// Build-time version information, injected via ldflags.
var (
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// New assembles the root command with all subcommands attached.
func New() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Resolve git versions and stamp them into build manifests",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		ShellComplete:         commandLister,
		Commands: []*cli.Command{
			currentCmd(),
			checkCmd(),
			tagCmd(),
			commitCmd(),
			stampCmd(),
			restoreCmd(),
			recoverCmd(),
			imageCmd(),
			publishCmd(),
			serveCmd(),
		},
	}
}

// Execute runs the CLI. This is called by main.main() and handles
// SIGINT/SIGTERM for graceful shutdown.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := New().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// commandLister prints the visible command names, one per line, for
// shell completion.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil {
		return
	}
	for _, c := range cmd.Commands {
		if c.Hidden {
			continue
		}
		fmt.Println(c.Name)
	}
}
